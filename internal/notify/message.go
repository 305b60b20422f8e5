package notify

import (
	"fmt"
	"net/url"
	"strings"

	"botshop/internal/domain"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindNewOrder       Kind = "new_order"
	KindOrderConfirmed Kind = "order_confirmed"
	KindStatusChanged  Kind = "status_changed"
)

// Message is one pending notification. Core operations return messages
// instead of sending them; the caller dispatches after its transaction
// commits, so a delivery failure can never roll back persisted state.
type Message struct {
	Kind    Kind
	ChatID  string
	OrderID int64
	Locale  string
	Text    string
}

// NewOrderMessage builds the shop-facing notification for a freshly assembled
// order. Returns ok=false when the shop has no notification chat configured.
func NewOrderMessage(shop domain.Shop, user domain.User, ord domain.Order) (Message, bool) {
	if shop.TelegramGroup == nil || *shop.TelegramGroup == "" {
		return Message{}, false
	}
	locale := user.Locale()

	var b strings.Builder
	if locale == domain.LangRu {
		b.WriteString("🛒 <b>НОВЫЙ ЗАКАЗ!</b>\n")
		fmt.Fprintf(&b, "👤 <b>Покупатель:</b> %s\n", user.FullName())
		fmt.Fprintf(&b, "📍 <b>Адрес:</b> %s\n", ord.Address)
		fmt.Fprintf(&b, "🔗 <a href='https://yandex.com/maps/?text=%s'>Посмотреть адрес на карте</a>\n", url.QueryEscape(ord.Address))
		fmt.Fprintf(&b, "🧾 <b>Номер заказа:</b> <code>#%d</code>\n", ord.ID)
		fmt.Fprintf(&b, "🕒 <b>Дата заказа:</b> %s\n", ord.CreatedAt.Format("2006-01-02 15:04"))
		if ord.Comment != nil {
			fmt.Fprintf(&b, "💬 <b>Комментарий:</b> %s\n", *ord.Comment)
		}
		b.WriteString("\n🛍️ <b>ТОВАРЫ В ЗАКАЗЕ:</b>\n")
	} else {
		b.WriteString("🛒 <b>YANGI ZAKAZ!</b>\n")
		fmt.Fprintf(&b, "👤 <b>Buyurtmachi:</b> %s\n", user.FullName())
		fmt.Fprintf(&b, "📍 <b>Manzil:</b> %s\n", ord.Address)
		fmt.Fprintf(&b, "🔗 <a href='https://yandex.com/maps/?text=%s'>Manzilni xaritada ko‘rish</a>\n", url.QueryEscape(ord.Address))
		fmt.Fprintf(&b, "🧾 <b>Buyurtma raqami:</b> <code>#%d</code>\n", ord.ID)
		fmt.Fprintf(&b, "🕒 <b>Buyurtma vaqti:</b> %s\n", ord.CreatedAt.Format("2006-01-02 15:04"))
		if ord.Comment != nil {
			fmt.Fprintf(&b, "💬 <b>Izoh:</b> %s\n", *ord.Comment)
		}
		b.WriteString("\n🛍️ <b>BUYURTMADAGI MAHSULOTLAR:</b>\n")
	}
	writeItemLines(&b, ord, locale)
	if locale == domain.LangRu {
		fmt.Fprintf(&b, "\n💵 <b>ИТОГО: %s сум</b>\n", ord.TotalPrice.StringFixed(2))
	} else {
		fmt.Fprintf(&b, "\n💵 <b>JAMI: %s so'm</b>\n", ord.TotalPrice.StringFixed(2))
	}

	return Message{
		Kind:    KindNewOrder,
		ChatID:  *shop.TelegramGroup,
		OrderID: ord.ID,
		Locale:  locale,
		Text:    b.String(),
	}, true
}

// OrderConfirmedMessage builds the user-facing confirmation for a new order.
func OrderConfirmedMessage(user domain.User, ord domain.Order) (Message, bool) {
	if user.TelegramID == "" {
		return Message{}, false
	}
	locale := user.Locale()

	var b strings.Builder
	if locale == domain.LangRu {
		b.WriteString("🎉 <b>ЗАКАЗ УСПЕШНО ОФОРМЛЕН!</b>\n")
		fmt.Fprintf(&b, "🧾 <b>Номер заказа:</b> <code>#%d</code>\n", ord.ID)
		fmt.Fprintf(&b, "👤 <b>Ф.И.О:</b> %s\n", user.FullName())
		fmt.Fprintf(&b, "📍 <b>Адрес:</b> %s\n", ord.Address)
		fmt.Fprintf(&b, "💵 <b>Общая сумма:</b> <b>%s сум</b>\n", ord.TotalPrice.StringFixed(2))
		b.WriteString("\n🛍️ <b>ТОВАРЫ В ЗАКАЗЕ:</b>\n")
		writeItemLines(&b, ord, locale)
		b.WriteString("\n📬 <b>Ваш заказ был отправлен в магазин!</b>\n")
		b.WriteString("💬 В ближайшее время мы сообщим, когда заказ будет принят.\n")
	} else {
		b.WriteString("🎉 <b>BUYURTMA MUVAFFAQIYATLI RASMIYLASHTRILDI!</b>\n")
		fmt.Fprintf(&b, "🧾 <b>Buyurtma raqami:</b> <code>#%d</code>\n", ord.ID)
		fmt.Fprintf(&b, "👤 <b>F.I.O:</b> %s\n", user.FullName())
		fmt.Fprintf(&b, "📍 <b>Manzil:</b> %s\n", ord.Address)
		fmt.Fprintf(&b, "💵 <b>Umumiy narx:</b> <b>%s so'm</b>\n", ord.TotalPrice.StringFixed(2))
		b.WriteString("\n🛍️ <b>BUYURTMADAGI MAHSULOTLAR:</b>\n")
		writeItemLines(&b, ord, locale)
		b.WriteString("\n📬 <b>Buyurtmangiz do‘konga yuborildi!</b>\n")
		b.WriteString("💬 Tez orada buyurtmangiz qabul qilinganligi haqida sizga xabar beramiz.\n")
	}

	return Message{
		Kind:    KindOrderConfirmed,
		ChatID:  user.TelegramID,
		OrderID: ord.ID,
		Locale:  locale,
		Text:    b.String(),
	}, true
}

// StatusChangedMessage notifies the order's owner of a status transition.
func StatusChangedMessage(user domain.User, ord domain.Order) (Message, bool) {
	if user.TelegramID == "" {
		return Message{}, false
	}
	locale := user.Locale()
	label := ord.Status.Label(locale)

	var b strings.Builder
	if locale == domain.LangRu {
		b.WriteString("📦 <b>Ваш заказ обновлён!</b>\n")
		fmt.Fprintf(&b, "🧾 <b>Номер заказа:</b> #%d\n", ord.ID)
		fmt.Fprintf(&b, "📍 <b>Адрес:</b> %s\n", ord.Address)
		fmt.Fprintf(&b, "🆕 <b>Новый статус:</b> %s\n", label)
	} else {
		b.WriteString("📦 <b>Sizning buyurtmangiz yangilandi!</b>\n")
		fmt.Fprintf(&b, "🧾 <b>Buyurtma raqami:</b> #%d\n", ord.ID)
		fmt.Fprintf(&b, "📍 <b>Manzil:</b> %s\n", ord.Address)
		fmt.Fprintf(&b, "🆕 <b>Yangi holat:</b> %s\n", label)
	}

	return Message{
		Kind:    KindStatusChanged,
		ChatID:  user.TelegramID,
		OrderID: ord.ID,
		Locale:  locale,
		Text:    b.String(),
	}, true
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

func writeItemLines(b *strings.Builder, ord domain.Order, locale string) {
	for i, item := range ord.Items {
		name := "—"
		details := ""
		lineTotal := ""
		if item.Variant != nil {
			v := item.Variant
			name = v.ProductName
			var parts []string
			if v.Color != nil {
				parts = append(parts, *v.Color)
			}
			if v.Size != nil {
				parts = append(parts, *v.Size)
			}
			if v.Volume != nil {
				parts = append(parts, *v.Volume)
			}
			if v.Taste != nil {
				parts = append(parts, *v.Taste)
			}
			details = strings.Join(parts, ", ")
			lineTotal = v.EffectivePrice().Mul(decimalFromInt(item.Quantity)).StringFixed(2)
		}
		if locale == domain.LangRu {
			fmt.Fprintf(b, "<code>#%d</code> <b>%s</b> x <b>%d</b>", i+1, name, item.Quantity)
			if lineTotal != "" {
				fmt.Fprintf(b, "\n<b>Цена:</b> %s", lineTotal)
			}
		} else {
			fmt.Fprintf(b, "<code>#%d</code> <b>%s</b> x <b>%d</b>", i+1, name, item.Quantity)
			if lineTotal != "" {
				fmt.Fprintf(b, "\n<b>Narxi:</b> %s", lineTotal)
			}
		}
		if details != "" {
			fmt.Fprintf(b, "\n%s", details)
		}
		b.WriteString("\n")
	}
}
