package domain

import "testing"

func strPtr(s string) *string { return &s }

func TestFullName(t *testing.T) {
	cases := []struct {
		name string
		user User
		want string
	}{
		{"both", User{FirstName: strPtr("Ali"), LastName: strPtr("Valiyev")}, "Ali Valiyev"},
		{"first only", User{FirstName: strPtr("Ali")}, "Ali"},
		{"last only", User{LastName: strPtr("Valiyev")}, "Valiyev"},
		{"neither", User{}, ""},
	}
	for _, tc := range cases {
		if got := tc.user.FullName(); got != tc.want {
			t.Errorf("%s: FullName() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestLocale(t *testing.T) {
	if got := (User{Language: LangRu}).Locale(); got != LangRu {
		t.Errorf("ru user locale = %q", got)
	}
	if got := (User{Language: LangUz}).Locale(); got != LangUz {
		t.Errorf("uz user locale = %q", got)
	}
	// anything else defaults to uz
	if got := (User{Language: "en"}).Locale(); got != LangUz {
		t.Errorf("unknown language locale = %q, want uz", got)
	}
	if got := (User{}).Locale(); got != LangUz {
		t.Errorf("empty language locale = %q, want uz", got)
	}
}
