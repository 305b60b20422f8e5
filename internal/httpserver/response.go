package httpserver

import (
	"net/http"

	"botshop/internal/domain"
	"github.com/gin-gonic/gin"
)

// detailResponse is the uniform error body: a human-readable message under
// the "detail" key.
type detailResponse struct {
	Detail string `json:"detail"`
}

func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	detail := "internal server error"

	switch domain.KindOf(err) {
	case domain.KindNotFound:
		status = http.StatusNotFound
		detail = err.Error()
	case domain.KindValidation:
		status = http.StatusBadRequest
		detail = err.Error()
	case domain.KindConflict:
		status = http.StatusConflict
		detail = err.Error()
	}

	c.AbortWithStatusJSON(status, detailResponse{Detail: detail})
}

func abortBadRequest(c *gin.Context, detail string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, detailResponse{Detail: detail})
}
