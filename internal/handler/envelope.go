package handler

import (
	"net/http"

	"krypto-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

// OKResponse wraps every successful payload.
type OKResponse struct {
	Status string `json:"status" example:"ok"`
	Data   any    `json:"data"`
}

// ErrorResponse is returned for every failure, with the HTTP status derived
// from Kind.
type ErrorResponse struct {
	Status  string `json:"status" example:"error"`
	Kind    string `json:"kind" example:"upstream_unavailable"`
	Message string `json:"message" example:"coinmarketcap: API error 503: Service Unavailable"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, OKResponse{Status: statusOK, Data: data})
}

func respondError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	c.JSON(httpStatus(kind), ErrorResponse{
		Status:  statusError,
		Kind:    string(kind),
		Message: err.Error(),
	})
}

func httpStatus(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindUnknownSymbol:
		return http.StatusNotFound
	case domain.KindBadRequest:
		return http.StatusBadRequest
	case domain.KindUpstreamUnavailable, domain.KindBadSchema:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
