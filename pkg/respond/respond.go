// Package respond defines the single-entity response envelope used by the
// API: {code, message, data}. List endpoints use pkg/pagination instead.
package respond

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the wire shape for single-entity responses.
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{Code: http.StatusOK, Message: "success", Data: data})
}

func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Envelope{Code: http.StatusCreated, Message: "created", Data: data})
}

func Message(c echo.Context, status int, msg string) error {
	return c.JSON(status, Envelope{Code: status, Message: msg})
}
