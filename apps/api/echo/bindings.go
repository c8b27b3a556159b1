package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/campushq/placetrack/core"
	"github.com/campushq/placetrack/core/application"
)

// response is the envelope every endpoint answers with.
type response struct {
	Success    bool                    `json:"success"`
	Data       interface{}             `json:"data,omitempty"`
	Message    string                  `json:"message,omitempty"`
	Errors     []core.FieldError       `json:"errors,omitempty"`
	Pagination *application.Pagination `json:"pagination,omitempty"`
}

func respondData(ctx echo.Context, code int, data interface{}) error {
	return ctx.JSON(code, response{Success: true, Data: data})
}

func respondMessage(ctx echo.Context, code int, msg string) error {
	return ctx.JSON(code, response{Success: true, Message: msg})
}

func respondPage(ctx echo.Context, code int, items interface{}, p application.Pagination) error {
	return ctx.JSON(code, response{Success: true, Data: items, Pagination: &p})
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (lr *LoginRequest) Validate() error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return core.Validate.Struct(lr)
}
