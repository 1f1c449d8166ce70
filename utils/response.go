package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marianaakuma/Projeto-Full-Stack1/apperror"
)

// JSONResponse defines the uniform structure for API responses.
type JSONResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes a JSON response with the given status code.
func Respond(ctx *gin.Context, status int, code int, message string, data interface{}) {
	ctx.JSON(status, JSONResponse{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Success returns a standard success response.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, http.StatusOK, 0, "success", data)
}

// Created returns a standard creation response.
func Created(ctx *gin.Context, data interface{}) {
	Respond(ctx, http.StatusCreated, 0, "created", data)
}

// Error returns a standard error response.
func Error(ctx *gin.Context, status int, code int, message string) {
	Respond(ctx, status, code, message, nil)
}

// Fail renders an error through the apperror taxonomy. Only the public message
// reaches the client; the wrapped cause is logged.
func Fail(ctx *gin.Context, code int, err error) {
	if ae, ok := apperror.FromError(err); ok {
		if ae.Err != nil && Sugar != nil {
			Sugar.Warnw("request failed", "code", code, "error", ae.Error())
		}
		Respond(ctx, ae.StatusCode(), code, ae.Message, nil)
		return
	}
	if Sugar != nil {
		Sugar.Errorw("unexpected error", "code", code, "error", err)
	}
	Respond(ctx, http.StatusInternalServerError, code, "internal server error", nil)
}
