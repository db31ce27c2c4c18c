package utils

import (
	"github.com/gin-gonic/gin"
)

// Response is the uniform envelope for every API reply, success or failure.
// Success is derived from the HTTP status class and is never passed in by the
// caller, so frontends can branch on it without inspecting the status line.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes the envelope with the given status code and terminates the
// handler chain. No further body may be written for this request.
func Respond(c *gin.Context, code int, message string, data interface{}) {
	c.Header("Content-Type", "application/json; charset=UTF-8")
	c.JSON(code, Response{
		Success: code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
	c.Abort()
}

// Success writes a success envelope.
func Success(c *gin.Context, code int, message string, data interface{}) {
	Respond(c, code, message, data)
}

// Error writes an error envelope with no data payload.
func Error(c *gin.Context, code int, message string) {
	Respond(c, code, message, nil)
}
