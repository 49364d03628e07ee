package handlers

import (
	"net/http"
	"strconv"

	"tasks_api/internal/http/middleware"
	"tasks_api/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

const (
	CodeInvalidID          = "INVALID_ID"
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	CodeInvalidIsCompleted = "INVALID_IS_COMPLETED_VALUE"
	CodeTaskNotFound       = "TASK_NOT_FOUND"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
)

const msgDeleted = "Record deleted successfully"

// Envelope wraps every response body.
type Envelope struct {
	Status    string `json:"status"`
	Data      any    `json:"data,omitempty"`
	Message   string `json:"message,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notblank", validators.NotBlank)
	}
}

func success(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Status: StatusSuccess, Data: data})
}

func fail(c *gin.Context, status int, code, msg string) {
	c.JSON(status, Envelope{Status: StatusError, Message: msg, ErrorCode: code})
}

// internalError exposes the raw error to the client and logs it.
func internalError(c *gin.Context, err error) {
	logger.Error("request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"request_id", c.GetString(middleware.RequestIDKey),
		"error", err,
	)
	fail(c, http.StatusInternalServerError, CodeInternal, err.Error())
}

func badBody(c *gin.Context, err error) {
	fail(c, http.StatusBadRequest, CodeInvalidRequestBody, err.Error())
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidID, "invalid id: "+c.Param("id"))
		return 0, false
	}
	return id, true
}
