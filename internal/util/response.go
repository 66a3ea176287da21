package util

import (
	"errors"
	"net/http"

	"github.com/Chirandip-dev07/ujjivana/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the envelope every handler returns.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse wraps paginated listings.
type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// HandleServiceError maps service-layer sentinel errors to the matching
// HTTP status. Anything unrecognized is logged and returned as a 500.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound):
		NotFound(c)
	case errors.Is(err, ErrPermissionDenied):
		Forbidden(c)
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidOTP):
		Unauthorized(c)
	case errors.Is(err, ErrEmailRegistered),
		errors.Is(err, ErrAlreadyRegistered),
		errors.Is(err, ErrConflict):
		Conflict(c, err.Error())
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrModuleNotCompleted),
		errors.Is(err, ErrRegistrationClosed),
		errors.Is(err, ErrEventFull),
		errors.Is(err, ErrNotRegistered),
		errors.Is(err, ErrInsufficientPoints),
		errors.Is(err, ErrRewardOutOfStock),
		errors.Is(err, ErrRewardInactive),
		errors.Is(err, ErrNotParticipant),
		errors.Is(err, ErrSubmissionNotRequired),
		errors.Is(err, ErrAlreadyReviewed),
		errors.Is(err, ErrRequestDecided),
		errors.Is(err, ErrDailyAlreadyAnswered):
		BadRequest(c, err.Error())
	default:
		LogInternalError(c, err)
	}
}
