package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondWithCode(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	RespondWithCode(c, http.StatusCreated, data, message)
}

func RespondWithCode(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		c.JSON(http.StatusBadRequest, APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: fieldErr.Error(),
			TraceID: traceID(c),
			Data:    gin.H{"field": fieldErr.Field},
		})
		return
	}

	code, message := statusFor(err)
	if code == http.StatusInternalServerError {
		zap.L().Error("internal error", zap.String("trace_id", traceID(c)), zap.Error(err))
	}
	RespondError(c, code, message)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidPage):
		return http.StatusBadRequest, "Page must be greater than 0"
	case errors.Is(err, ErrInvalidPageSize):
		return http.StatusBadRequest, "Page size must be between 1 and 100"
	case errors.Is(err, ErrNoSuitableDestinations),
		errors.Is(err, ErrAlreadyVisited),
		errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, "Access denied"
	case errors.Is(err, ErrAccountNotFound):
		return http.StatusNotFound, "Account not found"
	case errors.Is(err, ErrDestinationNotFound):
		return http.StatusNotFound, "Destination not found"
	case errors.Is(err, ErrItineraryNotFound):
		return http.StatusNotFound, "Itinerary not found"
	case errors.Is(err, ErrChatSessionNotFound):
		return http.StatusNotFound, "Chat session not found"
	case errors.Is(err, ErrEmailAlreadyExists), errors.Is(err, ErrSlugTaken):
		return http.StatusConflict, err.Error()
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, "Too many requests, please try again later"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
