package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
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

// HandleServiceError maps service sentinel errors onto HTTP responses.
// Pipeline failures are reduced to short status strings; details stay in logs.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrExerciseNotFound),
		errors.Is(err, ErrPlanNotFound),
		errors.Is(err, ErrSessionNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 100")
	case errors.Is(err, ErrDistribution):
		RespondError(c, http.StatusUnprocessableEntity, "Plan day distribution out of policy")
	case errors.Is(err, ErrSchemaValidation):
		RespondError(c, http.StatusUnprocessableEntity, "Generated plan failed validation")
	case errors.Is(err, ErrExtraction), errors.Is(err, ErrDecode):
		RespondError(c, http.StatusBadGateway, "Model output could not be parsed")
	case errors.Is(err, ErrUpstreamService):
		RespondError(c, http.StatusBadGateway, "Upstream service unavailable")
	case errors.Is(err, ErrDatabaseError), errors.Is(err, ErrPersistence):
		log.Printf("storage error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
