package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/parkease/parkease-backend/internal/logger"
	"github.com/parkease/parkease-backend/internal/pkg/apperror"
	"github.com/parkease/parkease-backend/internal/repository"
)

// ErrorHandler обрабатывает ошибки централизованно.
// Маскирует внутренние ошибки и возвращает понятные сообщения клиенту.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()

		if logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"error":  err.Error(),
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			}).Error("Request error")
		}

		statusCode := http.StatusInternalServerError
		message := "internal server error"
		code := ""

		var appErr *apperror.AppError
		switch {
		case errors.As(err.Err, &appErr):
			statusCode = appErr.HTTPStatus
			message = appErr.Message
			code = string(appErr.Code)
		case errors.Is(err.Err, repository.ErrUserNotFound):
			statusCode = http.StatusNotFound
			message = "user not found"
		case errors.Is(err.Err, repository.ErrBookingNotFound):
			statusCode = http.StatusNotFound
			message = "booking not found"
		case errors.Is(err.Err, repository.ErrSlotNotFound):
			statusCode = http.StatusNotFound
			message = "parking slot not found"
		case errors.Is(err.Err, repository.ErrDisputeNotFound):
			statusCode = http.StatusNotFound
			message = "dispute not found"
		case errors.Is(err.Err, repository.ErrProviderNotFound):
			statusCode = http.StatusNotFound
			message = "provider application not found"
		case errors.Is(err.Err, repository.ErrDriverNotFound):
			statusCode = http.StatusNotFound
			message = "driver not found"
		default:
			if errStr := err.Error(); errStr != "" && !containsInternalKeywords(errStr) {
				message = errStr
				statusCode = http.StatusBadRequest
			}
		}

		if code != "" {
			c.JSON(statusCode, gin.H{"error": message, "code": code})
			return
		}
		c.JSON(statusCode, gin.H{"error": message})
	}
}

// containsInternalKeywords проверяет, содержит ли строка ключевые слова внутренних ошибок.
func containsInternalKeywords(s string) bool {
	keywords := []string{
		"sql:",
		"database",
		"connection",
		"timeout",
		"internal",
		"panic",
		"runtime",
	}

	for _, keyword := range keywords {
		if contains(s, keyword) {
			return true
		}
	}
	return false
}

// contains проверяет, содержит ли строка подстроку (case-insensitive).
func contains(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
