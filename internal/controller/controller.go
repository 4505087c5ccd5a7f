package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/vidcert/internal/dto"
	"github.com/lshigami/vidcert/internal/identity"
	"github.com/lshigami/vidcert/internal/service"
	"github.com/rs/zerolog/log"
)

const (
	msgQuizNotFound        = "Quiz not found or expired"
	msgCertificateNotFound = "Certificate not found"
	msgUnavailable         = "Service temporarily unavailable. Please try again."
	msgInternal            = "Internal server error"
)

// ErrorStatus maps a service or identity error to an HTTP status and a short
// message that is safe to show to the user.
func ErrorStatus(err error) (int, string) {
	var perr *identity.ProviderError
	switch {
	case service.IsValidationError(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrGenerationFailed):
		return http.StatusBadGateway, service.ErrGenerationFailed.Error()
	case errors.Is(err, service.ErrQuizNotFound):
		return http.StatusNotFound, msgQuizNotFound
	case errors.Is(err, service.ErrCertificateNotFound):
		return http.StatusNotFound, msgCertificateNotFound
	case errors.Is(err, service.ErrServiceUnavailable), errors.Is(err, identity.ErrUnavailable):
		return http.StatusServiceUnavailable, msgUnavailable
	case errors.Is(err, identity.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, identity.ErrUnauthorized):
		return http.StatusUnauthorized, "Sign in required"
	case errors.As(err, &perr):
		if perr.Status == http.StatusTooManyRequests {
			return http.StatusTooManyRequests, perr.Message
		}
		return http.StatusBadRequest, perr.Message
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// RespondError writes err as a dto.ErrorResponse. Server-side failures are
// logged with the request path; details are never echoed for them.
func RespondError(ctx *gin.Context, err error) {
	status, msg := ErrorStatus(err)
	resp := dto.ErrorResponse{Message: msg}
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.Request.URL.Path).Int("status", status).Msg("Request failed")
	} else {
		log.Warn().Err(err).Str("path", ctx.Request.URL.Path).Int("status", status).Msg("Request rejected")
	}
	ctx.JSON(status, resp)
}

// RespondBindError reports a request body or form that could not be bound.
func RespondBindError(ctx *gin.Context, err error) {
	log.Warn().Err(err).Str("path", ctx.Request.URL.Path).Msg("Failed to bind request")
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
}

// IncludeReview reports whether the request asked for the question review
// with a true value of the review query parameter.
func IncludeReview(ctx *gin.Context) bool {
	include, err := strconv.ParseBool(ctx.Query("review"))
	return err == nil && include
}
