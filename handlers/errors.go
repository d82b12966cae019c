package handlers

import (
	"errors"
	"net/http"

	"securecheck-api/catalog"
	"securecheck-api/datasource"
	"securecheck-api/estimator"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var (
		unknown     *catalog.UnknownReportError
		execErr     *catalog.ReportExecutionError
		invalid     *estimator.InvalidRequestError
		unavailable *datasource.UnavailableError
	)
	switch {
	case errors.As(err, &unknown):
		return http.StatusNotFound
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &execErr):
		return http.StatusBadGateway
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError reports err as a non-fatal warning payload.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error(), "warning": true})
}
