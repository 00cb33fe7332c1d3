// Package http holds the gin handlers: request parsing, calls into the
// services, and the mapping from the error taxonomy to statuses.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"uptask/internal/accounts"
	"uptask/internal/core"
	"uptask/internal/domain"
)

// abortWithError maps a service error to a response. NotFound and
// Forbidden stay distinct statuses here; conflicts are expected
// outcomes and only worth a debug line.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"msg": "not found"})
	case errors.Is(err, core.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "forbidden"})
	case errors.Is(err, core.ErrConflict):
		log.Debug().Err(err).Str("module", "transport.http").Msg("conflict")
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"msg": err.Error()})
	case errors.Is(err, accounts.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "invalid credentials"})
	case isValidation(err):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	default:
		log.Error().Err(err).Str("module", "transport.http").Str("path", c.FullPath()).Msg("request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
	}
}

func isValidation(err error) bool {
	return errors.Is(err, domain.ErrNameEmpty) ||
		errors.Is(err, domain.ErrNameTooLong) ||
		errors.Is(err, domain.ErrEmailEmpty) ||
		errors.Is(err, domain.ErrEmailTooLong) ||
		errors.Is(err, accounts.ErrWeakPassword)
}

func abortBadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"msg": msg})
}
