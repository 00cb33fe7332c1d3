package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"uptask/internal/accounts"
	"uptask/internal/core"
	"uptask/internal/domain"
)

func statusFor(err error) int {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	abortWithError(c, err)
	return rec.Code
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		// NotFound and Forbidden map to distinct statuses: the original
		// system folded both into 404 on the collaborator paths, which
		// hid real permission failures from clients.
		{"not found", core.ErrNotFound, http.StatusNotFound},
		{"forbidden", core.ErrForbidden, http.StatusForbidden},
		{"wrapped not found", fmt.Errorf("find project: %w", core.ErrNotFound), http.StatusNotFound},
		{"conflict", core.ErrConflict, http.StatusConflict},
		{"creator collaborator", core.ErrCreatorCollaborator, http.StatusConflict},
		{"already collaborator", core.ErrAlreadyCollaborator, http.StatusConflict},
		{"duplicate email", core.ErrDuplicateEmail, http.StatusConflict},
		{"unconfirmed account", core.ErrAccountNotConfirmed, http.StatusConflict},
		{"invalid credentials", accounts.ErrInvalidCredentials, http.StatusForbidden},
		{"validation", domain.ErrNameEmpty, http.StatusBadRequest},
		{"weak password", accounts.ErrWeakPassword, http.StatusBadRequest},
		{"transient store failure", errors.New("socket reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}
