package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/portcullis-hq/portcullis-backend/models"
)

func TestPresentError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"nil error is not presented", nil, http.StatusOK},
		{"last owner", errors.WithDetail(models.ErrLastOwner, "org-1"), http.StatusUnprocessableEntity},
		{"bad parameter", errors.Wrap(models.BadParameterError, "invalid role"), http.StatusBadRequest},
		{"unauthorized", models.ErrInvalidToken, http.StatusUnauthorized},
		{"forbidden", errors.Wrap(models.ForbiddenError, "nope"), http.StatusForbidden},
		{"not a member", errors.WithDetail(models.ErrNotAMember, "user"), http.StatusForbidden},
		{"not found", errors.Wrap(models.NotFoundError, "organization"), http.StatusNotFound},
		{"conflict", models.ErrOrganizationNameTaken, http.StatusConflict},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			presented := presentError(c, tt.err)

			if tt.err == nil {
				assert.False(t, presented)
				return
			}
			assert.True(t, presented)
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}
