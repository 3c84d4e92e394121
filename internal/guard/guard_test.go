package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haymini/hayctl/internal/models"
	"github.com/haymini/hayctl/internal/session"
)

func TestAuthorize(t *testing.T) {
	standard := &models.User{ID: "u-1", Username: "dana", Role: models.RoleStandard, OrganizationID: "org-1"}
	elevated := &models.User{ID: "u-2", Username: "root", Role: models.RoleElevated}

	tests := []struct {
		name     string
		snap     session.Snapshot
		required models.Role
		want     Decision
	}{
		{
			name: "uninitialized shows loading",
			snap: session.Snapshot{Status: session.StatusUninitialized},
			want: ShowLoading,
		},
		{
			name: "validating shows loading",
			snap: session.Snapshot{Status: session.StatusValidating},
			want: ShowLoading,
		},
		{
			name: "expired-redirecting shows loading until torn down",
			snap: session.Snapshot{Status: session.StatusExpiredRedirecting},
			want: ShowLoading,
		},
		{
			name: "unauthenticated redirects to login",
			snap: session.Snapshot{Status: session.StatusUnauthenticated},
			want: RedirectToLogin,
		},
		{
			name: "authenticated with no role requirement renders",
			snap: session.Snapshot{Status: session.StatusAuthenticated, User: standard},
			want: Render,
		},
		{
			name:     "standard user denied an elevated view",
			snap:     session.Snapshot{Status: session.StatusAuthenticated, User: standard},
			required: models.RoleElevated,
			want:     ShowAccessDenied,
		},
		{
			name:     "elevated user allowed an elevated view",
			snap:     session.Snapshot{Status: session.StatusAuthenticated, User: elevated},
			required: models.RoleElevated,
			want:     Render,
		},
		{
			name:     "elevated bypasses any role requirement",
			snap:     session.Snapshot{Status: session.StatusAuthenticated, User: elevated},
			required: models.RoleStandard,
			want:     Render,
		},
		{
			name:     "matching role renders",
			snap:     session.Snapshot{Status: session.StatusAuthenticated, User: standard},
			required: models.RoleStandard,
			want:     Render,
		},
		{
			name:     "unauthenticated with a role requirement still redirects",
			snap:     session.Snapshot{Status: session.StatusUnauthenticated},
			required: models.RoleElevated,
			want:     RedirectToLogin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.snap, tt.required))
		})
	}
}
