package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haymini/hayctl/internal/models"
)

func TestNormalizeList(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		users, err := normalizeList[models.User]([]byte(`[{"id":"u-1"},{"id":"u-2"}]`), "users")
		require.NoError(t, err)
		assert.Len(t, users, 2)
		assert.Equal(t, "u-1", users[0].ID)
	})

	t.Run("wrapped in resource key", func(t *testing.T) {
		users, err := normalizeList[models.User]([]byte(`{"users":[{"id":"u-1"}]}`), "users")
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("leading whitespace is tolerated", func(t *testing.T) {
		users, err := normalizeList[models.User]([]byte("\n  [{\"id\":\"u-1\"}]"), "users")
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("wrapper without the resource key", func(t *testing.T) {
		_, err := normalizeList[models.User]([]byte(`{"items":[]}`), "users")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("malformed payload", func(t *testing.T) {
		_, err := normalizeList[models.User]([]byte(`{"users":`), "users")
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestClient_ListUsers(t *testing.T) {
	t.Run("both backend shapes decode identically", func(t *testing.T) {
		payloads := map[string]string{
			"bare array": `[{"id":"u-1","username":"asel","role":"elevated"}]`,
			"wrapped":    `{"users":[{"id":"u-1","username":"asel","role":"elevated"}]}`,
		}

		for name, payload := range payloads {
			t.Run(name, func(t *testing.T) {
				client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "/users", r.URL.Path)
					_, _ = w.Write([]byte(payload))
				}))
				client.SetToken("T")

				users, err := client.ListUsers(context.Background())
				require.NoError(t, err)
				require.Len(t, users, 1)
				assert.Equal(t, "asel", users[0].Username)
				assert.Equal(t, models.RoleElevated, users[0].Role)
			})
		}
	})
}
