package access_test

import (
	"testing"

	"github.com/counterline/posgate/pkg/posapi"
	"github.com/stretchr/testify/require"
)

// TestBootstrapFlow verifies the first-admin bootstrap and its guards.
func TestBootstrapFlow(t *testing.T) {
	baseURL, cleanup := setupAccessContainer(t)
	defer cleanup()

	client := posapi.NewClient(baseURL)

	t.Run("wrong token is rejected", func(t *testing.T) {
		_, err := client.Bootstrap(t.Context(), posapi.BootstrapRequest{
			Token:       "not-the-token",
			Email:       adminEmail,
			DisplayName: adminDisplayName,
			Password:    adminPassword,
		})
		require.True(t, posapi.IsCode(err, posapi.ErrCodeBootstrapUnauthorized), "got: %v", err)
	})

	t.Run("first bootstrap succeeds", func(t *testing.T) {
		resp, err := client.Bootstrap(t.Context(), posapi.BootstrapRequest{
			Token:       bootstrapToken,
			Email:       adminEmail,
			DisplayName: adminDisplayName,
			Password:    adminPassword,
		})
		require.NoError(t, err)
		require.Equal(t, "admin", resp.User.Role)
		require.Equal(t, adminEmail, resp.User.Email)
	})

	t.Run("second bootstrap is refused", func(t *testing.T) {
		_, err := client.Bootstrap(t.Context(), posapi.BootstrapRequest{
			Token:       bootstrapToken,
			Email:       "other@example.com",
			DisplayName: "Other",
			Password:    "Other123!",
		})
		require.True(t, posapi.IsCode(err, posapi.ErrCodeBootstrapAlready), "got: %v", err)
	})
}
