package factories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/restodata/restogen/internal/models"
)

func TestPermissionsForRole(t *testing.T) {
	tests := []struct {
		role     string
		expected []string
	}{
		{role: "manager", expected: []string{"order_management", "reports", "menu_updates", "staff"}},
		{role: "chef", expected: []string{"order_management", "menu_updates"}},
		{role: "server", expected: []string{"order_management"}},
		{role: "delivery", expected: []string{"deliveries"}},
		{role: "cashier", expected: []string{"payments", "order_management"}},
		{role: "sommelier", expected: []string{"order_management"}}, // unmapped role falls back
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			require.Equal(t, tt.expected, PermissionsForRole(tt.role))
		})
	}
}

func TestPermissionsForRoleReturnsCopy(t *testing.T) {
	perms := PermissionsForRole("manager")
	perms[0] = "mutated"
	require.Equal(t, "order_management", PermissionsForRole("manager")[0])
}

func TestCreateUser(t *testing.T) {
	rng, fake := newTestStream(5)
	anchor := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	sf := NewStaffFactory(rng, fake, anchor)

	roles := map[string]bool{}
	for _, role := range models.StaffRoles {
		roles[role] = true
	}

	for seq := 1; seq <= 20; seq++ {
		user := sf.CreateUser(seq)
		require.Equal(t, user.ID, user.UserID)
		require.Contains(t, user.UserID, "staff_")
		require.True(t, roles[user.Role], "unexpected role %q", user.Role)
		require.Equal(t, PermissionsForRole(user.Role), user.Permissions)

		hired, err := time.Parse("2006-01-02", user.HireDate)
		require.NoError(t, err)
		require.True(t, hired.Before(anchor))
		require.False(t, hired.Before(anchor.AddDate(0, 0, -720)))
	}
}
