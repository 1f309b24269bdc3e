package factories

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jaswdr/faker"
	"github.com/restodata/restogen/internal/models"
)

var rolePermissions = map[string][]string{
	"manager":  {"order_management", "reports", "menu_updates", "staff"},
	"chef":     {"order_management", "menu_updates"},
	"server":   {"order_management"},
	"delivery": {"deliveries"},
	"cashier":  {"payments", "order_management"},
}

var defaultPermissions = []string{"order_management"}

type StaffFactory struct {
	rng    *rand.Rand
	fake   faker.Faker
	anchor time.Time
}

func NewStaffFactory(rng *rand.Rand, fake faker.Faker, anchor time.Time) *StaffFactory {
	return &StaffFactory{rng: rng, fake: fake, anchor: anchor}
}

func (sf *StaffFactory) CreateUser(seq int) *models.StaffUser {
	id := fmt.Sprintf("staff_%03d", seq)
	name := sf.fake.Person().FirstName() + " " + sf.fake.Person().LastName()
	role := models.StaffRoles[sf.rng.Intn(len(models.StaffRoles))]
	hireDate := daysBefore(sf.anchor, sf.rng, 120, 720)

	return &models.StaffUser{
		ID:          id,
		UserID:      id,
		Name:        name,
		Role:        role,
		Email:       randomEmail(sf.rng, name),
		HireDate:    hireDate.Format("2006-01-02"),
		Active:      sf.rng.Float64() > 0.08,
		Permissions: PermissionsForRole(role),
	}
}

// PermissionsForRole resolves the fixed role permission set; unmapped
// roles get the single default permission.
func PermissionsForRole(role string) []string {
	if perms, ok := rolePermissions[role]; ok {
		out := make([]string, len(perms))
		copy(out, perms)
		return out
	}
	out := make([]string, len(defaultPermissions))
	copy(out, defaultPermissions)
	return out
}
