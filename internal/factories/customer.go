package factories

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jaswdr/faker"
	"github.com/restodata/restogen/internal/models"
)

var segmentWeights = []weightedValue{
	{Value: models.SegmentVIP, Weight: 0.1},
	{Value: models.SegmentPremium, Weight: 0.2},
	{Value: models.SegmentStandard, Weight: 0.45},
	{Value: models.SegmentNew, Weight: 0.25},
}

type CustomerFactory struct {
	rng    *rand.Rand
	fake   faker.Faker
	anchor time.Time
}

func NewCustomerFactory(rng *rand.Rand, fake faker.Faker, anchor time.Time) *CustomerFactory {
	return &CustomerFactory{rng: rng, fake: fake, anchor: anchor}
}

// CreateCustomer builds a customer with zeroed aggregates. The sequence
// number only feeds the identifier format.
func (cf *CustomerFactory) CreateCustomer(seq int) *models.Customer {
	id := fmt.Sprintf("cust_%04d", seq)
	name := cf.fake.Person().FirstName() + " " + cf.fake.Person().LastName()
	segment := selectWeighted(cf.rng, segmentWeights)
	registration := daysBefore(cf.anchor, cf.rng, 40, 380)

	return &models.Customer{
		ID:               id,
		CustomerID:       id,
		Name:             name,
		Email:            randomEmail(cf.rng, name),
		Phone:            randomPhone(cf.rng),
		Segment:          segment,
		RegistrationDate: registration.Format("2006-01-02"),
		TotalSpent:       0.0,
		OrdersCount:      0,
		LoyaltyPoints:    0,
	}
}
