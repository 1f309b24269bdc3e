package generator

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/jaswdr/faker"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/restodata/restogen/internal/factories"
	"github.com/restodata/restogen/internal/models"
)

var log = logrus.New()

const isoFormat = "2006-01-02T15:04:05Z"

var (
	streets = []string{
		"Main Street", "Oak Avenue", "Cedar Lane", "Pine Street", "Maple Road",
		"Elm Street", "Lakeview Drive", "Sunset Boulevard", "Ridgeway Court",
		"Highland Avenue",
	}
	cities = []string{
		"Seattle", "Austin", "Denver", "Boston", "San Diego", "Portland",
		"Nashville", "Chicago", "San Francisco", "Atlanta",
	}
	specialInstructions = []string{
		"",
		"Extra cheese",
		"No onions",
		"Gluten-free dough",
		"Mild spice",
	}
)

// customerStats is the per-customer running aggregate, owned by a
// single Generate call and folded back into the customer records at
// the end of the pass.
type customerStats struct {
	total  float64
	count  int
	points int
	last   time.Time
}

// Generator produces a full dataset from one seeded random stream. All
// randomized choices draw from that stream in a fixed call order, so
// two generators with the same config produce identical datasets.
type Generator struct {
	cfg  *models.Config
	rng  *rand.Rand
	fake faker.Faker

	customerFactory *factories.CustomerFactory
	menuFactory     *factories.MenuFactory
	staffFactory    *factories.StaffFactory

	repaired int
}

func New(cfg *models.Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	src := rand.NewSource(cfg.Seed)
	rng := rand.New(src)
	fake := faker.NewWithSeed(src)
	anchor := cfg.AnchorDate.UTC()

	return &Generator{
		cfg:             cfg,
		rng:             rng,
		fake:            fake,
		customerFactory: factories.NewCustomerFactory(rng, fake, anchor),
		menuFactory:     factories.NewMenuFactory(rng),
		staffFactory:    factories.NewStaffFactory(rng, fake, anchor),
	}, nil
}

// Repaired reports how many order line items the post-pass referential
// check had to rewrite in the last Generate call.
func (g *Generator) Repaired() int {
	return g.repaired
}

// Generate runs the single-pass generation routine: entities first,
// then the order loop with its running aggregates and derived delivery
// and audit records, then the aggregation finalizer and the
// referential repair pass.
func (g *Generator) Generate() (*models.Dataset, error) {
	customers := make([]*models.Customer, g.cfg.Customers)
	for i := range customers {
		customers[i] = g.customerFactory.CreateCustomer(i + 1)
	}

	menu := g.menuFactory.BuildCatalog(g.cfg.EffectiveMenuItems())

	users := make([]*models.StaffUser, g.cfg.StaffUsers)
	staffIDs := make([]string, g.cfg.StaffUsers)
	for i := range users {
		users[i] = g.staffFactory.CreateUser(i + 1)
		staffIDs[i] = users[i].UserID
	}

	var bar *progressbar.ProgressBar
	if g.cfg.ShowProgress {
		bar = progressbar.NewOptions(g.cfg.Orders,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("generating orders"),
			progressbar.OptionShowCount(),
		)
	}

	stats := make(map[string]*customerStats, len(customers))
	orders := make([]*models.Order, 0, g.cfg.Orders)
	deliveries := make([]*models.DeliveryDetail, 0)
	auditLogs := make([]*models.AuditLogEntry, 0, g.cfg.Orders)

	for i := 0; i < g.cfg.Orders; i++ {
		order := g.synthesizeOrder(i+1, customers, menu, stats)
		orders = append(orders, order)

		if detail := g.maybeDeliveryDetail(order); detail != nil {
			deliveries = append(deliveries, detail)
		}
		auditLogs = append(auditLogs, g.auditEntry(order, staffIDs))

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	finalizeCustomers(customers, stats)

	dataset := &models.Dataset{
		Customers:       customers,
		MenuItems:       menu,
		Orders:          orders,
		DeliveryDetails: deliveries,
		Users:           users,
		AuditLogs:       auditLogs,
	}

	g.repaired = g.repairReferences(dataset)
	if g.repaired > 0 {
		log.WithField("repaired", g.repaired).Warn("rewrote order line items with dangling menu references")
	}

	return dataset, nil
}

func (g *Generator) synthesizeOrder(seq int, customers []*models.Customer, menu []*models.MenuItem, stats map[string]*customerStats) *models.Order {
	orderID := fmt.Sprintf("order_%05d", seq)
	customer := customers[g.rng.Intn(len(customers))]
	items := g.chooseItems(menu)

	subtotal := 0.0
	for _, item := range items {
		subtotal += item.TotalPrice
	}

	discount := 0.0
	if g.rng.Float64() < 0.35 {
		rates := []float64{0, 0.05, 0.1}
		discount = round2(subtotal * rates[g.rng.Intn(len(rates))])
	}
	tax := round2((subtotal - discount) * 0.08)
	totalAmount := round2(subtotal - discount + tax)

	orderType := selectWeighted(g.rng, orderTypeWeights)
	status := selectWeighted(g.rng, orderStatusWeights)
	createdAt := g.randomOrderTime()

	order := &models.Order{
		ID:                  orderID,
		OrderID:             orderID,
		CustomerID:          customer.CustomerID,
		OrderDate:           createdAt.Format(isoFormat),
		CreatedAt:           createdAt.Format(isoFormat),
		OrderType:           orderType,
		Status:              status,
		OrderStatus:         status,
		TotalAmount:         totalAmount,
		Subtotal:            round2(subtotal),
		Discount:            discount,
		Tax:                 tax,
		PaymentMode:         models.PaymentMethods[g.rng.Intn(len(models.PaymentMethods))],
		Items:               items,
		SpecialInstructions: specialInstructions[g.rng.Intn(len(specialInstructions))],
	}
	if orderType == models.OrderTypeDelivery {
		order.DeliveryAddress = g.randomAddress()
	}

	st, ok := stats[customer.CustomerID]
	if !ok {
		st = &customerStats{}
		stats[customer.CustomerID] = st
	}
	st.total += totalAmount
	st.count++
	st.points += int(totalAmount / 10)
	if createdAt.After(st.last) {
		st.last = createdAt
	}

	return order
}

// chooseItems picks 1-4 distinct menu items with quantities of 1-3.
// Unit prices are snapshots of the item's current price.
func (g *Generator) chooseItems(menu []*models.MenuItem) []models.OrderItem {
	selection := sampleMenuItems(g.rng, menu, intBetween(g.rng, 1, 4))
	items := make([]models.OrderItem, 0, len(selection))
	for _, item := range selection {
		quantity := intBetween(g.rng, 1, 3)
		items = append(items, models.OrderItem{
			MenuItemID: item.ItemID,
			Name:       item.Name,
			Quantity:   quantity,
			UnitPrice:  item.Price,
			Price:      item.Price,
			TotalPrice: round2(float64(quantity) * item.Price),
		})
	}
	return items
}

// randomOrderTime draws a creation timestamp from a ~120 to ~10 days
// historical window before the anchor, with the hour constrained to
// the 08:00-21:00 service window.
func (g *Generator) randomOrderTime() time.Time {
	start := g.cfg.AnchorDate.UTC().AddDate(0, 0, -120)
	days := intBetween(g.rng, 0, 110)
	hours := intBetween(g.rng, 8, 21)
	return start.AddDate(0, 0, days).Add(time.Duration(hours) * time.Hour)
}

func (g *Generator) randomAddress() string {
	number := intBetween(g.rng, 10, 999)
	street := streets[g.rng.Intn(len(streets))]
	city := cities[g.rng.Intn(len(cities))]
	return fmt.Sprintf("%d %s, %s", number, street, city)
}

// maybeDeliveryDetail attaches delivery tracking only to delivery
// orders that are completed or pending.
func (g *Generator) maybeDeliveryDetail(order *models.Order) *models.DeliveryDetail {
	if order.OrderType != models.OrderTypeDelivery {
		return nil
	}
	if order.Status != models.OrderStatusCompleted && order.Status != models.OrderStatusPending {
		return nil
	}

	createdAt, _ := time.Parse(isoFormat, order.CreatedAt)
	pickupTime := createdAt.Add(time.Duration(intBetween(g.rng, 15, 25)) * time.Minute)
	deliveryTime := pickupTime.Add(time.Duration(intBetween(g.rng, 12, 28)) * time.Minute)

	deliveryStatus := models.DeliveryStatusInTransit
	if order.Status == models.OrderStatusCompleted {
		deliveryStatus = models.DeliveryStatusDelivered
	}

	return &models.DeliveryDetail{
		ID:             "delivery_" + order.OrderID,
		OrderID:        order.OrderID,
		DeliveryPerson: g.fake.Person().FirstName() + " " + g.fake.Person().LastName(),
		PickupTime:     pickupTime.Format(isoFormat),
		DeliveryTime:   deliveryTime.Format(isoFormat),
		DeliveryStatus: deliveryStatus,
		DeliveryFee:    round2(floatBetween(g.rng, 3.5, 6.5)),
		DistanceKm:     round2(floatBetween(g.rng, 1.2, 6.8)),
		CustomerRating: intBetween(g.rng, 3, 5),
	}
}

func (g *Generator) auditEntry(order *models.Order, staffIDs []string) *models.AuditLogEntry {
	createdAt, _ := time.Parse(isoFormat, order.CreatedAt)
	return &models.AuditLogEntry{
		ID:         "audit_" + order.OrderID,
		Timestamp:  createdAt.Add(5 * time.Minute).Format(isoFormat),
		UserID:     staffIDs[g.rng.Intn(len(staffIDs))],
		Action:     models.AuditActions[g.rng.Intn(len(models.AuditActions))],
		Resource:   "orders",
		ResourceID: order.OrderID,
		Details:    fmt.Sprintf("Order status set to %s", order.Status),
	}
}

// finalizeCustomers overwrites each customer's stored aggregates with
// the values accumulated during the order pass. Customers that never
// received an order keep zeroed aggregates and no last order date.
func finalizeCustomers(customers []*models.Customer, stats map[string]*customerStats) {
	for _, customer := range customers {
		st, ok := stats[customer.CustomerID]
		if !ok {
			continue
		}
		customer.TotalSpent = round2(st.total)
		customer.OrdersCount = st.count
		customer.LoyaltyPoints = st.points
		if !st.last.IsZero() {
			customer.LastOrderDate = st.last.Format("2006-01-02")
		}
	}
}

// repairReferences rewrites any order line item whose menu reference
// does not resolve, replacing it with a valid item and recomputing the
// line total. It never fails and leaves the dataset referentially
// consistent.
func (g *Generator) repairReferences(dataset *models.Dataset) int {
	menuIndex := make(map[string]*models.MenuItem, len(dataset.MenuItems))
	for _, item := range dataset.MenuItems {
		menuIndex[item.ItemID] = item
	}

	repaired := 0
	for _, order := range dataset.Orders {
		for i := range order.Items {
			if _, ok := menuIndex[order.Items[i].MenuItemID]; ok {
				continue
			}
			replacement := dataset.MenuItems[g.rng.Intn(len(dataset.MenuItems))]
			order.Items[i].MenuItemID = replacement.ItemID
			order.Items[i].Name = replacement.Name
			order.Items[i].UnitPrice = replacement.Price
			order.Items[i].Price = replacement.Price
			order.Items[i].TotalPrice = round2(replacement.Price * float64(order.Items[i].Quantity))
			repaired++
		}
	}
	return repaired
}
