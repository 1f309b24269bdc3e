package generator

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/restodata/restogen/internal/models"
)

func testConfig() *models.Config {
	return &models.Config{
		Seed:       8675309,
		Orders:     480,
		Customers:  60,
		MenuItems:  24,
		StaffUsers: 12,
		AnchorDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func generate(t *testing.T, cfg *models.Config) *models.Dataset {
	t.Helper()
	gen, err := New(cfg)
	require.NoError(t, err)
	dataset, err := gen.Generate()
	require.NoError(t, err)
	return dataset
}

func TestGenerateDeterminism(t *testing.T) {
	first := generate(t, testConfig())
	second := generate(t, testConfig())

	for i, collection := range first.Collections() {
		want, err := json.Marshal(collection.Docs)
		require.NoError(t, err)
		got, err := json.Marshal(second.Collections()[i].Docs)
		require.NoError(t, err)
		require.Equal(t, string(want), string(got), "collection %s differs between runs", collection.Name)
	}
}

func TestGenerateSeedSensitivity(t *testing.T) {
	first := generate(t, testConfig())

	cfg := testConfig()
	cfg.Seed = 42
	second := generate(t, cfg)

	want, err := json.Marshal(first.Orders)
	require.NoError(t, err)
	got, err := json.Marshal(second.Orders)
	require.NoError(t, err)
	require.NotEqual(t, string(want), string(got))
}

func TestGenerateCollectionSizing(t *testing.T) {
	cfg := testConfig()
	dataset := generate(t, cfg)

	require.Len(t, dataset.Orders, cfg.Orders)
	require.Len(t, dataset.Customers, cfg.Customers)
	require.Len(t, dataset.MenuItems, cfg.MenuItems)
	require.Len(t, dataset.Users, cfg.StaffUsers)
	require.Len(t, dataset.AuditLogs, cfg.Orders)
}

func TestGenerateMenuNeverShrinksBelowCatalog(t *testing.T) {
	cfg := testConfig()
	cfg.MenuItems = 8
	dataset := generate(t, cfg)

	require.Len(t, dataset.MenuItems, models.MenuCatalogSize)
}

func TestGenerateReferentialIntegrity(t *testing.T) {
	dataset := generate(t, testConfig())

	menuIndex := make(map[string]bool, len(dataset.MenuItems))
	for _, item := range dataset.MenuItems {
		menuIndex[item.ItemID] = true
	}
	customerIndex := make(map[string]bool, len(dataset.Customers))
	for _, customer := range dataset.Customers {
		customerIndex[customer.CustomerID] = true
	}

	for _, order := range dataset.Orders {
		require.True(t, customerIndex[order.CustomerID], "order %s references unknown customer %s", order.OrderID, order.CustomerID)
		require.NotEmpty(t, order.Items)
		require.LessOrEqual(t, len(order.Items), 4)
		for _, item := range order.Items {
			require.True(t, menuIndex[item.MenuItemID], "order %s references unknown menu item %s", order.OrderID, item.MenuItemID)
			require.GreaterOrEqual(t, item.Quantity, 1)
			require.LessOrEqual(t, item.Quantity, 3)
		}
	}
}

func TestGenerateArithmeticInvariants(t *testing.T) {
	dataset := generate(t, testConfig())

	for _, order := range dataset.Orders {
		lineSum := 0.0
		for _, item := range order.Items {
			require.InDelta(t, round2(float64(item.Quantity)*item.UnitPrice), item.TotalPrice, 1e-9)
			require.Equal(t, item.UnitPrice, item.Price)
			lineSum += item.TotalPrice
		}
		require.InDelta(t, round2(lineSum), order.Subtotal, 1e-9, "order %s subtotal", order.OrderID)
		require.InDelta(t, round2(order.Subtotal-order.Discount+order.Tax), order.TotalAmount, 1e-9, "order %s total", order.OrderID)
		require.GreaterOrEqual(t, order.Discount, 0.0)
	}
}

func TestGenerateCustomerAggregates(t *testing.T) {
	dataset := generate(t, testConfig())

	type agg struct {
		total  float64
		count  int
		points int
		last   string
	}
	expected := make(map[string]*agg)
	for _, order := range dataset.Orders {
		a, ok := expected[order.CustomerID]
		if !ok {
			a = &agg{}
			expected[order.CustomerID] = a
		}
		a.total += order.TotalAmount
		a.count++
		a.points += int(order.TotalAmount / 10)
		if day := order.CreatedAt[:10]; day > a.last {
			a.last = day
		}
	}

	for _, customer := range dataset.Customers {
		a, ok := expected[customer.CustomerID]
		if !ok {
			require.Zero(t, customer.OrdersCount)
			require.Zero(t, customer.TotalSpent)
			require.Zero(t, customer.LoyaltyPoints)
			require.Empty(t, customer.LastOrderDate)
			continue
		}
		require.Equal(t, a.count, customer.OrdersCount, "customer %s orders_count", customer.CustomerID)
		require.InDelta(t, round2(a.total), customer.TotalSpent, 1e-9, "customer %s total_spent", customer.CustomerID)
		require.Equal(t, a.points, customer.LoyaltyPoints, "customer %s loyalty_points", customer.CustomerID)
		require.Equal(t, a.last, customer.LastOrderDate, "customer %s last_order_date", customer.CustomerID)
	}
}

func TestGenerateDeliverySubset(t *testing.T) {
	dataset := generate(t, testConfig())

	orders := make(map[string]*models.Order, len(dataset.Orders))
	eligible := make(map[string]bool)
	for _, order := range dataset.Orders {
		orders[order.OrderID] = order
		if order.OrderType == models.OrderTypeDelivery &&
			(order.Status == models.OrderStatusCompleted || order.Status == models.OrderStatusPending) {
			eligible[order.OrderID] = true
		}
	}

	require.Len(t, dataset.DeliveryDetails, len(eligible))
	for _, detail := range dataset.DeliveryDetails {
		order, ok := orders[detail.OrderID]
		require.True(t, ok, "delivery detail %s has no parent order", detail.ID)
		require.True(t, eligible[detail.OrderID])

		created, err := time.Parse(isoFormat, order.CreatedAt)
		require.NoError(t, err)
		pickup, err := time.Parse(isoFormat, detail.PickupTime)
		require.NoError(t, err)
		delivered, err := time.Parse(isoFormat, detail.DeliveryTime)
		require.NoError(t, err)

		require.True(t, pickup.After(created), "pickup must follow order creation")
		require.True(t, delivered.After(pickup), "delivery must follow pickup")

		if order.Status == models.OrderStatusCompleted {
			require.Equal(t, models.DeliveryStatusDelivered, detail.DeliveryStatus)
		} else {
			require.Equal(t, models.DeliveryStatusInTransit, detail.DeliveryStatus)
		}
	}
}

func TestGenerateDeliveryAddressPresence(t *testing.T) {
	dataset := generate(t, testConfig())

	for _, order := range dataset.Orders {
		if order.OrderType == models.OrderTypeDelivery {
			require.NotEmpty(t, order.DeliveryAddress, "delivery order %s needs an address", order.OrderID)
		} else {
			require.Empty(t, order.DeliveryAddress, "non-delivery order %s must not carry an address", order.OrderID)
		}
	}
}

func TestGenerateAuditLogs(t *testing.T) {
	cfg := testConfig()
	dataset := generate(t, cfg)

	staffIndex := make(map[string]bool, len(dataset.Users))
	for _, user := range dataset.Users {
		staffIndex[user.UserID] = true
	}

	for i, entry := range dataset.AuditLogs {
		order := dataset.Orders[i]
		require.Equal(t, "audit_"+order.OrderID, entry.ID)
		require.Equal(t, order.OrderID, entry.ResourceID)
		require.Equal(t, "orders", entry.Resource)
		require.True(t, staffIndex[entry.UserID], "audit entry %s attributed to unknown staff %s", entry.ID, entry.UserID)
		require.Contains(t, entry.Details, order.Status)

		created, err := time.Parse(isoFormat, order.CreatedAt)
		require.NoError(t, err)
		ts, err := time.Parse(isoFormat, entry.Timestamp)
		require.NoError(t, err)
		require.Equal(t, created.Add(5*time.Minute), ts)
	}
}

func TestGenerateOrderTimeWindow(t *testing.T) {
	cfg := testConfig()
	dataset := generate(t, cfg)

	windowStart := cfg.AnchorDate.AddDate(0, 0, -120)
	windowEnd := cfg.AnchorDate

	for _, order := range dataset.Orders {
		created, err := time.Parse(isoFormat, order.CreatedAt)
		require.NoError(t, err)
		require.False(t, created.Before(windowStart))
		require.True(t, created.Before(windowEnd))
		require.GreaterOrEqual(t, created.Hour(), 8)
		require.LessOrEqual(t, created.Hour(), 21)
	}
}

func TestGenerateSingleOrder(t *testing.T) {
	cfg := testConfig()
	cfg.Orders = 1
	dataset := generate(t, cfg)

	require.Len(t, dataset.Orders, 1)
	require.Len(t, dataset.AuditLogs, 1)

	order := dataset.Orders[0]
	if order.OrderType != models.OrderTypeDelivery {
		require.Empty(t, dataset.DeliveryDetails)
	}

	ordered := 0
	for _, customer := range dataset.Customers {
		if customer.OrdersCount > 0 {
			ordered++
			require.Equal(t, order.CustomerID, customer.CustomerID)
			require.Equal(t, 1, customer.OrdersCount)
			require.InDelta(t, order.TotalAmount, customer.TotalSpent, 1e-9)
		}
	}
	require.Equal(t, 1, ordered)
}

func TestGenerateDegenerateConfigs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Config)
	}{
		{name: "zero orders", mutate: func(c *models.Config) { c.Orders = 0 }},
		{name: "zero customers", mutate: func(c *models.Config) { c.Customers = 0 }},
		{name: "menu below minimum", mutate: func(c *models.Config) { c.MenuItems = 7 }},
		{name: "zero staff", mutate: func(c *models.Config) { c.StaffUsers = 0 }},
		{name: "missing anchor", mutate: func(c *models.Config) { c.AnchorDate = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			_, err := New(cfg)
			require.Error(t, err)

			var cfgErr *models.ConfigError
			require.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestRepairReferences(t *testing.T) {
	cfg := testConfig()
	cfg.Orders = 20
	gen, err := New(cfg)
	require.NoError(t, err)
	dataset, err := gen.Generate()
	require.NoError(t, err)
	require.Zero(t, gen.Repaired())

	// simulate a config mismatch: point a line item at a missing id
	broken := dataset.Orders[3]
	broken.Items[0].MenuItemID = "menu_999"
	broken.Items[0].TotalPrice = -1

	repaired := gen.repairReferences(dataset)
	require.Equal(t, 1, repaired)

	menuIndex := make(map[string]*models.MenuItem)
	for _, item := range dataset.MenuItems {
		menuIndex[item.ItemID] = item
	}
	fixed := broken.Items[0]
	replacement, ok := menuIndex[fixed.MenuItemID]
	require.True(t, ok)
	require.Equal(t, replacement.Name, fixed.Name)
	require.Equal(t, replacement.Price, fixed.UnitPrice)
	require.InDelta(t, round2(replacement.Price*float64(fixed.Quantity)), fixed.TotalPrice, 1e-9)
}

func TestRound2(t *testing.T) {
	require.Equal(t, 12.35, round2(12.345000001))
	require.Equal(t, 12.34, round2(12.34499999))
	require.Equal(t, 0.0, round2(0))
	require.Equal(t, math.Round(7.005*100)/100, round2(7.005))
}
