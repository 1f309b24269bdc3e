package output

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/restodata/restogen/internal/models"
)

func testDataset() *models.Dataset {
	return &models.Dataset{
		Customers: []*models.Customer{
			{
				ID: "cust_0001", CustomerID: "cust_0001", Name: "Avery King",
				Email: "avery.king42@example.com", Phone: "+1-555-201-7788",
				Segment: "standard", RegistrationDate: "2024-11-03",
				TotalSpent: 56.16, OrdersCount: 1, LoyaltyPoints: 5, LastOrderDate: "2025-03-14",
			},
		},
		MenuItems: []*models.MenuItem{
			{
				ID: "menu_001", ItemID: "menu_001", Name: "Garlic Bread",
				Category: "starters", Price: 6.5, Cost: 2.1,
				Description: "Signature garlic bread prepared daily.",
				Availability: true, Allergens: []string{"gluten"}, PreparationTime: 12,
			},
		},
		Orders: []*models.Order{
			{
				ID: "order_00001", OrderID: "order_00001", CustomerID: "cust_0001",
				OrderDate: "2025-03-14T12:00:00Z", CreatedAt: "2025-03-14T12:00:00Z",
				OrderType: "dine_in", Status: "completed", OrderStatus: "completed",
				TotalAmount: 56.16, Subtotal: 52.0, Discount: 0, Tax: 4.16,
				PaymentMode: "card",
				Items: []models.OrderItem{
					{MenuItemID: "menu_001", Name: "Garlic Bread", Quantity: 2, UnitPrice: 6.5, Price: 6.5, TotalPrice: 13.0},
				},
			},
		},
		DeliveryDetails: []*models.DeliveryDetail{},
		Users: []*models.StaffUser{
			{
				ID: "staff_001", UserID: "staff_001", Name: "Jordan Lee", Role: "manager",
				Email: "jordan.lee11@mail.com", HireDate: "2023-09-01", Active: true,
				Permissions: []string{"order_management", "reports", "menu_updates", "staff"},
			},
		},
		AuditLogs: []*models.AuditLogEntry{
			{
				ID: "audit_order_00001", Timestamp: "2025-03-14T12:05:00Z",
				UserID: "staff_001", Action: "order_created", Resource: "orders",
				ResourceID: "order_00001", Details: "Order status set to completed",
			},
		},
	}
}

func TestJSONOutputWritesSixCollections(t *testing.T) {
	dir := t.TempDir()
	sink := NewJSONOutput(dir, "")

	require.NoError(t, sink.WriteDataset(context.Background(), testDataset()))
	require.NoError(t, sink.Close())

	expected := map[string]int{
		"customers":        1,
		"menu_items":       1,
		"orders":           1,
		"delivery_details": 0,
		"users":            1,
		"audit_logs":       1,
	}

	for name, count := range expected {
		path := filepath.Join(dir, name+".json")
		data, err := os.ReadFile(path)
		require.NoError(t, err, "missing %s", path)

		var records []map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &records), "%s must be a JSON array", name)
		require.Len(t, records, count)
	}
}

func TestJSONOutputEmptyCollectionIsArray(t *testing.T) {
	dir := t.TempDir()
	sink := NewJSONOutput(dir, "")
	require.NoError(t, sink.WriteDataset(context.Background(), testDataset()))

	data, err := os.ReadFile(filepath.Join(dir, "delivery_details.json"))
	require.NoError(t, err)
	require.JSONEq(t, "[]", string(data))
}

func TestJSONOutputIsByteStable(t *testing.T) {
	dataset := testDataset()

	dirA := t.TempDir()
	dirB := t.TempDir()
	require.NoError(t, NewJSONOutput(dirA, "").WriteDataset(context.Background(), dataset))
	require.NoError(t, NewJSONOutput(dirB, "").WriteDataset(context.Background(), dataset))

	for _, collection := range dataset.Collections() {
		a, err := os.ReadFile(filepath.Join(dirA, collection.Name+".json"))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(dirB, collection.Name+".json"))
		require.NoError(t, err)
		require.Equal(t, a, b)
	}
}

func TestJSONOutputOmitsAbsentFields(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewJSONOutput(dir, "").WriteDataset(context.Background(), testDataset()))

	data, err := os.ReadFile(filepath.Join(dir, "orders.json"))
	require.NoError(t, err)

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &records))
	// dine_in orders carry no delivery_address key at all
	_, present := records[0]["delivery_address"]
	require.False(t, present)
}

func TestJSONOutputFailsOnUnwritableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	sink := NewJSONOutput(dir, "out")
	err := sink.WriteDataset(context.Background(), testDataset())
	require.Error(t, err)

	var sinkErr *SinkError
	require.ErrorAs(t, err, &sinkErr)
	require.Equal(t, "json", sinkErr.Sink)
}
