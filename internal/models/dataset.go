package models

const (
	CollectionCustomers       = "customers"
	CollectionMenuItems       = "menu_items"
	CollectionOrders          = "orders"
	CollectionDeliveryDetails = "delivery_details"
	CollectionUsers           = "users"
	CollectionAuditLogs       = "audit_logs"
)

// Dataset is the complete in-memory output of one generation pass.
// After generation it is treated as read-only by every sink.
type Dataset struct {
	Customers       []*Customer
	MenuItems       []*MenuItem
	Orders          []*Order
	DeliveryDetails []*DeliveryDetail
	Users           []*StaffUser
	AuditLogs       []*AuditLogEntry
}

// Collection pairs a collection name with its documents in a
// sink-agnostic shape.
type Collection struct {
	Name string
	Docs []interface{}
}

// Collections returns the six collections in a fixed order. The order
// is part of the output contract: sinks that emit sequentially (files,
// Kafka topics, bulk loads) always see the same sequence.
func (d *Dataset) Collections() []Collection {
	return []Collection{
		{Name: CollectionCustomers, Docs: toDocs(d.Customers)},
		{Name: CollectionMenuItems, Docs: toDocs(d.MenuItems)},
		{Name: CollectionOrders, Docs: toDocs(d.Orders)},
		{Name: CollectionDeliveryDetails, Docs: toDocs(d.DeliveryDetails)},
		{Name: CollectionUsers, Docs: toDocs(d.Users)},
		{Name: CollectionAuditLogs, Docs: toDocs(d.AuditLogs)},
	}
}

func toDocs[T any](records []T) []interface{} {
	docs := make([]interface{}, len(records))
	for i, r := range records {
		docs[i] = r
	}
	return docs
}
