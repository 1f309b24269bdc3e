package models

const (
	OrderTypeDineIn   = "dine_in"
	OrderTypeDelivery = "delivery"
	OrderTypeTakeout  = "takeout"

	OrderStatusCompleted = "completed"
	OrderStatusPending   = "pending"
	OrderStatusCancelled = "cancelled"
	OrderStatusRefunded  = "refunded"

	DeliveryStatusDelivered = "delivered"
	DeliveryStatusInTransit = "in_transit"

	SegmentVIP      = "vip"
	SegmentPremium  = "premium"
	SegmentStandard = "standard"
	SegmentNew      = "new"
)

var (
	PaymentMethods = []string{"card", "upi", "cash", "wallet"}
	StaffRoles     = []string{"manager", "chef", "server", "delivery", "cashier"}
	AuditActions   = []string{"order_created", "order_updated", "payment_processed"}
)
