package models

// Customer aggregates (total_spent, orders_count, loyalty_points,
// last_order_date) start zeroed and are overwritten once by the
// aggregation finalizer after the order pass.
type Customer struct {
	ID               string  `json:"_id" bson:"_id"`
	CustomerID       string  `json:"customer_id" bson:"customer_id"`
	Name             string  `json:"name" bson:"name"`
	Email            string  `json:"email" bson:"email"`
	Phone            string  `json:"phone" bson:"phone"`
	Segment          string  `json:"segment" bson:"segment"`
	RegistrationDate string  `json:"registration_date" bson:"registration_date"`
	TotalSpent       float64 `json:"total_spent" bson:"total_spent"`
	OrdersCount      int     `json:"orders_count" bson:"orders_count"`
	LoyaltyPoints    int     `json:"loyalty_points" bson:"loyalty_points"`
	LastOrderDate    string  `json:"last_order_date,omitempty" bson:"last_order_date,omitempty"`
}
