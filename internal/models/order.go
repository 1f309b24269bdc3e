package models

// OrderItem is a line item with a price snapshot taken at generation
// time. Price duplicates UnitPrice for older analytics pipelines that
// still read "price".
type OrderItem struct {
	MenuItemID string  `json:"menu_item_id" bson:"menu_item_id"`
	Name       string  `json:"name" bson:"name"`
	Quantity   int     `json:"quantity" bson:"quantity"`
	UnitPrice  float64 `json:"unit_price" bson:"unit_price"`
	Price      float64 `json:"price" bson:"price"`
	TotalPrice float64 `json:"total_price" bson:"total_price"`
}

// Order invariant: TotalAmount == round(Subtotal - Discount + Tax, 2).
// OrderDate/CreatedAt and Status/OrderStatus are intentional duplicates
// kept for legacy query compatibility. DeliveryAddress is present iff
// the order type is "delivery".
type Order struct {
	ID                  string      `json:"_id" bson:"_id"`
	OrderID             string      `json:"order_id" bson:"order_id"`
	CustomerID          string      `json:"customer_id" bson:"customer_id"`
	OrderDate           string      `json:"order_date" bson:"order_date"`
	CreatedAt           string      `json:"created_at" bson:"created_at"`
	OrderType           string      `json:"order_type" bson:"order_type"`
	Status              string      `json:"status" bson:"status"`
	OrderStatus         string      `json:"order_status" bson:"order_status"`
	TotalAmount         float64     `json:"total_amount" bson:"total_amount"`
	Subtotal            float64     `json:"subtotal" bson:"subtotal"`
	Discount            float64     `json:"discount" bson:"discount"`
	Tax                 float64     `json:"tax" bson:"tax"`
	PaymentMode         string      `json:"payment_mode" bson:"payment_mode"`
	Items               []OrderItem `json:"items" bson:"items"`
	SpecialInstructions string      `json:"special_instructions" bson:"special_instructions"`
	DeliveryAddress     string      `json:"delivery_address,omitempty" bson:"delivery_address,omitempty"`
}
