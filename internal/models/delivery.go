package models

// DeliveryDetail exists only for orders of type "delivery" whose status
// is completed or pending. DeliveryTime > PickupTime > order creation.
type DeliveryDetail struct {
	ID             string  `json:"_id" bson:"_id"`
	OrderID        string  `json:"order_id" bson:"order_id"`
	DeliveryPerson string  `json:"delivery_person" bson:"delivery_person"`
	PickupTime     string  `json:"pickup_time" bson:"pickup_time"`
	DeliveryTime   string  `json:"delivery_time" bson:"delivery_time"`
	DeliveryStatus string  `json:"delivery_status" bson:"delivery_status"`
	DeliveryFee    float64 `json:"delivery_fee" bson:"delivery_fee"`
	DistanceKm     float64 `json:"distance_km" bson:"distance_km"`
	CustomerRating int     `json:"customer_rating" bson:"customer_rating"`
}
