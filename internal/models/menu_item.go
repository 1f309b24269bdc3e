package models

type MenuItem struct {
	ID              string   `json:"_id" bson:"_id"`
	ItemID          string   `json:"item_id" bson:"item_id"`
	Name            string   `json:"name" bson:"name"`
	Category        string   `json:"category" bson:"category"`
	Price           float64  `json:"price" bson:"price"`
	Cost            float64  `json:"cost" bson:"cost"`
	Description     string   `json:"description" bson:"description"`
	Availability    bool     `json:"availability" bson:"availability"`
	Allergens       []string `json:"allergens" bson:"allergens"`
	PreparationTime int      `json:"preparation_time" bson:"preparation_time"` // minutes
}
