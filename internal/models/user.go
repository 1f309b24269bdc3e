package models

// StaffUser is a back-of-house account, independent of the order stream.
type StaffUser struct {
	ID          string   `json:"_id" bson:"_id"`
	UserID      string   `json:"user_id" bson:"user_id"`
	Name        string   `json:"name" bson:"name"`
	Role        string   `json:"role" bson:"role"`
	Email       string   `json:"email" bson:"email"`
	HireDate    string   `json:"hire_date" bson:"hire_date"`
	Active      bool     `json:"active" bson:"active"`
	Permissions []string `json:"permissions" bson:"permissions"`
}
