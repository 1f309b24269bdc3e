package models

// AuditLogEntry is appended once per order, five minutes after creation.
type AuditLogEntry struct {
	ID         string `json:"_id" bson:"_id"`
	Timestamp  string `json:"timestamp" bson:"timestamp"`
	UserID     string `json:"user_id" bson:"user_id"`
	Action     string `json:"action" bson:"action"`
	Resource   string `json:"resource" bson:"resource"`
	ResourceID string `json:"resource_id" bson:"resource_id"`
	Details    string `json:"details" bson:"details"`
}
