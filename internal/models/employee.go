package models

import "time"

// Employee is one provisioned SCIM User row.
// Meta holds the serialized JSON attribute bag exactly as received; the
// protocol layer never looks inside it.
type Employee struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Meta      string    `json:"meta"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
