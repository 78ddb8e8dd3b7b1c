package models

import "time"

// Profile is a named mod configuration referencing enabled mod IDs.
type Profile struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	EnabledModIDs []string  `json:"enabledModIds"`
	CreatedAt     time.Time `json:"createdAt"`
}
