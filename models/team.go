package models

import "time"

// Team is a registered roster. Name and ID never change after registration.
type Team struct {
	ID         int       `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	DirectSeed bool      `json:"direct_seed" db:"direct_seed"` // skips group qualification
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
