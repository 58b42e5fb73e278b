package models

import "time"

// Person is a member of the roster that tasks can be assigned to.
// Names are unique across the roster (exact, case-sensitive match).
type Person struct {
	ID      int64     `json:"id" yaml:"id"`
	Name    string    `json:"name" yaml:"name"`
	Created time.Time `json:"created_at" yaml:"created"`
}
