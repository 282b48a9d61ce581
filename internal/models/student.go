package models

import "strings"

// Category buckets students for reporting.
type Category struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Student is a learner. Category is expanded when loaded through the store.
type Student struct {
	ID         string    `db:"id" json:"id"`
	FirstName  string    `db:"first_name" json:"first_name"`
	LastName   string    `db:"last_name" json:"last_name"`
	CategoryID *string   `db:"category_id" json:"-"`
	Category   *Category `db:"-" json:"category,omitempty"`
}

// StudentRef is a loose reference to a student, by id or by full name.
type StudentRef struct {
	ID        string
	FirstName string
	LastName  string
}

// Empty reports whether no usable student reference was supplied. A name
// reference needs both parts.
func (r StudentRef) Empty() bool {
	if strings.TrimSpace(r.ID) != "" {
		return false
	}
	return strings.TrimSpace(r.FirstName) == "" || strings.TrimSpace(r.LastName) == ""
}
