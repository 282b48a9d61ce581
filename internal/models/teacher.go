package models

import "strings"

// Teacher is a user with teaching capability. Lower levels carry more access.
type Teacher struct {
	ID        string `db:"id" json:"id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email"`
	Level     int    `db:"level" json:"level"`
}

// FullName joins first and last name.
func (t Teacher) FullName() string {
	return strings.TrimSpace(t.FirstName + " " + t.LastName)
}

// Summary projects the teacher onto the fields shown next to a lesson.
func (t Teacher) Summary() TeacherSummary {
	return TeacherSummary{
		ID:        t.ID,
		FirstName: t.FirstName,
		LastName:  t.LastName,
		Username:  t.Email,
		Level:     t.Level,
		FullName:  t.FullName(),
	}
}

// TeacherSummary is the compact teacher projection used by latest-lesson results.
type TeacherSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Level     int    `json:"level"`
	FullName  string `json:"full_name"`
}

// TeacherRef is a loose reference to a teacher.
type TeacherRef struct {
	ID    string
	Email string
}

// Empty reports whether no teacher was referenced.
func (r TeacherRef) Empty() bool {
	return strings.TrimSpace(r.ID) == "" && strings.TrimSpace(r.Email) == ""
}
