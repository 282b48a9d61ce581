package models

import (
	"time"

	"github.com/lib/pq"
)

// Lesson is the stored lesson record with relational ids.
type Lesson struct {
	ID         string         `db:"id" json:"id"`
	Date       time.Time      `db:"date" json:"date"`
	LessonType string         `db:"lesson_type" json:"lesson_type"`
	Notes      string         `db:"notes" json:"notes"`
	StudentIDs pq.StringArray `db:"student_ids" json:"student_ids"`
	TeacherID  string         `db:"teacher_id" json:"teacher_id"`
	TotalEdits int            `db:"total_edits" json:"total_edits"`
	LastEdited time.Time      `db:"last_edited" json:"last_edited"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
}

// LessonDetail is a lesson with its teacher, students and categories expanded.
type LessonDetail struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	LessonType string    `json:"lesson_type"`
	Notes      string    `json:"notes"`
	TotalEdits int       `json:"total_edits"`
	LastEdited time.Time `json:"last_edited"`
	Teacher    Teacher   `json:"teacher"`
	Students   []Student `json:"students"`
}

// LessonPatch carries the fields supplied to a partial update. Nil fields are
// left untouched; EditedAt is always stamped.
type LessonPatch struct {
	Date       *time.Time
	LessonType *string
	Notes      *string
	StudentIDs []string
	TeacherID  *string
	EditedAt   time.Time
}

// LessonQuery is the store-neutral predicate produced by the query builder.
// Zero values impose no constraint.
type LessonQuery struct {
	Range     *DateRange
	TeacherID string
	StudentID string
}

// Matches evaluates the predicate against a stored lesson.
func (q LessonQuery) Matches(l Lesson) bool {
	if q.Range != nil && !q.Range.Contains(l.Date) {
		return false
	}
	if q.TeacherID != "" && l.TeacherID != q.TeacherID {
		return false
	}
	if q.StudentID != "" {
		for _, id := range l.StudentIDs {
			if id == q.StudentID {
				return true
			}
		}
		return false
	}
	return true
}

// SearchCriteria holds the loosely specified filters accepted by lesson search.
// Id-based references take precedence over email or name based ones.
type SearchCriteria struct {
	TeacherID    string `form:"teacherId" json:"teacher_id,omitempty"`
	TeacherEmail string `form:"teacherEmail" json:"teacher_email,omitempty"`
	StudentID    string `form:"studentId" json:"student_id,omitempty"`
	StudentFirst string `form:"studentFirst" json:"student_first,omitempty"`
	StudentLast  string `form:"studentLast" json:"student_last,omitempty"`
	StartDate    string `form:"startDate" json:"start_date,omitempty"`
	EndDate      string `form:"endDate" json:"end_date,omitempty"`
}

// TeacherRef returns the teacher part of the criteria.
func (c SearchCriteria) TeacherRef() TeacherRef {
	return TeacherRef{ID: c.TeacherID, Email: c.TeacherEmail}
}

// StudentRef returns the student part of the criteria.
func (c SearchCriteria) StudentRef() StudentRef {
	return StudentRef{ID: c.StudentID, FirstName: c.StudentFirst, LastName: c.StudentLast}
}
