package models

import "time"

// ReportResult aggregates a set of lessons.
type ReportResult struct {
	// TotalHours is the sum of Hours. A lesson whose students span several
	// categories is counted once in each of them, and so more than once here.
	TotalHours    float64            `json:"total_hours"`
	TotalStudents int                `json:"total_students"`
	Hours         map[string]float64 `json:"hours"`
	Students      map[string]int     `json:"students"`
}

// LatestLesson is the most recent lesson attended by a student.
type LatestLesson struct {
	ID         string         `json:"id"`
	Date       time.Time      `json:"date"`
	LessonType string         `json:"lesson_type"`
	Notes      string         `json:"notes"`
	StudentIDs []string       `json:"student_ids"`
	Teacher    TeacherSummary `json:"teacher"`
}

// StudentLatestLesson pairs a student with their latest lesson in range.
type StudentLatestLesson struct {
	Student Student      `json:"student"`
	Lesson  LatestLesson `json:"lesson"`
}
