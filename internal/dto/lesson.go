package dto

// CreateLessonRequest is the payload for creating a lesson.
type CreateLessonRequest struct {
	Date       string   `json:"date" validate:"required"`
	LessonType string   `json:"lesson_type" validate:"max=100"`
	Notes      string   `json:"notes" validate:"max=5000"`
	Students   []string `json:"students" validate:"required,min=1,dive,required"`
	Teacher    string   `json:"teacher" validate:"required"`
}

// UpdateLessonRequest carries the fields of a partial lesson update. Omitted
// fields keep their stored value.
type UpdateLessonRequest struct {
	Date       *string  `json:"date"`
	LessonType *string  `json:"lesson_type" validate:"omitempty,max=100"`
	Notes      *string  `json:"notes" validate:"omitempty,max=5000"`
	Students   []string `json:"students" validate:"omitempty,dive,required"`
	Teacher    *string  `json:"teacher" validate:"omitempty,min=1"`
}

// TeacherLessonsRequest selects a teacher's lessons by id or email.
type TeacherLessonsRequest struct {
	ID        string `form:"id"`
	Email     string `form:"email"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// LatestLessonsRequest bounds the latest-lesson report.
type LatestLessonsRequest struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}
