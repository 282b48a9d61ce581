package service

import "github.com/noah-isme/lesson-ledger-api/internal/models"

// LatestLessonPerStudent picks, for each student, the most recent lesson in
// window that lists them. Students without such a lesson are left out. Output
// follows the order of students; equal dates are broken by the smaller id.
func LatestLessonPerStudent(students []models.Student, lessons []models.LessonDetail, window models.DateRange) []models.StudentLatestLesson {
	latest := make(map[string]*models.LessonDetail)
	for i := range lessons {
		lesson := &lessons[i]
		if !window.Contains(lesson.Date) {
			continue
		}
		for _, s := range lesson.Students {
			if current, ok := latest[s.ID]; !ok || newer(lesson, current) {
				latest[s.ID] = lesson
			}
		}
	}

	out := make([]models.StudentLatestLesson, 0, len(latest))
	for _, student := range students {
		lesson, ok := latest[student.ID]
		if !ok {
			continue
		}
		studentIDs := make([]string, 0, len(lesson.Students))
		for _, s := range lesson.Students {
			studentIDs = append(studentIDs, s.ID)
		}
		out = append(out, models.StudentLatestLesson{
			Student: student,
			Lesson: models.LatestLesson{
				ID:         lesson.ID,
				Date:       lesson.Date,
				LessonType: lesson.LessonType,
				Notes:      lesson.Notes,
				StudentIDs: studentIDs,
				Teacher:    lesson.Teacher.Summary(),
			},
		})
	}
	return out
}

func newer(a, b *models.LessonDetail) bool {
	if a.Date.Equal(b.Date) {
		return a.ID < b.ID
	}
	return a.Date.After(b.Date)
}
