package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lesson-ledger-api/internal/models"
)

func TestLatestLessonPerStudentPicksMostRecent(t *testing.T) {
	ann := student("s1", "Ann", "Lee", "Violin")
	bob := student("s2", "Bob", "Ray", "Piano")
	teacher := models.Teacher{ID: "t1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Level: 2}

	jan := lessonWith("l1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ann)
	feb := lessonWith("l2", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), ann)
	jan.Teacher, feb.Teacher = teacher, teacher

	results := LatestLessonPerStudent([]models.Student{ann, bob}, []models.LessonDetail{feb, jan}, models.DateRange{To: fixedNow})

	require.Len(t, results, 1)
	assert.Equal(t, "s1", results[0].Student.ID)
	assert.Equal(t, "l2", results[0].Lesson.ID)
	assert.Equal(t, []string{"s1"}, results[0].Lesson.StudentIDs)
	assert.Equal(t, models.TeacherSummary{
		ID: "t1", FirstName: "Ada", LastName: "Lovelace", Username: "ada@example.com", Level: 2, FullName: "Ada Lovelace",
	}, results[0].Lesson.Teacher)
}

func TestLatestLessonPerStudentRespectsWindow(t *testing.T) {
	ann := student("s1", "Ann", "Lee", "")
	jan := lessonWith("l1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ann)
	feb := lessonWith("l2", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), ann)
	window := models.DateRange{From: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}

	results := LatestLessonPerStudent([]models.Student{ann}, []models.LessonDetail{jan, feb}, window)
	require.Len(t, results, 1)
	assert.Equal(t, "l1", results[0].Lesson.ID)

	window.From = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, LatestLessonPerStudent([]models.Student{ann}, []models.LessonDetail{jan, feb}, window))
}

func TestLatestLessonPerStudentTieBreaksOnID(t *testing.T) {
	ann := student("s1", "Ann", "Lee", "")
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	results := LatestLessonPerStudent([]models.Student{ann},
		[]models.LessonDetail{lessonWith("l9", day, ann), lessonWith("l3", day, ann)}, models.DateRange{})
	require.Len(t, results, 1)
	assert.Equal(t, "l3", results[0].Lesson.ID)
}

func TestLatestLessonPerStudentFollowsStudentOrder(t *testing.T) {
	ann := student("s1", "Ann", "Lee", "")
	bob := student("s2", "Bob", "Ray", "")
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	lessons := []models.LessonDetail{lessonWith("l1", day, ann, bob)}

	results := LatestLessonPerStudent([]models.Student{bob, ann}, lessons, models.DateRange{})
	require.Len(t, results, 2)
	assert.Equal(t, "s2", results[0].Student.ID)
	assert.Equal(t, "s1", results[1].Student.ID)
}
