package service

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/lesson-ledger-api/internal/models"
)

func lessonWith(id string, day time.Time, students ...models.Student) models.LessonDetail {
	return models.LessonDetail{ID: id, Date: day, Teacher: models.Teacher{ID: "t1"}, Students: students}
}

func TestSummarizeEmptyInput(t *testing.T) {
	result := NewReportEngine(ReportConfig{}).Summarize(nil)
	assert.Zero(t, result.TotalHours)
	assert.Zero(t, result.TotalStudents)
	assert.Empty(t, result.Hours)
	assert.Empty(t, result.Students)
}

func TestSummarizeCountsDistinctStudents(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	ann := student("s1", "Ann", "Lee", "Violin")
	bob := student("s2", "Bob", "Ray", "Piano")
	cid := student("s3", "Cid", "Moe", "Violin")

	result := NewReportEngine(ReportConfig{}).Summarize([]models.LessonDetail{
		lessonWith("l1", day, ann, bob),
		lessonWith("l2", day.AddDate(0, 0, 1), ann),
		lessonWith("l3", day.AddDate(0, 0, 2), ann, cid),
	})

	assert.Equal(t, 3, result.TotalStudents)
	assert.Equal(t, map[string]int{"Violin": 2, "Piano": 1}, result.Students)
	assert.Equal(t, map[string]float64{"Violin": 3, "Piano": 1}, result.Hours)
	assert.Equal(t, 4.0, result.TotalHours)
}

func TestSummarizeAppliesWeights(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	engine := NewReportEngine(ReportConfig{DefaultLessonHours: 0.5, HourWeights: map[string]float64{"Violin": 1.5}})

	result := engine.Summarize([]models.LessonDetail{
		lessonWith("l1", day, student("s1", "Ann", "Lee", "Violin")),
		lessonWith("l2", day, student("s2", "Bob", "Ray", "Piano")),
	})

	assert.Equal(t, 1.5, result.Hours["Violin"])
	assert.Equal(t, 0.5, result.Hours["Piano"])
	assert.Equal(t, 2.0, result.TotalHours)
	assert.Equal(t, 1.5, engine.Weight("Violin"))
	assert.Equal(t, 0.5, engine.Weight("Cello"))
}

func TestSummarizeBucketsUncategorizedStudents(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	result := NewReportEngine(ReportConfig{UncategorizedLabel: "None"}).Summarize([]models.LessonDetail{
		lessonWith("l1", day, student("s1", "Ann", "Lee", ""), student("s2", "Bob", "Ray", "Piano")),
	})

	assert.Equal(t, 1, result.Students["None"])
	assert.Equal(t, 1.0, result.Hours["None"])
	assert.Equal(t, 2.0, result.TotalHours)
}

func TestSummarizeReconcilesAndIgnoresOrder(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	categories := []string{"Violin", "Piano", "Cello", ""}
	pool := make([]models.Student, 0, 12)
	for i := 0; i < 12; i++ {
		pool = append(pool, student(string(rune('a'+i)), "F", "L", categories[i%len(categories)]))
	}
	engine := NewReportEngine(ReportConfig{HourWeights: map[string]float64{"Violin": 1.5, "Cello": 0.75}})

	for run := 0; run < 50; run++ {
		var lessons []models.LessonDetail
		n := rnd.Intn(20)
		for i := 0; i < n; i++ {
			var attendees []models.Student
			for _, idx := range rnd.Perm(len(pool))[:1+rnd.Intn(4)] {
				attendees = append(attendees, pool[idx])
			}
			lessons = append(lessons, lessonWith(string(rune('A'+i)), time.Unix(int64(i)*3600, 0), attendees...))
		}

		result := engine.Summarize(lessons)

		var sum float64
		for _, h := range result.Hours {
			sum += h
		}
		assert.InDelta(t, result.TotalHours, sum, 1e-9)

		distinct := map[string]struct{}{}
		for _, l := range lessons {
			for _, s := range l.Students {
				distinct[s.ID] = struct{}{}
			}
		}
		assert.Equal(t, len(distinct), result.TotalStudents)

		shuffled := append([]models.LessonDetail(nil), lessons...)
		rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.Equal(t, result, engine.Summarize(shuffled))
	}
}
