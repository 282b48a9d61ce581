package service

import (
	"sort"
	"strings"

	"github.com/noah-isme/lesson-ledger-api/internal/models"
)

const defaultUncategorizedLabel = "Uncategorized"

// ReportConfig defines how lessons are converted to hours.
type ReportConfig struct {
	// DefaultLessonHours applies to categories missing from HourWeights.
	DefaultLessonHours float64
	// HourWeights maps a category name to the hours one lesson counts for.
	HourWeights map[string]float64
	// UncategorizedLabel buckets students without a category.
	UncategorizedLabel string
}

// ReportEngine derives aggregate statistics from expanded lessons.
//
// Every lesson counts once for each distinct category among its students,
// weighted by that category's hour weight. TotalHours is the sum of the
// per-category hours, so the breakdown always reconciles with the total.
type ReportEngine struct {
	cfg ReportConfig
}

// NewReportEngine constructs a ReportEngine.
func NewReportEngine(cfg ReportConfig) *ReportEngine {
	if cfg.DefaultLessonHours <= 0 {
		cfg.DefaultLessonHours = 1
	}
	if strings.TrimSpace(cfg.UncategorizedLabel) == "" {
		cfg.UncategorizedLabel = defaultUncategorizedLabel
	}
	weights := make(map[string]float64, len(cfg.HourWeights))
	for name, w := range cfg.HourWeights {
		if w > 0 {
			weights[name] = w
		}
	}
	cfg.HourWeights = weights
	return &ReportEngine{cfg: cfg}
}

// Weight returns the hours one lesson contributes to the category.
func (e *ReportEngine) Weight(category string) float64 {
	if w, ok := e.cfg.HourWeights[category]; ok {
		return w
	}
	return e.cfg.DefaultLessonHours
}

// Summarize aggregates lessons. The result does not depend on input order.
func (e *ReportEngine) Summarize(lessons []models.LessonDetail) models.ReportResult {
	lessonCounts := make(map[string]int)
	categoryStudents := make(map[string]map[string]struct{})
	allStudents := make(map[string]struct{})

	for _, lesson := range lessons {
		seen := make(map[string]struct{}, len(lesson.Students))
		for _, student := range lesson.Students {
			category := e.categoryOf(student)
			allStudents[student.ID] = struct{}{}
			if categoryStudents[category] == nil {
				categoryStudents[category] = make(map[string]struct{})
			}
			categoryStudents[category][student.ID] = struct{}{}
			if _, ok := seen[category]; !ok {
				seen[category] = struct{}{}
				lessonCounts[category]++
			}
		}
	}

	names := make([]string, 0, len(lessonCounts))
	for name := range lessonCounts {
		names = append(names, name)
	}
	sort.Strings(names)

	result := models.ReportResult{
		TotalStudents: len(allStudents),
		Hours:         make(map[string]float64, len(names)),
		Students:      make(map[string]int, len(names)),
	}
	for _, name := range names {
		hours := float64(lessonCounts[name]) * e.Weight(name)
		result.Hours[name] = hours
		result.Students[name] = len(categoryStudents[name])
		result.TotalHours += hours
	}
	return result
}

func (e *ReportEngine) categoryOf(student models.Student) string {
	if student.Category != nil && strings.TrimSpace(student.Category.Name) != "" {
		return student.Category.Name
	}
	return e.cfg.UncategorizedLabel
}
