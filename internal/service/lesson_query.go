package service

import (
	"context"

	"github.com/noah-isme/lesson-ledger-api/internal/models"
)

// BuildLessonQuery combines resolved parts into a single predicate. Empty
// parts impose no constraint.
func BuildLessonQuery(rng *models.DateRange, teacherID, studentID string) models.LessonQuery {
	query := models.LessonQuery{TeacherID: teacherID, StudentID: studentID}
	if rng != nil {
		r := *rng
		query.Range = &r
	}
	return query
}

// LessonQueryBuilder normalises dates and resolves identities before building
// the lesson predicate. The first failure aborts the build.
type LessonQueryBuilder struct {
	dates      *DateRangeNormalizer
	identities *IdentityResolver
}

// NewLessonQueryBuilder constructs a LessonQueryBuilder.
func NewLessonQueryBuilder(dates *DateRangeNormalizer, identities *IdentityResolver) *LessonQueryBuilder {
	return &LessonQueryBuilder{dates: dates, identities: identities}
}

// Build resolves criteria into a lesson predicate.
//
// Name based student references only use the first match; lessons of
// namesakes are not included.
func (b *LessonQueryBuilder) Build(ctx context.Context, criteria models.SearchCriteria, opts DateRangeOptions) (models.LessonQuery, error) {
	rng, err := b.dates.Normalize(criteria.StartDate, criteria.EndDate, opts)
	if err != nil {
		return models.LessonQuery{}, err
	}

	teacher, err := b.identities.ResolveTeacher(ctx, criteria.TeacherRef())
	if err != nil {
		return models.LessonQuery{}, err
	}
	student, err := b.identities.ResolveStudent(ctx, criteria.StudentRef())
	if err != nil {
		return models.LessonQuery{}, err
	}

	var teacherID, studentID string
	if teacher != nil {
		teacherID = teacher.ID
	}
	if student != nil {
		studentID = student.ID
	}
	return BuildLessonQuery(rng, teacherID, studentID), nil
}
