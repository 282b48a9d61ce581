package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lesson-ledger-api/internal/models"
	appErrors "github.com/noah-isme/lesson-ledger-api/pkg/errors"
)

func TestBuildLessonQueryEmptyMatchesEverything(t *testing.T) {
	q := BuildLessonQuery(nil, "", "")
	assert.Nil(t, q.Range)
	assert.True(t, q.Matches(models.Lesson{ID: "any", Date: time.Now(), TeacherID: "t9"}))
}

func TestBuildLessonQueryConstrainsEveryPart(t *testing.T) {
	day := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	rng := &models.DateRange{From: day.Add(-time.Hour), To: day.Add(time.Hour)}
	q := BuildLessonQuery(rng, "t1", "s1")

	rng.From = time.Time{}
	require.NotNil(t, q.Range)
	assert.False(t, q.Range.From.IsZero())

	assert.True(t, q.Matches(models.Lesson{Date: day, TeacherID: "t1", StudentIDs: []string{"s0", "s1"}}))
	assert.False(t, q.Matches(models.Lesson{Date: day, TeacherID: "t2", StudentIDs: []string{"s1"}}))
	assert.False(t, q.Matches(models.Lesson{Date: day, TeacherID: "t1", StudentIDs: []string{"s2"}}))
	assert.False(t, q.Matches(models.Lesson{Date: day.Add(2 * time.Hour), TeacherID: "t1", StudentIDs: []string{"s1"}}))
}

func TestLessonQueryBuilderResolvesIdentities(t *testing.T) {
	resolver, _, _ := newResolver()
	builder := NewLessonQueryBuilder(NewDateRangeNormalizer(30, fixedClock), resolver)

	q, err := builder.Build(context.Background(), models.SearchCriteria{
		TeacherEmail: "alan@example.com",
		StudentFirst: "Bob",
		StudentLast:  "Ray",
	}, DateRangeOptions{Open: true})
	require.NoError(t, err)
	assert.Equal(t, models.LessonQuery{TeacherID: "t3", StudentID: "s3"}, q)
}

func TestLessonQueryBuilderFailsFastOnDate(t *testing.T) {
	resolver, teachers, _ := newResolver()
	builder := NewLessonQueryBuilder(NewDateRangeNormalizer(30, fixedClock), resolver)

	_, err := builder.Build(context.Background(), models.SearchCriteria{TeacherID: "t1", StartDate: "31/01/2024"}, DateRangeOptions{})
	assert.True(t, errors.Is(err, appErrors.ErrInvalidDate))
	assert.Zero(t, teachers.calls)
}

func TestLessonQueryBuilderPropagatesNotFound(t *testing.T) {
	resolver, _, _ := newResolver()
	builder := NewLessonQueryBuilder(NewDateRangeNormalizer(30, fixedClock), resolver)

	_, err := builder.Build(context.Background(), models.SearchCriteria{StudentID: "ghost"}, DateRangeOptions{Open: true})
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}
