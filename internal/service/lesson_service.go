package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lesson-ledger-api/internal/dto"
	"github.com/noah-isme/lesson-ledger-api/internal/models"
	appErrors "github.com/noah-isme/lesson-ledger-api/pkg/errors"
)

const summaryCachePrefix = "lessons:summary:"

type lessonStore interface {
	Find(ctx context.Context, query models.LessonQuery) ([]models.LessonDetail, error)
	FindByID(ctx context.Context, id string) (*models.LessonDetail, error)
	Create(ctx context.Context, lesson *models.Lesson) error
	Update(ctx context.Context, id string, patch models.LessonPatch) (*models.Lesson, error)
	Delete(ctx context.Context, id string) error
}

type studentDirectory interface {
	studentFinder
	List(ctx context.Context) ([]models.Student, error)
}

// LessonServiceParams groups constructor dependencies.
type LessonServiceParams struct {
	Lessons    lessonStore
	Teachers   teacherFinder
	Students   studentDirectory
	Reports    *ReportEngine
	Cache      *CacheService
	Validator  *validator.Validate
	Logger     *zap.Logger
	Now        func() time.Time
	WindowDays int
	SummaryTTL time.Duration
}

// LessonService answers lesson lookups, searches and reports. Every call
// takes the verified actor issuing it.
type LessonService struct {
	lessons    lessonStore
	students   studentDirectory
	identities *IdentityResolver
	dates      *DateRangeNormalizer
	queries    *LessonQueryBuilder
	reports    *ReportEngine
	cache      *CacheService
	validator  *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
	summaryTTL time.Duration
}

// NewLessonService constructs a LessonService.
func NewLessonService(params LessonServiceParams) *LessonService {
	if params.Validator == nil {
		params.Validator = validator.New()
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	if params.Reports == nil {
		params.Reports = NewReportEngine(ReportConfig{})
	}
	identities := NewIdentityResolver(params.Teachers, params.Students, params.Logger)
	dates := NewDateRangeNormalizer(params.WindowDays, params.Now)
	return &LessonService{
		lessons:    params.Lessons,
		students:   params.Students,
		identities: identities,
		dates:      dates,
		queries:    NewLessonQueryBuilder(dates, identities),
		reports:    params.Reports,
		cache:      params.Cache,
		validator:  params.Validator,
		logger:     params.Logger,
		now:        params.Now,
		summaryTTL: params.SummaryTTL,
	}
}

// Create validates and stores a new lesson.
func (s *LessonService) Create(ctx context.Context, actor models.Actor, req dto.CreateLessonRequest) (*models.LessonDetail, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lesson payload")
	}
	date, err := ParseDate("date", strings.TrimSpace(req.Date))
	if err != nil {
		return nil, err
	}
	studentIDs := normalizeIDs(req.Students)
	if len(studentIDs) == 0 {
		return nil, errNoStudents
	}
	teacherID := strings.TrimSpace(req.Teacher)
	if teacherID == "" {
		return nil, errBlankTeacher
	}
	if err := s.ensureReferences(ctx, teacherID, studentIDs); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	lesson := &models.Lesson{
		Date:       date,
		LessonType: strings.TrimSpace(req.LessonType),
		Notes:      req.Notes,
		StudentIDs: studentIDs,
		TeacherID:  teacherID,
		LastEdited: now,
		CreatedAt:  now,
	}
	if err := s.lessons.Create(ctx, lesson); err != nil {
		return nil, storeError(err, "lesson")
	}
	s.invalidateSummaries(ctx)
	s.logger.Info("lesson created", zap.String("lesson_id", lesson.ID), zap.String("teacher_id", lesson.TeacherID), zap.String("actor", actor.UserID))

	return s.load(ctx, lesson.ID)
}

// ListAll returns every lesson, expanded.
func (s *LessonService) ListAll(ctx context.Context, actor models.Actor) ([]models.LessonDetail, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	return s.find(ctx, models.LessonQuery{})
}

// ByTeacherInRange returns a teacher's lessons, located by id or email. Date
// bounds are widened to whole days, and default to the trailing window.
func (s *LessonService) ByTeacherInRange(ctx context.Context, actor models.Actor, req dto.TeacherLessonsRequest) ([]models.LessonDetail, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	criteria := models.SearchCriteria{
		TeacherID:    req.ID,
		TeacherEmail: req.Email,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	}
	if criteria.TeacherRef().Empty() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher id or email is required")
	}
	query, err := s.queries.Build(ctx, criteria, DateRangeOptions{DayInclusive: true})
	if err != nil {
		return nil, err
	}
	return s.find(ctx, query)
}

// Search returns lessons matching the criteria. Empty criteria match every lesson.
func (s *LessonService) Search(ctx context.Context, actor models.Actor, criteria models.SearchCriteria) ([]models.LessonDetail, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	query, err := s.queries.Build(ctx, criteria, DateRangeOptions{Open: true})
	if err != nil {
		return nil, err
	}
	return s.find(ctx, query)
}

// Summary reports on the lessons matching the criteria. Missing dates fall
// back to the trailing window ending now.
func (s *LessonService) Summary(ctx context.Context, actor models.Actor, criteria models.SearchCriteria) (*models.ReportResult, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	query, err := s.queries.Build(ctx, criteria, DateRangeOptions{})
	if err != nil {
		return nil, err
	}

	key := summaryCacheKey(query)
	var cached models.ReportResult
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	lessons, err := s.find(ctx, query)
	if err != nil {
		return nil, err
	}
	result := s.reports.Summarize(lessons)
	s.cache.Set(ctx, key, result, s.summaryTTL)
	return &result, nil
}

// Get returns a single expanded lesson.
func (s *LessonService) Get(ctx context.Context, actor models.Actor, id string) (*models.LessonDetail, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

// Update merges the supplied fields into the lesson, bumping its edit counter.
func (s *LessonService) Update(ctx context.Context, actor models.Actor, id string, req dto.UpdateLessonRequest) (*models.LessonDetail, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lesson payload")
	}
	patch := models.LessonPatch{
		LessonType: trimmed(req.LessonType),
		Notes:      req.Notes,
		TeacherID:  trimmed(req.Teacher),
		EditedAt:   s.now().UTC(),
	}
	if patch.TeacherID != nil && *patch.TeacherID == "" {
		return nil, errBlankTeacher
	}
	if req.Date != nil {
		date, err := ParseDate("date", strings.TrimSpace(*req.Date))
		if err != nil {
			return nil, err
		}
		patch.Date = &date
	}
	if req.Students != nil {
		patch.StudentIDs = normalizeIDs(req.Students)
		if len(patch.StudentIDs) == 0 {
			return nil, errNoStudents
		}
	}
	var teacherID string
	if patch.TeacherID != nil {
		teacherID = *patch.TeacherID
	}
	if err := s.ensureReferences(ctx, teacherID, patch.StudentIDs); err != nil {
		return nil, err
	}

	if _, err := s.lessons.Update(ctx, id, patch); err != nil {
		return nil, storeError(err, "lesson")
	}
	s.invalidateSummaries(ctx)
	return s.load(ctx, id)
}

// Delete permanently removes a lesson. Requires administrator level.
func (s *LessonService) Delete(ctx context.Context, actor models.Actor, id string) error {
	if err := requireLevel(actor, models.LevelAdmin); err != nil {
		return err
	}
	if err := s.lessons.Delete(ctx, id); err != nil {
		return storeError(err, "lesson")
	}
	s.invalidateSummaries(ctx)
	s.logger.Info("lesson deleted", zap.String("lesson_id", id), zap.String("actor", actor.UserID))
	return nil
}

// LatestPerStudent returns each student's most recent lesson inside the
// optional window. Requires manager level.
func (s *LessonService) LatestPerStudent(ctx context.Context, actor models.Actor, req dto.LatestLessonsRequest) ([]models.StudentLatestLesson, error) {
	if err := requireLevel(actor, models.LevelManager); err != nil {
		return nil, err
	}
	window, err := s.dates.Window(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, storeError(err, "students")
	}
	lessons, err := s.find(ctx, models.LessonQuery{Range: &window})
	if err != nil {
		return nil, err
	}
	return LatestLessonPerStudent(students, lessons, window), nil
}

func (s *LessonService) find(ctx context.Context, query models.LessonQuery) ([]models.LessonDetail, error) {
	lessons, err := s.lessons.Find(ctx, query)
	if err != nil {
		return nil, storeError(err, "lessons")
	}
	if lessons == nil {
		lessons = []models.LessonDetail{}
	}
	return lessons, nil
}

func (s *LessonService) load(ctx context.Context, id string) (*models.LessonDetail, error) {
	lesson, err := s.lessons.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, storeError(err, "lesson")
	}
	return lesson, nil
}

func (s *LessonService) ensureReferences(ctx context.Context, teacherID string, studentIDs []string) error {
	if teacherID != "" {
		if _, err := s.identities.ResolveTeacher(ctx, models.TeacherRef{ID: teacherID}); err != nil {
			return err
		}
	}
	for _, id := range studentIDs {
		if _, err := s.identities.ResolveStudent(ctx, models.StudentRef{ID: id}); err != nil {
			return err
		}
	}
	return nil
}

func (s *LessonService) invalidateSummaries(ctx context.Context) {
	s.cache.Invalidate(ctx, summaryCachePrefix+"*")
}

func summaryCacheKey(q models.LessonQuery) string {
	var from, to string
	if q.Range != nil {
		from = q.Range.From.UTC().Format(time.RFC3339Nano)
		to = q.Range.To.UTC().Format(time.RFC3339Nano)
	}
	return fmt.Sprintf("%s%s|%s|%s|%s", summaryCachePrefix, q.TeacherID, q.StudentID, from, to)
}

// normalizeIDs trims, deduplicates and sorts ids so a student set has one
// stored representation.
func normalizeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}
