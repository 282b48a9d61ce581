package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lesson-ledger-api/internal/dto"
	"github.com/noah-isme/lesson-ledger-api/internal/middleware"
	"github.com/noah-isme/lesson-ledger-api/internal/models"
	appErrors "github.com/noah-isme/lesson-ledger-api/pkg/errors"
)

type lessonServiceMock struct {
	lessons   []models.LessonDetail
	summary   *models.ReportResult
	latest    []models.StudentLatestLesson
	err       error
	criteria  models.SearchCriteria
	teacherRq dto.TeacherLessonsRequest
	created   dto.CreateLessonRequest
	actor     models.Actor
	deletedID string
}

func (m *lessonServiceMock) Create(_ context.Context, actor models.Actor, req dto.CreateLessonRequest) (*models.LessonDetail, error) {
	m.actor, m.created = actor, req
	if m.err != nil {
		return nil, m.err
	}
	return &models.LessonDetail{ID: "l1"}, nil
}

func (m *lessonServiceMock) ListAll(_ context.Context, actor models.Actor) ([]models.LessonDetail, error) {
	m.actor = actor
	return m.lessons, m.err
}

func (m *lessonServiceMock) ByTeacherInRange(_ context.Context, actor models.Actor, req dto.TeacherLessonsRequest) ([]models.LessonDetail, error) {
	m.actor, m.teacherRq = actor, req
	return m.lessons, m.err
}

func (m *lessonServiceMock) Search(_ context.Context, actor models.Actor, criteria models.SearchCriteria) ([]models.LessonDetail, error) {
	m.actor, m.criteria = actor, criteria
	return m.lessons, m.err
}

func (m *lessonServiceMock) Summary(_ context.Context, actor models.Actor, criteria models.SearchCriteria) (*models.ReportResult, error) {
	m.actor, m.criteria = actor, criteria
	return m.summary, m.err
}

func (m *lessonServiceMock) Get(_ context.Context, actor models.Actor, id string) (*models.LessonDetail, error) {
	m.actor = actor
	if m.err != nil {
		return nil, m.err
	}
	return &models.LessonDetail{ID: id}, nil
}

func (m *lessonServiceMock) Update(_ context.Context, actor models.Actor, id string, _ dto.UpdateLessonRequest) (*models.LessonDetail, error) {
	m.actor = actor
	if m.err != nil {
		return nil, m.err
	}
	return &models.LessonDetail{ID: id, TotalEdits: 1}, nil
}

func (m *lessonServiceMock) Delete(_ context.Context, actor models.Actor, id string) error {
	m.actor, m.deletedID = actor, id
	return m.err
}

func (m *lessonServiceMock) LatestPerStudent(_ context.Context, actor models.Actor, _ dto.LatestLessonsRequest) ([]models.StudentLatestLesson, error) {
	m.actor = actor
	return m.latest, m.err
}

type exporterMock struct {
	format dto.ExportFormat
	err    error
}

func (m *exporterMock) ExportSummary(_ context.Context, _ models.Actor, _ models.SearchCriteria, format dto.ExportFormat) (*dto.SummaryExport, error) {
	m.format = format
	if m.err != nil {
		return nil, m.err
	}
	return &dto.SummaryExport{Filename: "lesson-summary.csv", ContentType: "text/csv", Body: []byte("Category,Hours,Students\n")}, nil
}

func newLessonRouter(svc *lessonServiceMock, exporter *exporterMock, claims *models.JWTClaims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/lessons", func(c *gin.Context) {
		if claims != nil {
			c.Set(middleware.ContextUserKey, claims)
		}
		c.Next()
	})
	NewLessonHandler(svc, exporter).Register(group)
	return r
}

func perform(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLessonHandlerCreate(t *testing.T) {
	svc := &lessonServiceMock{}
	r := newLessonRouter(svc, &exporterMock{}, &models.JWTClaims{UserID: "u1", Level: 3})

	payload, _ := json.Marshal(dto.CreateLessonRequest{Date: "2024-01-05", Students: []string{"s1"}, Teacher: "t1"})
	w := perform(r, http.MethodPost, "/lessons", payload)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "u1", svc.actor.UserID)
	assert.Equal(t, "t1", svc.created.Teacher)
}

func TestLessonHandlerCreateDuplicate(t *testing.T) {
	svc := &lessonServiceMock{err: appErrors.Clone(appErrors.ErrDuplicateKey, "lesson already exists")}
	r := newLessonRouter(svc, &exporterMock{}, &models.JWTClaims{UserID: "u1"})

	payload, _ := json.Marshal(dto.CreateLessonRequest{Date: "2024-01-05", Students: []string{"s1"}, Teacher: "t1"})
	w := perform(r, http.MethodPost, "/lessons", payload)

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "DUPLICATE_KEY")
}

func TestLessonHandlerMyLessonsBindsQuery(t *testing.T) {
	svc := &lessonServiceMock{lessons: []models.LessonDetail{{ID: "l1"}}}
	r := newLessonRouter(svc, &exporterMock{}, &models.JWTClaims{UserID: "u1"})

	w := perform(r, http.MethodGet, "/lessons/my-lessons?email=ada@example.com&startDate=2024-02-01", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ada@example.com", svc.teacherRq.Email)
	assert.Equal(t, "2024-02-01", svc.teacherRq.StartDate)
	assert.Contains(t, w.Body.String(), `"count":1`)
}

func TestLessonHandlerSearchBindsCriteria(t *testing.T) {
	svc := &lessonServiceMock{lessons: []models.LessonDetail{}}
	r := newLessonRouter(svc, &exporterMock{}, &models.JWTClaims{UserID: "u1"})

	w := perform(r, http.MethodGet, "/lessons/search?teacherId=t1&studentFirst=Ann&studentLast=Lee&endDate=2024-01-01", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.SearchCriteria{TeacherID: "t1", StudentFirst: "Ann", StudentLast: "Lee", EndDate: "2024-01-01"}, svc.criteria)
}

func TestLessonHandlerSearchStudentRequiresID(t *testing.T) {
	svc := &lessonServiceMock{}
	r := newLessonRouter(svc, &exporterMock{}, &models.JWTClaims{UserID: "u1"})

	w := perform(r, http.MethodGet, "/lessons/search-student", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodGet, "/lessons/search-student?id=s1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "s1", svc.criteria.StudentID)
}

func TestLessonHandlerSummaryInvalidDate(t *testing.T) {
	svc := &lessonServiceMock{err: appErrors.Clone(appErrors.ErrInvalidDate, "invalid startDate: nope")}
	r := newLessonRouter(svc, &exporterMock{}, &models.JWTClaims{UserID: "u1"})

	w := perform(r, http.MethodGet, "/lessons/summary?startDate=nope", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_DATE", body["error"]["code"])
	assert.NotContains(t, body, "data")
}

func TestLessonHandlerSummaryStoreUnavailable(t *testing.T) {
	svc := &lessonServiceMock{err: appErrors.Wrap(errors.New("dial tcp"), appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "store unavailable")}
	r := newLessonRouter(svc, &exporterMock{}, &models.JWTClaims{UserID: "u1"})

	w := perform(r, http.MethodGet, "/lessons/summary", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestLessonHandlerExportSummary(t *testing.T) {
	exporter := &exporterMock{}
	r := newLessonRouter(&lessonServiceMock{}, exporter, &models.JWTClaims{UserID: "u1"})

	w := perform(r, http.MethodGet, "/lessons/summary/export?format=csv", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.ExportFormatCSV, exporter.format)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "lesson-summary.csv")
	assert.Equal(t, "Category,Hours,Students\n", w.Body.String())
}

func TestLessonHandlerDeleteRequiresAdmin(t *testing.T) {
	svc := &lessonServiceMock{}
	r := newLessonRouter(svc, &exporterMock{}, &models.JWTClaims{UserID: "u1", Level: models.LevelManager})

	w := perform(r, http.MethodDelete, "/lessons/l1", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, svc.deletedID)

	r = newLessonRouter(svc, &exporterMock{}, &models.JWTClaims{UserID: "u1", Level: models.LevelAdmin})
	w = perform(r, http.MethodDelete, "/lessons/l1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "l1", svc.deletedID)
}

func TestLessonHandlerLatestRequiresManager(t *testing.T) {
	svc := &lessonServiceMock{latest: []models.StudentLatestLesson{{Student: models.Student{ID: "s1"}}}}

	r := newLessonRouter(svc, &exporterMock{}, &models.JWTClaims{UserID: "u1", Level: 3})
	w := perform(r, http.MethodGet, "/lessons/student-last-lesson", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	r = newLessonRouter(svc, &exporterMock{}, &models.JWTClaims{UserID: "u1", Level: models.LevelManager})
	w = perform(r, http.MethodGet, "/lessons/student-last-lesson?startDate=2024-01-01", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLessonHandlerGetNotFound(t *testing.T) {
	svc := &lessonServiceMock{err: appErrors.Clone(appErrors.ErrNotFound, "lesson not found")}
	r := newLessonRouter(svc, &exporterMock{}, &models.JWTClaims{UserID: "u1"})

	w := perform(r, http.MethodGet, "/lessons/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLessonHandlerUpdate(t *testing.T) {
	svc := &lessonServiceMock{}
	r := newLessonRouter(svc, &exporterMock{}, &models.JWTClaims{UserID: "u1"})

	w := perform(r, http.MethodPut, "/lessons/l1", []byte(`{"notes":"scales"}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_edits":1`)
}
