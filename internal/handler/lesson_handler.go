package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lesson-ledger-api/internal/dto"
	"github.com/noah-isme/lesson-ledger-api/internal/middleware"
	"github.com/noah-isme/lesson-ledger-api/internal/models"
	appErrors "github.com/noah-isme/lesson-ledger-api/pkg/errors"
	"github.com/noah-isme/lesson-ledger-api/pkg/response"
)

type lessonService interface {
	Create(ctx context.Context, actor models.Actor, req dto.CreateLessonRequest) (*models.LessonDetail, error)
	ListAll(ctx context.Context, actor models.Actor) ([]models.LessonDetail, error)
	ByTeacherInRange(ctx context.Context, actor models.Actor, req dto.TeacherLessonsRequest) ([]models.LessonDetail, error)
	Search(ctx context.Context, actor models.Actor, criteria models.SearchCriteria) ([]models.LessonDetail, error)
	Summary(ctx context.Context, actor models.Actor, criteria models.SearchCriteria) (*models.ReportResult, error)
	Get(ctx context.Context, actor models.Actor, id string) (*models.LessonDetail, error)
	Update(ctx context.Context, actor models.Actor, id string, req dto.UpdateLessonRequest) (*models.LessonDetail, error)
	Delete(ctx context.Context, actor models.Actor, id string) error
	LatestPerStudent(ctx context.Context, actor models.Actor, req dto.LatestLessonsRequest) ([]models.StudentLatestLesson, error)
}

type summaryExporter interface {
	ExportSummary(ctx context.Context, actor models.Actor, criteria models.SearchCriteria, format dto.ExportFormat) (*dto.SummaryExport, error)
}

// LessonHandler exposes lesson endpoints.
type LessonHandler struct {
	lessons  lessonService
	exporter summaryExporter
}

// NewLessonHandler constructs a LessonHandler.
func NewLessonHandler(lessons lessonService, exporter summaryExporter) *LessonHandler {
	return &LessonHandler{lessons: lessons, exporter: exporter}
}

// Register mounts the lesson routes on the group. The group must already be
// protected by the JWT middleware.
func (h *LessonHandler) Register(group *gin.RouterGroup) {
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/my-lessons", h.MyLessons)
	group.GET("/search", h.Search)
	group.GET("/search-student", h.SearchStudent)
	group.GET("/summary", h.Summary)
	group.GET("/summary/export", h.ExportSummary)
	group.GET("/student-last-lesson", middleware.RequireLevel(models.LevelManager), h.LatestPerStudent)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", middleware.RequireLevel(models.LevelAdmin), h.Delete)
}

// Create godoc
// @Summary Create lesson
// @Tags Lessons
// @Accept json
// @Produce json
// @Param payload body dto.CreateLessonRequest true "Lesson payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /lessons [post]
func (h *LessonHandler) Create(c *gin.Context) {
	var req dto.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	lesson, err := h.lessons.Create(c.Request.Context(), middleware.ActorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, lesson)
}

// List godoc
// @Summary List all lessons
// @Tags Lessons
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /lessons [get]
func (h *LessonHandler) List(c *gin.Context) {
	lessons, err := h.lessons.ListAll(c.Request.Context(), middleware.ActorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lessons, countMeta(len(lessons)))
}

// MyLessons godoc
// @Summary Lessons taught by a teacher
// @Tags Lessons
// @Produce json
// @Param id query string false "Teacher ID"
// @Param email query string false "Teacher email"
// @Param startDate query string false "Later boundary, defaults to now"
// @Param endDate query string false "Earlier boundary, defaults to 30 days before startDate"
// @Success 200 {object} response.Envelope
// @Router /lessons/my-lessons [get]
func (h *LessonHandler) MyLessons(c *gin.Context) {
	var req dto.TeacherLessonsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query"))
		return
	}
	lessons, err := h.lessons.ByTeacherInRange(c.Request.Context(), middleware.ActorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lessons, countMeta(len(lessons)))
}

// Search godoc
// @Summary Search lessons
// @Tags Lessons
// @Produce json
// @Param teacherId query string false "Teacher ID"
// @Param teacherEmail query string false "Teacher email"
// @Param studentId query string false "Student ID"
// @Param studentFirst query string false "Student first name"
// @Param studentLast query string false "Student last name"
// @Param startDate query string false "Later boundary"
// @Param endDate query string false "Earlier boundary"
// @Success 200 {object} response.Envelope
// @Router /lessons/search [get]
func (h *LessonHandler) Search(c *gin.Context) {
	criteria, ok := bindCriteria(c)
	if !ok {
		return
	}
	lessons, err := h.lessons.Search(c.Request.Context(), middleware.ActorFromContext(c), criteria)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lessons, countMeta(len(lessons)))
}

// SearchStudent godoc
// @Summary Lessons attended by a student
// @Tags Lessons
// @Produce json
// @Param id query string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /lessons/search-student [get]
func (h *LessonHandler) SearchStudent(c *gin.Context) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id required"))
		return
	}
	lessons, err := h.lessons.Search(c.Request.Context(), middleware.ActorFromContext(c), models.SearchCriteria{StudentID: id})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lessons, countMeta(len(lessons)))
}

// Summary godoc
// @Summary Aggregate hours and students
// @Tags Reports
// @Produce json
// @Param teacherId query string false "Teacher ID"
// @Param teacherEmail query string false "Teacher email"
// @Param studentId query string false "Student ID"
// @Param startDate query string false "Later boundary, defaults to now"
// @Param endDate query string false "Earlier boundary"
// @Success 200 {object} response.Envelope
// @Router /lessons/summary [get]
func (h *LessonHandler) Summary(c *gin.Context) {
	criteria, ok := bindCriteria(c)
	if !ok {
		return
	}
	result, err := h.lessons.Summary(c.Request.Context(), middleware.ActorFromContext(c), criteria)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// ExportSummary godoc
// @Summary Download the summary as CSV or PDF
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Router /lessons/summary/export [get]
func (h *LessonHandler) ExportSummary(c *gin.Context) {
	criteria, ok := bindCriteria(c)
	if !ok {
		return
	}
	file, err := h.exporter.ExportSummary(c.Request.Context(), middleware.ActorFromContext(c), criteria, dto.ExportFormat(c.Query("format")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

// LatestPerStudent godoc
// @Summary Most recent lesson of every student
// @Tags Reports
// @Produce json
// @Param startDate query string false "Window start"
// @Param endDate query string false "Window end, defaults to now"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /lessons/student-last-lesson [get]
func (h *LessonHandler) LatestPerStudent(c *gin.Context) {
	var req dto.LatestLessonsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query"))
		return
	}
	results, err := h.lessons.LatestPerStudent(c.Request.Context(), middleware.ActorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results, countMeta(len(results)))
}

// Get godoc
// @Summary Lesson detail
// @Tags Lessons
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lessons/{id} [get]
func (h *LessonHandler) Get(c *gin.Context) {
	lesson, err := h.lessons.Get(c.Request.Context(), middleware.ActorFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lesson)
}

// Update godoc
// @Summary Update lesson
// @Tags Lessons
// @Accept json
// @Produce json
// @Param id path string true "Lesson ID"
// @Param payload body dto.UpdateLessonRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /lessons/{id} [put]
func (h *LessonHandler) Update(c *gin.Context) {
	var req dto.UpdateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	lesson, err := h.lessons.Update(c.Request.Context(), middleware.ActorFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lesson)
}

// Delete godoc
// @Summary Delete lesson
// @Tags Lessons
// @Param id path string true "Lesson ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Router /lessons/{id} [delete]
func (h *LessonHandler) Delete(c *gin.Context) {
	if err := h.lessons.Delete(c.Request.Context(), middleware.ActorFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func bindCriteria(c *gin.Context) (models.SearchCriteria, bool) {
	var criteria models.SearchCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query"))
		return criteria, false
	}
	return criteria, true
}

func countMeta(n int) map[string]interface{} {
	return map[string]interface{}{"count": n}
}
