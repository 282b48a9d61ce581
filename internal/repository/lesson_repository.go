package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/lesson-ledger-api/internal/models"
)

const lessonColumns = "id, date, lesson_type, notes, student_ids, teacher_id, total_edits, last_edited, created_at"

// LessonRepository persists lessons and expands their references on read.
type LessonRepository struct {
	store
	teachers *TeacherRepository
	students *StudentRepository
}

// NewLessonRepository constructs a LessonRepository.
func NewLessonRepository(db *sqlx.DB, cfg StoreConfig) *LessonRepository {
	return &LessonRepository{
		store:    store{db: db, cfg: cfg},
		teachers: NewTeacherRepository(db, cfg),
		students: NewStudentRepository(db, cfg),
	}
}

// Find returns the expanded lessons matching query, oldest first.
func (r *LessonRepository) Find(ctx context.Context, query models.LessonQuery) ([]models.LessonDetail, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if query.Range != nil {
		if !query.Range.From.IsZero() {
			args = append(args, query.Range.From)
			conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
		}
		if !query.Range.To.IsZero() {
			args = append(args, query.Range.To)
			conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
		}
	}
	if query.TeacherID != "" {
		args = append(args, query.TeacherID)
		conditions = append(conditions, fmt.Sprintf("teacher_id = $%d", len(args)))
	}
	if query.StudentID != "" {
		args = append(args, query.StudentID)
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(student_ids)", len(args)))
	}

	statement := fmt.Sprintf("SELECT %s FROM lessons WHERE %s ORDER BY date ASC, id ASC", lessonColumns, strings.Join(conditions, " AND "))

	var lessons []models.Lesson
	err := r.run(ctx, "lessons_find", func(ctx context.Context) error {
		return r.db.SelectContext(ctx, &lessons, statement, args...)
	})
	if err != nil {
		return nil, err
	}
	return r.expand(ctx, lessons)
}

// FindByID fetches one expanded lesson. Missing rows surface as sql.ErrNoRows.
func (r *LessonRepository) FindByID(ctx context.Context, id string) (*models.LessonDetail, error) {
	var lesson models.Lesson
	err := r.run(ctx, "lesson_by_id", func(ctx context.Context) error {
		return r.db.GetContext(ctx, &lesson, "SELECT "+lessonColumns+" FROM lessons WHERE id = $1", id)
	})
	if err != nil {
		return nil, err
	}
	details, err := r.expand(ctx, []models.Lesson{lesson})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// Create inserts a lesson. A lesson with the same date, teacher and student
// set already stored yields ErrDuplicate.
func (r *LessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	if lesson.ID == "" {
		lesson.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if lesson.CreatedAt.IsZero() {
		lesson.CreatedAt = now
	}
	if lesson.LastEdited.IsZero() {
		lesson.LastEdited = now
	}
	const statement = `INSERT INTO lessons (id, date, lesson_type, notes, student_ids, teacher_id, total_edits, last_edited, created_at)
        VALUES (:id, :date, :lesson_type, :notes, :student_ids, :teacher_id, :total_edits, :last_edited, :created_at)`
	return r.run(ctx, "lesson_create", func(ctx context.Context) error {
		_, err := r.db.NamedExecContext(ctx, statement, lesson)
		return err
	})
}

// Update applies the patch in a single statement, incrementing the edit
// counter. Missing lessons surface as sql.ErrNoRows.
func (r *LessonRepository) Update(ctx context.Context, id string, patch models.LessonPatch) (*models.Lesson, error) {
	var students interface{}
	if patch.StudentIDs != nil {
		students = pq.StringArray(patch.StudentIDs)
	}
	const statement = `UPDATE lessons SET
        date = COALESCE($2, date),
        lesson_type = COALESCE($3, lesson_type),
        notes = COALESCE($4, notes),
        student_ids = COALESCE($5, student_ids),
        teacher_id = COALESCE($6, teacher_id),
        total_edits = total_edits + 1,
        last_edited = $7
        WHERE id = $1
        RETURNING ` + lessonColumns

	var lesson models.Lesson
	err := r.run(ctx, "lesson_update", func(ctx context.Context) error {
		return r.db.GetContext(ctx, &lesson, statement,
			id, patch.Date, patch.LessonType, patch.Notes, students, patch.TeacherID, patch.EditedAt)
	})
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// Delete removes a lesson. Missing lessons surface as sql.ErrNoRows.
func (r *LessonRepository) Delete(ctx context.Context, id string) error {
	return r.run(ctx, "lesson_delete", func(ctx context.Context) error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM lessons WHERE id = $1", id)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
}

// expand resolves teacher and student references with one batched query
// each. Students keep the order stored on the lesson; dangling references
// are dropped.
func (r *LessonRepository) expand(ctx context.Context, lessons []models.Lesson) ([]models.LessonDetail, error) {
	details := make([]models.LessonDetail, 0, len(lessons))
	if len(lessons) == 0 {
		return details, nil
	}

	teacherIDs := make([]string, 0, len(lessons))
	studentIDs := make([]string, 0)
	seenTeachers := map[string]struct{}{}
	seenStudents := map[string]struct{}{}
	for _, lesson := range lessons {
		if _, ok := seenTeachers[lesson.TeacherID]; !ok {
			seenTeachers[lesson.TeacherID] = struct{}{}
			teacherIDs = append(teacherIDs, lesson.TeacherID)
		}
		for _, id := range lesson.StudentIDs {
			if _, ok := seenStudents[id]; !ok {
				seenStudents[id] = struct{}{}
				studentIDs = append(studentIDs, id)
			}
		}
	}

	teachers, err := r.teachers.findMany(ctx, teacherIDs)
	if err != nil {
		return nil, err
	}
	students, err := r.students.findMany(ctx, studentIDs)
	if err != nil {
		return nil, err
	}

	for _, lesson := range lessons {
		teacher, ok := teachers[lesson.TeacherID]
		if !ok {
			teacher = models.Teacher{ID: lesson.TeacherID}
		}
		detail := models.LessonDetail{
			ID:         lesson.ID,
			Date:       lesson.Date,
			LessonType: lesson.LessonType,
			Notes:      lesson.Notes,
			TotalEdits: lesson.TotalEdits,
			LastEdited: lesson.LastEdited,
			Teacher:    teacher,
			Students:   make([]models.Student, 0, len(lesson.StudentIDs)),
		}
		for _, id := range lesson.StudentIDs {
			if student, ok := students[id]; ok {
				detail.Students = append(detail.Students, student)
			}
		}
		details = append(details, detail)
	}
	return details, nil
}

// Ping verifies the database is reachable.
func (r *LessonRepository) Ping(ctx context.Context) error {
	return r.run(ctx, "ping", func(ctx context.Context) error {
		return r.db.PingContext(ctx)
	})
}
