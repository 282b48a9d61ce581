package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lesson-ledger-api/internal/models"
)

const teacherColumns = "id, first_name, last_name, email, level"

// TeacherRepository reads teaching users.
type TeacherRepository struct {
	store
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB, cfg StoreConfig) *TeacherRepository {
	return &TeacherRepository{store{db: db, cfg: cfg}}
}

// FindByID fetches a teacher by id. Missing rows surface as sql.ErrNoRows.
func (r *TeacherRepository) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.run(ctx, "teacher_by_id", func(ctx context.Context) error {
		return r.db.GetContext(ctx, &teacher, "SELECT "+teacherColumns+" FROM users WHERE id = $1", id)
	})
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

// FindByEmail returns every user with the email, oldest first.
func (r *TeacherRepository) FindByEmail(ctx context.Context, email string) ([]models.Teacher, error) {
	var teachers []models.Teacher
	err := r.run(ctx, "teacher_by_email", func(ctx context.Context) error {
		return r.db.SelectContext(ctx, &teachers,
			"SELECT "+teacherColumns+" FROM users WHERE LOWER(email) = LOWER($1) ORDER BY created_at ASC, id ASC", email)
	})
	if err != nil {
		return nil, err
	}
	return teachers, nil
}

func (r *TeacherRepository) findMany(ctx context.Context, ids []string) (map[string]models.Teacher, error) {
	out := make(map[string]models.Teacher, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var teachers []models.Teacher
	err := r.run(ctx, "teachers_by_ids", func(ctx context.Context) error {
		return r.db.SelectContext(ctx, &teachers, "SELECT "+teacherColumns+" FROM users WHERE id = ANY($1)", pqArray(ids))
	})
	if err != nil {
		return nil, err
	}
	for _, t := range teachers {
		out[t.ID] = t
	}
	return out, nil
}
