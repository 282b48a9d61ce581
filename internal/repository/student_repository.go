package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/lesson-ledger-api/internal/models"
)

const studentSelect = `SELECT s.id, s.first_name, s.last_name, s.category_id, c.name AS category_name
        FROM students s
        LEFT JOIN categories c ON c.id = s.category_id`

type studentRow struct {
	ID           string         `db:"id"`
	FirstName    string         `db:"first_name"`
	LastName     string         `db:"last_name"`
	CategoryID   sql.NullString `db:"category_id"`
	CategoryName sql.NullString `db:"category_name"`
}

func (r studentRow) toModel() models.Student {
	student := models.Student{ID: r.ID, FirstName: r.FirstName, LastName: r.LastName}
	if r.CategoryID.Valid {
		id := r.CategoryID.String
		student.CategoryID = &id
		if r.CategoryName.Valid {
			student.Category = &models.Category{ID: id, Name: r.CategoryName.String}
		}
	}
	return student
}

func toStudents(rows []studentRow) []models.Student {
	students := make([]models.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.toModel())
	}
	return students
}

// StudentRepository reads students with their category expanded.
type StudentRepository struct {
	store
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB, cfg StoreConfig) *StudentRepository {
	return &StudentRepository{store{db: db, cfg: cfg}}
}

// FindByID fetches a student by id. Missing rows surface as sql.ErrNoRows.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	var row studentRow
	err := r.run(ctx, "student_by_id", func(ctx context.Context) error {
		return r.db.GetContext(ctx, &row, studentSelect+" WHERE s.id = $1", id)
	})
	if err != nil {
		return nil, err
	}
	student := row.toModel()
	return &student, nil
}

// FindByName returns every student with the given name, oldest first.
func (r *StudentRepository) FindByName(ctx context.Context, firstName, lastName string) ([]models.Student, error) {
	var rows []studentRow
	err := r.run(ctx, "students_by_name", func(ctx context.Context) error {
		return r.db.SelectContext(ctx, &rows,
			studentSelect+" WHERE LOWER(s.first_name) = LOWER($1) AND LOWER(s.last_name) = LOWER($2) ORDER BY s.created_at ASC, s.id ASC",
			firstName, lastName)
	})
	if err != nil {
		return nil, err
	}
	return toStudents(rows), nil
}

// List returns all students ordered by name.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	var rows []studentRow
	err := r.run(ctx, "students_list", func(ctx context.Context) error {
		return r.db.SelectContext(ctx, &rows, studentSelect+" ORDER BY s.last_name ASC, s.first_name ASC, s.id ASC")
	})
	if err != nil {
		return nil, err
	}
	return toStudents(rows), nil
}

func (r *StudentRepository) findMany(ctx context.Context, ids []string) (map[string]models.Student, error) {
	out := make(map[string]models.Student, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []studentRow
	err := r.run(ctx, "students_by_ids", func(ctx context.Context) error {
		return r.db.SelectContext(ctx, &rows, studentSelect+" WHERE s.id = ANY($1)", pqArray(ids))
	})
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.toModel()
	}
	return out, nil
}

func pqArray(ids []string) interface{} {
	return pq.Array(ids)
}
