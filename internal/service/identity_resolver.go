package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/lesson-ledger-api/internal/models"
	appErrors "github.com/noah-isme/lesson-ledger-api/pkg/errors"
)

type teacherFinder interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	FindByEmail(ctx context.Context, email string) ([]models.Teacher, error)
}

type studentFinder interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
	FindByName(ctx context.Context, firstName, lastName string) ([]models.Student, error)
}

// IdentityResolver maps loose teacher and student references to stored
// entities. Email and name lookups resolve to the first candidate in store
// order.
type IdentityResolver struct {
	teachers teacherFinder
	students studentFinder
	logger   *zap.Logger
}

// NewIdentityResolver constructs an IdentityResolver.
func NewIdentityResolver(teachers teacherFinder, students studentFinder, logger *zap.Logger) *IdentityResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityResolver{teachers: teachers, students: students, logger: logger}
}

// ResolveTeacher returns nil without error for an empty reference.
func (r *IdentityResolver) ResolveTeacher(ctx context.Context, ref models.TeacherRef) (*models.Teacher, error) {
	if id := strings.TrimSpace(ref.ID); id != "" {
		teacher, err := r.teachers.FindByID(ctx, id)
		if err != nil {
			return nil, storeError(err, "teacher")
		}
		return teacher, nil
	}
	email := strings.TrimSpace(ref.Email)
	if email == "" {
		return nil, nil
	}
	candidates, err := r.teachers.FindByEmail(ctx, email)
	if err != nil {
		return nil, storeError(err, "teacher")
	}
	if len(candidates) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	if len(candidates) > 1 {
		r.logger.Warn("teacher email matched several users", zap.String("email", email), zap.Int("matches", len(candidates)))
	}
	return &candidates[0], nil
}

// ResolveStudent returns nil without error for an empty reference. A name
// reference missing either part is rejected.
func (r *IdentityResolver) ResolveStudent(ctx context.Context, ref models.StudentRef) (*models.Student, error) {
	if id := strings.TrimSpace(ref.ID); id != "" {
		student, err := r.students.FindByID(ctx, id)
		if err != nil {
			return nil, storeError(err, "student")
		}
		return student, nil
	}
	if strings.TrimSpace(ref.FirstName) == "" && strings.TrimSpace(ref.LastName) == "" {
		return nil, nil
	}
	candidates, err := r.ResolveStudentCandidates(ctx, ref.FirstName, ref.LastName)
	if err != nil {
		return nil, err
	}
	if len(candidates) > 1 {
		r.logger.Warn("student name matched several records, using the first",
			zap.String("first_name", ref.FirstName), zap.String("last_name", ref.LastName), zap.Int("matches", len(candidates)))
	}
	return &candidates[0], nil
}

// ResolveStudentCandidates returns every student sharing the given name, in
// store order. It fails with NOT_FOUND when nobody matches.
func (r *IdentityResolver) ResolveStudentCandidates(ctx context.Context, firstName, lastName string) ([]models.Student, error) {
	firstName, lastName = strings.TrimSpace(firstName), strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student first and last name are required")
	}
	candidates, err := r.students.FindByName(ctx, firstName, lastName)
	if err != nil {
		return nil, storeError(err, "student")
	}
	if len(candidates) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return candidates, nil
}
