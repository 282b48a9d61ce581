package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeacherRepositoryFindByEmailIsOrdered(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTeacherRepository(db, StoreConfig{})
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE LOWER(email) = LOWER($1) ORDER BY created_at ASC, id ASC")).
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows(teacherRowColumns).
			AddRow("t1", "Ada", "Lovelace", "ada@example.com", 1).
			AddRow("t2", "Ada", "Byron", "ada@example.com", 3))

	teachers, err := repo.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.Len(t, teachers, 2)
	assert.Equal(t, "t1", teachers[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByName(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db, StoreConfig{})
	mock.ExpectQuery(regexp.QuoteMeta("LOWER(s.first_name) = LOWER($1) AND LOWER(s.last_name) = LOWER($2)")).
		WithArgs("Ann", "Lee").
		WillReturnRows(sqlmock.NewRows(studentRowColumns).AddRow("s1", "Ann", "Lee", "c1", "Piano"))

	students, err := repo.FindByName(context.Background(), "Ann", "Lee")
	require.NoError(t, err)
	require.Len(t, students, 1)
	require.NotNil(t, students[0].CategoryID)
	assert.Equal(t, "c1", *students[0].CategoryID)
	assert.Equal(t, "Piano", students[0].Category.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db, StoreConfig{})
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY s.last_name ASC, s.first_name ASC, s.id ASC")).
		WillReturnRows(sqlmock.NewRows(studentRowColumns).
			AddRow("s1", "Ann", "Lee", nil, nil).
			AddRow("s2", "Bob", "Ray", nil, nil))

	students, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, students, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}
