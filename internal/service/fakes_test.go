package service

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/noah-isme/lesson-ledger-api/internal/models"
	"github.com/noah-isme/lesson-ledger-api/internal/repository"
)

type fakeTeachers struct {
	teachers []models.Teacher
	err      error
	calls    int
}

func (f *fakeTeachers) FindByID(_ context.Context, id string) (*models.Teacher, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.teachers {
		if t.ID == id {
			teacher := t
			return &teacher, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeTeachers) FindByEmail(_ context.Context, email string) ([]models.Teacher, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Teacher
	for _, t := range f.teachers {
		if strings.EqualFold(t.Email, email) {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeStudents struct {
	students []models.Student
	err      error
}

func (f *fakeStudents) FindByID(_ context.Context, id string) (*models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, s := range f.students {
		if s.ID == id {
			student := s
			return &student, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStudents) FindByName(_ context.Context, first, last string) ([]models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Student
	for _, s := range f.students {
		if strings.EqualFold(s.FirstName, first) && strings.EqualFold(s.LastName, last) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStudents) List(_ context.Context) ([]models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Student(nil), f.students...), nil
}

// fakeLessons is an in-memory lesson store enforcing the same uniqueness
// rule as the lessons table.
type fakeLessons struct {
	lessons  []models.Lesson
	teachers *fakeTeachers
	students *fakeStudents
	err      error
	finds    int
	queries  []models.LessonQuery
}

func (f *fakeLessons) Find(_ context.Context, q models.LessonQuery) ([]models.LessonDetail, error) {
	f.finds++
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	var matched []models.Lesson
	for _, l := range f.lessons {
		if q.Matches(l) {
			matched = append(matched, l)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Date.Equal(matched[j].Date) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].Date.Before(matched[j].Date)
	})
	out := make([]models.LessonDetail, 0, len(matched))
	for _, l := range matched {
		out = append(out, f.expand(l))
	}
	return out, nil
}

func (f *fakeLessons) FindByID(_ context.Context, id string) (*models.LessonDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, l := range f.lessons {
		if l.ID == id {
			detail := f.expand(l)
			return &detail, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeLessons) Create(_ context.Context, lesson *models.Lesson) error {
	if f.err != nil {
		return f.err
	}
	for _, l := range f.lessons {
		if l.Date.Equal(lesson.Date) && l.TeacherID == lesson.TeacherID && strings.Join(l.StudentIDs, ",") == strings.Join(lesson.StudentIDs, ",") {
			return repository.ErrDuplicate
		}
	}
	if lesson.ID == "" {
		lesson.ID = uuid.NewString()
	}
	f.lessons = append(f.lessons, *lesson)
	return nil
}

func (f *fakeLessons) Update(_ context.Context, id string, patch models.LessonPatch) (*models.Lesson, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.lessons {
		l := &f.lessons[i]
		if l.ID != id {
			continue
		}
		if patch.Date != nil {
			l.Date = *patch.Date
		}
		if patch.LessonType != nil {
			l.LessonType = *patch.LessonType
		}
		if patch.Notes != nil {
			l.Notes = *patch.Notes
		}
		if patch.StudentIDs != nil {
			l.StudentIDs = pq.StringArray(patch.StudentIDs)
		}
		if patch.TeacherID != nil {
			l.TeacherID = *patch.TeacherID
		}
		l.TotalEdits++
		l.LastEdited = patch.EditedAt
		updated := *l
		return &updated, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeLessons) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	for i, l := range f.lessons {
		if l.ID == id {
			f.lessons = append(f.lessons[:i], f.lessons[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeLessons) expand(l models.Lesson) models.LessonDetail {
	detail := models.LessonDetail{
		ID:         l.ID,
		Date:       l.Date,
		LessonType: l.LessonType,
		Notes:      l.Notes,
		TotalEdits: l.TotalEdits,
		LastEdited: l.LastEdited,
		Teacher:    models.Teacher{ID: l.TeacherID},
	}
	for _, t := range f.teachers.teachers {
		if t.ID == l.TeacherID {
			detail.Teacher = t
		}
	}
	for _, id := range l.StudentIDs {
		for _, s := range f.students.students {
			if s.ID == id {
				detail.Students = append(detail.Students, s)
			}
		}
	}
	return detail
}

func category(name string) *models.Category {
	return &models.Category{ID: "cat-" + strings.ToLower(name), Name: name}
}

func student(id, first, last, cat string) models.Student {
	s := models.Student{ID: id, FirstName: first, LastName: last}
	if cat != "" {
		s.Category = category(cat)
		s.CategoryID = &s.Category.ID
	}
	return s
}
