package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/noah-isme/lesson-ledger-api/internal/models"
	"github.com/noah-isme/lesson-ledger-api/internal/repository"
	appErrors "github.com/noah-isme/lesson-ledger-api/pkg/errors"
)

var (
	errNoStudents   = appErrors.Clone(appErrors.ErrValidation, "a lesson needs at least one student")
	errBlankTeacher = appErrors.Clone(appErrors.ErrValidation, "teacher must not be blank")
)

// storeError maps entity store failures onto the typed error taxonomy.
func storeError(err error, resource string) error {
	if err == nil {
		return nil
	}
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return appErrors.Clone(appErrors.ErrNotFound, resource+" not found")
	case errors.Is(err, repository.ErrDuplicate):
		return appErrors.Wrap(err, appErrors.ErrDuplicateKey.Code, appErrors.ErrDuplicateKey.Status, resource+" already exists")
	case errors.Is(err, repository.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "store unavailable while loading "+resource)
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to access "+resource)
	}
}

func requireActor(actor models.Actor) error {
	if !actor.Authenticated() {
		return appErrors.ErrUnauthorized
	}
	return nil
}

func requireLevel(actor models.Actor, level int) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if !actor.HasLevel(level) {
		return appErrors.Clone(appErrors.ErrForbidden, "insufficient access level")
	}
	return nil
}
