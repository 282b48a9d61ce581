package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	// ErrDuplicate marks a unique constraint violation.
	ErrDuplicate = errors.New("duplicate key")
	// ErrUnavailable marks a transient backend failure that is safe to retry.
	ErrUnavailable = errors.New("store unavailable")
)

const uniqueViolation = "23505"

type queryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// StoreConfig tunes every call made by the lesson store repositories.
type StoreConfig struct {
	Timeout time.Duration
	Metrics queryObserver
}

type store struct {
	db  *sqlx.DB
	cfg StoreConfig
}

// run executes fn under the configured per-call timeout, records its
// latency and classifies driver failures.
func (s store) run(ctx context.Context, label string, fn func(ctx context.Context) error) error {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	start := time.Now()
	err := fn(ctx)
	if s.cfg.Metrics != nil {
		s.cfg.Metrics.ObserveDBQuery(label, time.Since(start))
	}
	return classify(label, err)
}

func classify(label string, err error) error {
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return err
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == uniqueViolation {
			return fmt.Errorf("%s: %w: %w", label, ErrDuplicate, err)
		}
		switch pqErr.Code.Class() {
		case "08", "53", "57":
			return fmt.Errorf("%s: %w: %w", label, ErrUnavailable, err)
		}
		return fmt.Errorf("%s: %w", label, err)
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.As(err, &netErr) {
		return fmt.Errorf("%s: %w: %w", label, ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", label, err)
}
