package application

import (
	"errors"
	"fmt"

	"github.com/petfoodstore/admin-dashboard/internal/domains/reporting/ports"
)

var (
	// ErrSourceNotConfigured signals a dashboard source was not wired.
	ErrSourceNotConfigured = errors.New("dashboard source not configured")
	// ErrCursorStalled signals a source returned the cursor it was given.
	ErrCursorStalled = errors.New("source cursor did not advance")
	// ErrTooManyPages signals a source exceeded the configured page budget.
	ErrTooManyPages = errors.New("source exceeded page limit")
	// ErrBoardClosed is returned by refreshes requested after Close.
	ErrBoardClosed = errors.New("dashboard board closed")
)

// mapError collapses every failure into ErrDashboardUnavailable while keeping
// the cause in the chain for logs.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ports.ErrDashboardUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ports.ErrDashboardUnavailable, err)
}
