package repositories

import (
	"context"
	"time"

	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
)

// JournalRepository persists journals and their numbering counters.
type JournalRepository interface {
	SaveJournal(ctx context.Context, journal domain.Journal) error
	FindJournalByID(ctx context.Context, companyID, journalID string) (*domain.Journal, error)
	FindJournalByCode(ctx context.Context, companyID, code string) (*domain.Journal, error)
	// ListJournalCodes returns code -> journalID for a company.
	ListJournalCodes(ctx context.Context, companyID string) (map[string]string, error)
	ListJournals(ctx context.Context, companyID string, includeInactive bool) ([]domain.Journal, error)
	UpdateJournal(ctx context.Context, journal domain.Journal) error
	// CountEntries reports how many entries reference the journal; the
	// deletion policy branches on it.
	CountEntries(ctx context.Context, journalID string) (int64, error)
	DeleteJournal(ctx context.Context, journalID string) error
	DeactivateJournal(ctx context.Context, journalID, userID string, now time.Time) error
}
