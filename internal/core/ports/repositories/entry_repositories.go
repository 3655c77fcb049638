package repositories

import (
	"context"

	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListEntriesParams narrows and paginates entry listings.
type ListEntriesParams struct {
	JournalID string
	Status    domain.EntryStatus
	Limit     int
	NextToken *string
}

// EntryRepository persists journal entries and their lines. Every mutating
// method runs as one database transaction: entry, lines, counter and
// balance updates are never partially visible.
type EntryRepository interface {
	// SaveEntry allocates the entry number from the owning journal's
	// sequence (atomic read-and-increment on the journal row) and inserts
	// the entry with its lines. The returned entry carries the allocated
	// number. A unique-index race on entry_number surfaces as
	// apperrors.ErrCollision so the caller can retry.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) (*domain.JournalEntry, error)

	FindEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error)
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error)
	// FindEntryBySource looks an entry up by its external identity
	// (journal code + external entry number captured at import time).
	FindEntryBySource(ctx context.Context, companyID, sourceCode, sourceEntryNumber string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, companyID string, params ListEntriesParams) ([]domain.JournalEntry, *string, error)

	// UpdateEntry rewrites a draft entry's mutable fields and replaces its
	// line set in one transaction.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) error

	// PostEntry flips the status to posted and applies the signed balance
	// deltas to the affected accounts, all in one transaction.
	PostEntry(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error

	// DeleteEntry removes the lines then the entry.
	DeleteEntry(ctx context.Context, entryID string) error

	// CancelEntry inserts the reversing entry with its lines (posted,
	// number allocated like SaveEntry), marks the original cancelled with
	// links both ways, and applies the reversing balance deltas.
	CancelEntry(ctx context.Context, original domain.JournalEntry, reversing domain.JournalEntry, reversingLines []domain.EntryLine, balanceChanges map[string]decimal.Decimal) (*domain.JournalEntry, error)
}
