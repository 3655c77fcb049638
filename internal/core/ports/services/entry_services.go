package services

import (
	"context"

	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	"github.com/ledgerbooks/bookkeeping_core/internal/dto"
)

// EntryReaderSvc defines read operations for journal entries
type EntryReaderSvc interface {
	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, companyID string, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries.
	ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// EntryWriterSvc defines write operations for journal entries
type EntryWriterSvc interface {
	// CreateEntry validates balance and line shape, allocates the entry
	// number and persists a draft entry with its lines.
	CreateEntry(ctx context.Context, companyID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// UpdateEntry replaces the mutable fields of a draft entry. Posted and
	// cancelled entries reject updates.
	UpdateEntry(ctx context.Context, companyID string, entryID string, req dto.UpdateEntryRequest, requestingUserID string) (*domain.JournalEntry, error)

	// PostEntry transitions a draft entry to posted and applies its signed
	// amounts to account balances.
	PostEntry(ctx context.Context, companyID string, entryID string, requestingUserID string) (*domain.JournalEntry, error)

	// DeleteEntry removes a draft entry. Posted entries cannot be deleted.
	DeleteEntry(ctx context.Context, companyID string, entryID string, requestingUserID string) error

	// CancelEntry reverses a posted entry with a mirror-image posted entry
	// and marks the original cancelled. Returns the reversing entry.
	CancelEntry(ctx context.Context, companyID string, entryID string, req dto.CancelEntryRequest, requestingUserID string) (*domain.JournalEntry, error)
}

// EntrySvcFacade combines all entry-related service interfaces
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
}
