package services

import (
	"context"

	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	"github.com/ledgerbooks/bookkeeping_core/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalByID retrieves a specific journal by its ID.
	GetJournalByID(ctx context.Context, companyID string, journalID string) (*domain.Journal, error)

	// GetJournalByCode retrieves a journal by its short code.
	GetJournalByCode(ctx context.Context, companyID string, code string) (*domain.Journal, error)

	// ListJournals retrieves the journals of a company.
	ListJournals(ctx context.Context, companyID string, includeInactive bool) ([]domain.Journal, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateJournal persists a new journal, inferring the journal type
	// from the code when the request leaves it out.
	CreateJournal(ctx context.Context, companyID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error)

	// UpdateJournal updates journal details (the code is immutable).
	UpdateJournal(ctx context.Context, companyID string, journalID string, req dto.UpdateJournalRequest, requestingUserID string) (*domain.Journal, error)

	// DeleteJournal removes a journal with no entries, or deactivates one
	// that has entries. The outcome reports which policy applied.
	DeleteJournal(ctx context.Context, companyID string, journalID string, requestingUserID string) (domain.JournalDeletionOutcome, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
