package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerbooks/bookkeeping_core/internal/apperrors"
	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/repositories"
	portssvc "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/services"
	"github.com/ledgerbooks/bookkeeping_core/internal/dto"
	"github.com/ledgerbooks/bookkeeping_core/internal/middleware"
	"github.com/ledgerbooks/bookkeeping_core/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// maxNumberingRetries bounds how often a create retries after losing an
// entry number race to a concurrent writer.
const maxNumberingRetries = 3

// entryService manages the journal entry lifecycle.
type entryService struct {
	entryRepo       portsrepo.EntryRepository
	journalRepo     portsrepo.JournalRepository
	accountRepo     portsrepo.AccountRepositoryFacade
	defaultCurrency string
}

// NewEntryService creates a new entry service.
func NewEntryService(entryRepo portsrepo.EntryRepository, journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepositoryFacade, defaultCurrency string) portssvc.EntrySvcFacade {
	return &entryService{
		entryRepo:       entryRepo,
		journalRepo:     journalRepo,
		accountRepo:     accountRepo,
		defaultCurrency: defaultCurrency,
	}
}

// Ensure entryService implements the portssvc.EntrySvcFacade interface
var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// buildLines converts request lines to domain lines with IDs and ordering.
func (s *entryService) buildLines(entryID string, reqLines []dto.CreateEntryLineRequest) []domain.EntryLine {
	lines := make([]domain.EntryLine, 0, len(reqLines))
	for i, rl := range reqLines {
		currency := rl.CurrencyCode
		if currency == "" {
			currency = s.defaultCurrency
		}
		lines = append(lines, domain.EntryLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    rl.AccountID,
			Description:  rl.Description,
			DebitAmount:  rl.DebitAmount,
			CreditAmount: rl.CreditAmount,
			CurrencyCode: currency,
			LineOrder:    i + 1,
		})
	}
	return lines
}

// validateAccounts checks every referenced account exists in the company
// and is active, and returns the accounts keyed by ID for sign resolution.
func (s *entryService) validateAccounts(ctx context.Context, companyID string, lines []domain.EntryLine) (map[string]domain.Account, error) {
	seen := make(map[string]struct{}, len(lines))
	accountIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; !ok {
			seen[line.AccountID] = struct{}{}
			accountIDs = append(accountIDs, line.AccountID)
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, companyID, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range accountIDs {
		account, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, account.AccountNumber)
		}
	}
	return accounts, nil
}

// balanceChanges computes the signed per-account balance deltas an entry's
// lines produce when posted.
func (s *entryService) balanceChanges(lines []domain.EntryLine, accounts map[string]domain.Account) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal)
	for _, line := range lines {
		account := accounts[line.AccountID]
		signed, err := accounting.SignedAmount(line, account.AccountType)
		if err != nil {
			return nil, err
		}
		changes[line.AccountID] = changes[line.AccountID].Add(signed)
	}
	return changes, nil
}

// CreateEntry validates and persists a draft entry. Number allocation can
// lose a race against a concurrent create on the same journal, so the save
// retries a bounded number of times before giving up.
func (s *entryService) CreateEntry(ctx context.Context, companyID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, companyID, req.JournalID)
	if err != nil {
		return nil, err
	}
	if !journal.IsActive {
		return nil, fmt.Errorf("%w: journal %s is inactive", apperrors.ErrValidation, journal.Code)
	}

	entryID := uuid.NewString()
	lines := s.buildLines(entryID, req.Lines)

	totalDebit, _, err := accounting.ValidateEntryBalance(lines)
	if err != nil {
		return nil, err
	}
	if _, err := s.validateAccounts(ctx, companyID, lines); err != nil {
		return nil, err
	}

	now := time.Now()
	entry := domain.JournalEntry{
		EntryID:     entryID,
		CompanyID:   companyID,
		JournalID:   journal.JournalID,
		EntryDate:   req.EntryDate,
		Description: req.Description,
		Reference:   req.Reference,
		Status:      domain.EntryDraft,
		TotalAmount: totalDebit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	var saved *domain.JournalEntry
	for attempt := 0; ; attempt++ {
		saved, err = s.entryRepo.SaveEntry(ctx, entry, lines)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrCollision) || attempt+1 >= maxNumberingRetries {
			if !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrCollision) {
				logger.Error("Failed to save entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			}
			return nil, err
		}
		logger.Warn("Entry number collision, retrying", slog.String("journal_id", journal.JournalID), slog.Int("attempt", attempt+1))
	}

	logger.Info("Entry created", slog.String("entry_id", saved.EntryID), slog.String("entry_number", saved.EntryNumber))
	return saved, nil
}

// GetEntryByID retrieves an entry with its lines.
func (s *entryService) GetEntryByID(ctx context.Context, companyID string, entryID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entry.EntryID)
	if err != nil {
		logger.Error("Failed to load entry lines", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a paginated list of entries.
func (s *entryService) ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, nextToken, err := s.entryRepo.ListEntries(ctx, companyID, portsrepo.ListEntriesParams{
		JournalID: params.JournalID,
		Status:    params.Status,
		Limit:     params.Limit,
		NextToken: params.NextToken,
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to list entries", slog.String("error", err.Error()))
		}
		return nil, err
	}

	resp := dto.ToListEntriesResponse(entries, nextToken)
	return &resp, nil
}

// UpdateEntry replaces the mutable fields of a draft entry. Posted and
// cancelled entries are immutable.
func (s *entryService) UpdateEntry(ctx context.Context, companyID string, entryID string, req dto.UpdateEntryRequest, requestingUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryDraft {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrImmutableState, entry.EntryNumber, entry.Status)
	}

	if req.EntryDate != nil {
		entry.EntryDate = *req.EntryDate
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
	}

	lines := entry.Lines
	if req.Lines != nil {
		lines = s.buildLines(entry.EntryID, req.Lines)
	} else {
		lines, err = s.entryRepo.FindLinesByEntryID(ctx, entry.EntryID)
		if err != nil {
			return nil, err
		}
	}

	totalDebit, _, err := accounting.ValidateEntryBalance(lines)
	if err != nil {
		return nil, err
	}
	if _, err := s.validateAccounts(ctx, companyID, lines); err != nil {
		return nil, err
	}

	entry.TotalAmount = totalDebit
	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = requestingUserID

	if err := s.entryRepo.UpdateEntry(ctx, *entry, lines); err != nil {
		logger.Error("Failed to update entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}

	entry.Lines = lines
	logger.Info("Entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

// PostEntry transitions a draft to posted. The repository applies the
// balance deltas in the same transaction as the status flip.
func (s *entryService) PostEntry(ctx context.Context, companyID string, entryID string, requestingUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryDraft {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrImmutableState, entry.EntryNumber, entry.Status)
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entry.EntryID)
	if err != nil {
		return nil, err
	}
	// Re-check the invariant before it becomes permanent.
	if _, _, err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, err
	}
	accounts, err := s.validateAccounts(ctx, companyID, lines)
	if err != nil {
		return nil, err
	}
	changes, err := s.balanceChanges(lines, accounts)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry.Status = domain.EntryPosted
	entry.PostedBy = requestingUserID
	entry.PostedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = requestingUserID

	if err := s.entryRepo.PostEntry(ctx, *entry, changes); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to post entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	entry.Lines = lines
	logger.Info("Entry posted", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// DeleteEntry removes a draft entry. Posted history is append-only and can
// only be undone by cancellation.
func (s *entryService) DeleteEntry(ctx context.Context, companyID string, entryID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		return err
	}
	if entry.Status != domain.EntryDraft {
		return fmt.Errorf("%w: entry %s is %s", apperrors.ErrImmutableState, entry.EntryNumber, entry.Status)
	}

	if err := s.entryRepo.DeleteEntry(ctx, entry.EntryID); err != nil {
		logger.Error("Failed to delete entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return err
	}

	logger.Info("Entry deleted", slog.String("entry_id", entryID))
	return nil
}

// CancelEntry reverses a posted entry by appending a mirror-image posted
// entry and marking the original cancelled.
func (s *entryService) CancelEntry(ctx context.Context, companyID string, entryID string, req dto.CancelEntryRequest, requestingUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.entryRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.EntryPosted {
		return nil, fmt.Errorf("%w: only posted entries can be cancelled, entry %s is %s", apperrors.ErrImmutableState, original.EntryNumber, original.Status)
	}

	originalLines, err := s.entryRepo.FindLinesByEntryID(ctx, original.EntryID)
	if err != nil {
		return nil, err
	}

	reversalDate := time.Now()
	if req.ReversalDate != nil {
		reversalDate = *req.ReversalDate
	}
	description := "Reversal of " + original.EntryNumber
	if req.Reason != "" {
		description += ": " + req.Reason
	}

	now := time.Now()
	reversingID := uuid.NewString()
	reversing := domain.JournalEntry{
		EntryID:         reversingID,
		CompanyID:       companyID,
		JournalID:       original.JournalID,
		EntryDate:       reversalDate,
		Description:     description,
		Reference:       original.Reference,
		Status:          domain.EntryPosted,
		TotalAmount:     original.TotalAmount,
		OriginalEntryID: &original.EntryID,
		PostedBy:        requestingUserID,
		PostedAt:        &now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	// Mirror every line: debits become credits and vice versa.
	reversingLines := make([]domain.EntryLine, 0, len(originalLines))
	for _, line := range originalLines {
		reversingLines = append(reversingLines, domain.EntryLine{
			LineID:       uuid.NewString(),
			EntryID:      reversingID,
			AccountID:    line.AccountID,
			Description:  line.Description,
			DebitAmount:  line.CreditAmount,
			CreditAmount: line.DebitAmount,
			CurrencyCode: line.CurrencyCode,
			LineOrder:    line.LineOrder,
		})
	}

	accounts, err := s.validateAccounts(ctx, companyID, reversingLines)
	if err != nil {
		// Cancellation must work even if an account was deactivated since
		// posting, so only a missing account is fatal here.
		if errors.Is(err, apperrors.ErrValidation) {
			accounts, err = s.accountRepo.FindAccountsByIDs(ctx, companyID, accountIDsOf(reversingLines))
		}
		if err != nil {
			return nil, err
		}
	}
	changes, err := s.balanceChanges(reversingLines, accounts)
	if err != nil {
		return nil, err
	}

	var saved *domain.JournalEntry
	for attempt := 0; ; attempt++ {
		saved, err = s.entryRepo.CancelEntry(ctx, *original, reversing, reversingLines, changes)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrCollision) || attempt+1 >= maxNumberingRetries {
			if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrCollision) {
				logger.Error("Failed to cancel entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			}
			return nil, err
		}
		logger.Warn("Entry number collision during cancel, retrying", slog.String("journal_id", original.JournalID), slog.Int("attempt", attempt+1))
	}

	logger.Info("Entry cancelled", slog.String("entry_id", entryID), slog.String("reversing_entry_id", saved.EntryID))
	return saved, nil
}

func accountIDsOf(lines []domain.EntryLine) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; !ok {
			seen[line.AccountID] = struct{}{}
			ids = append(ids, line.AccountID)
		}
	}
	return ids
}
