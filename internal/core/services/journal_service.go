package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerbooks/bookkeeping_core/internal/apperrors"
	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/repositories"
	portssvc "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/services"
	"github.com/ledgerbooks/bookkeeping_core/internal/dto"
	"github.com/ledgerbooks/bookkeeping_core/internal/middleware"
	"github.com/ledgerbooks/bookkeeping_core/internal/utils/accounting"
)

// journalService manages journals and their numbering counters.
type journalService struct {
	journalRepo portsrepo.JournalRepository
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepository) portssvc.JournalSvcFacade {
	return &journalService{journalRepo: journalRepo}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournal persists a new journal. Codes are stored upper-cased; the
// journal type is inferred from the code when the request leaves it out.
func (s *journalService) CreateJournal(ctx context.Context, companyID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	journalType := accounting.InferJournalType(code)
	if req.JournalType != nil {
		journalType = *req.JournalType
	}

	now := time.Now()
	journal := domain.Journal{
		JournalID:    uuid.NewString(),
		CompanyID:    companyID,
		Code:         code,
		Name:         req.Name,
		JournalType:  journalType,
		Description:  req.Description,
		LastSequence: 0,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, journal); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save journal", slog.String("error", err.Error()), slog.String("code", code))
		}
		return nil, err
	}

	logger.Info("Journal created", slog.String("journal_id", journal.JournalID), slog.String("code", code))
	return &journal, nil
}

// GetJournalByID retrieves a journal by ID.
func (s *journalService) GetJournalByID(ctx context.Context, companyID string, journalID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	journal, err := s.journalRepo.FindJournalByID(ctx, companyID, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal by ID", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		}
		return nil, err
	}
	return journal, nil
}

// GetJournalByCode retrieves a journal by its short code.
func (s *journalService) GetJournalByCode(ctx context.Context, companyID string, code string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	journal, err := s.journalRepo.FindJournalByCode(ctx, companyID, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal by code", slog.String("error", err.Error()), slog.String("code", code))
		}
		return nil, err
	}
	return journal, nil
}

// ListJournals retrieves the journals of a company.
func (s *journalService) ListJournals(ctx context.Context, companyID string, includeInactive bool) ([]domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	journals, err := s.journalRepo.ListJournals(ctx, companyID, includeInactive)
	if err != nil {
		logger.Error("Failed to list journals", slog.String("error", err.Error()))
		return nil, err
	}
	if journals == nil {
		journals = []domain.Journal{}
	}
	return journals, nil
}

// UpdateJournal updates journal details. The code never changes because
// posted entry numbers embed it.
func (s *journalService) UpdateJournal(ctx context.Context, companyID string, journalID string, req dto.UpdateJournalRequest, requestingUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, companyID, journalID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		journal.Name = *req.Name
	}
	if req.JournalType != nil {
		journal.JournalType = *req.JournalType
	}
	if req.Description != nil {
		journal.Description = *req.Description
	}
	if req.IsActive != nil {
		journal.IsActive = *req.IsActive
	}
	journal.LastUpdatedAt = time.Now()
	journal.LastUpdatedBy = requestingUserID

	if err := s.journalRepo.UpdateJournal(ctx, *journal); err != nil {
		logger.Error("Failed to update journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, err
	}

	logger.Info("Journal updated", slog.String("journal_id", journalID))
	return journal, nil
}

// DeleteJournal removes a journal with no entries outright. A journal that
// already numbered entries is only deactivated, keeping its sequence and
// history intact.
func (s *journalService) DeleteJournal(ctx context.Context, companyID string, journalID string, requestingUserID string) (domain.JournalDeletionOutcome, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, companyID, journalID)
	if err != nil {
		return "", err
	}

	count, err := s.journalRepo.CountEntries(ctx, journal.JournalID)
	if err != nil {
		logger.Error("Failed to count journal entries", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return "", err
	}

	if count == 0 {
		if err := s.journalRepo.DeleteJournal(ctx, journal.JournalID); err != nil {
			logger.Error("Failed to delete journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
			return "", err
		}
		logger.Info("Journal deleted", slog.String("journal_id", journalID))
		return domain.JournalDeleted, nil
	}

	if err := s.journalRepo.DeactivateJournal(ctx, journal.JournalID, requestingUserID, time.Now()); err != nil {
		logger.Error("Failed to deactivate journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return "", err
	}
	logger.Info("Journal deactivated instead of deleted", slog.String("journal_id", journalID), slog.Int64("entry_count", count))
	return domain.JournalDeactivated, nil
}
