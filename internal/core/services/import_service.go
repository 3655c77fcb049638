package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerbooks/bookkeeping_core/internal/apperrors"
	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/repositories"
	portssvc "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/services"
	"github.com/ledgerbooks/bookkeeping_core/internal/middleware"
	"github.com/ledgerbooks/bookkeeping_core/internal/utils/accounting"
	"github.com/ledgerbooks/bookkeeping_core/internal/utils/fec"
	"github.com/shopspring/decimal"
)

// journalNamesByType names journals the import creates on the fly.
var journalNamesByType = map[domain.JournalType]string{
	domain.JournalSale:          "Ventes",
	domain.JournalPurchase:      "Achats",
	domain.JournalBank:          "Banque",
	domain.JournalCash:          "Caisse",
	domain.JournalOpening:       "A-nouveaux",
	domain.JournalMiscellaneous: "Opérations diverses",
}

// importService replays flat-file ledger exports into the entry pipeline.
type importService struct {
	entryRepo       portsrepo.EntryRepository
	journalRepo     portsrepo.JournalRepository
	accountRepo     portsrepo.AccountRepositoryFacade
	standard        domain.Standard
	defaultCurrency string
}

// NewImportService creates a new import service.
func NewImportService(entryRepo portsrepo.EntryRepository, journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepositoryFacade, standard domain.Standard, defaultCurrency string) portssvc.ImportSvc {
	return &importService{
		entryRepo:       entryRepo,
		journalRepo:     journalRepo,
		accountRepo:     accountRepo,
		standard:        standard,
		defaultCurrency: defaultCurrency,
	}
}

// Ensure importService implements the portssvc.ImportSvc interface
var _ portssvc.ImportSvc = (*importService)(nil)

// ImportFEC parses the file, creates missing journals and accounts, and
// replays each (journal code, entry number) group as one posted entry.
// Groups fail independently; the report collects their errors.
func (s *importService) ImportFEC(ctx context.Context, companyID string, file io.Reader, importerUserID string) (*domain.ImportReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	parsed, err := fec.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	report := &domain.ImportReport{
		TotalDebit:  parsed.TotalDebit,
		TotalCredit: parsed.TotalCredit,
	}
	for _, pe := range parsed.Errors {
		report.Errors = append(report.Errors, domain.ImportError{
			Message: pe.Error(),
		})
	}
	if len(parsed.Rows) == 0 {
		return report, nil
	}

	journalIDs, err := s.ensureJournals(ctx, companyID, parsed.Rows, importerUserID, report)
	if err != nil {
		return nil, err
	}
	accountIDs, err := s.ensureAccounts(ctx, companyID, parsed.Rows, importerUserID, report)
	if err != nil {
		return nil, err
	}

	keys, groups := fec.GroupRows(parsed.Rows)
	for _, key := range keys {
		// Context cancellation stops further groups; what is already
		// imported stays imported.
		if err := ctx.Err(); err != nil {
			logger.Warn("Import interrupted", slog.Int("groups_remaining", len(keys)-report.EntriesCreated-report.EntriesSkipped))
			return report, err
		}
		rows := groups[key]
		s.importGroup(ctx, companyID, rows, journalIDs, accountIDs, importerUserID, report)
	}

	logger.Info("Import finished",
		slog.Int("entries_created", report.EntriesCreated),
		slog.Int("entries_skipped", report.EntriesSkipped),
		slog.Int("errors", len(report.Errors)))
	return report, nil
}

// ensureJournals creates every journal code the file mentions that does not
// exist yet, returning code -> journalID.
func (s *importService) ensureJournals(ctx context.Context, companyID string, rows []fec.Row, userID string, report *domain.ImportReport) (map[string]string, error) {
	existing, err := s.journalRepo.ListJournalCodes(ctx, companyID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, row := range rows {
		code := strings.ToUpper(strings.TrimSpace(row.JournalCode))
		if _, ok := existing[code]; ok {
			continue
		}

		journalType := accounting.InferJournalType(code)
		name := row.JournalName
		if name == "" {
			name = journalNamesByType[journalType]
		}
		journal := domain.Journal{
			JournalID:   uuid.NewString(),
			CompanyID:   companyID,
			Code:        code,
			Name:        name,
			JournalType: journalType,
			IsActive:    true,
			Imported:    true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.journalRepo.SaveJournal(ctx, journal); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				// Lost a race against a concurrent import; reread below.
				j, ferr := s.journalRepo.FindJournalByCode(ctx, companyID, code)
				if ferr != nil {
					return nil, ferr
				}
				existing[code] = j.JournalID
				report.JournalsExisting++
				continue
			}
			return nil, err
		}
		existing[code] = journal.JournalID
		report.JournalsCreated++
	}

	// Codes that were present before this run count as existing.
	report.JournalsExisting = len(existing) - report.JournalsCreated
	return existing, nil
}

// ensureAccounts creates every account number the file mentions that does
// not exist yet, returning accountNumber -> accountID. Numbers that fail
// classification are left out; their groups will fail with a clear error.
func (s *importService) ensureAccounts(ctx context.Context, companyID string, rows []fec.Row, userID string, report *domain.ImportReport) (map[string]string, error) {
	existing, err := s.accountRepo.ListAccountNumbers(ctx, companyID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, row := range rows {
		number := strings.TrimSpace(row.AccountNumber)
		if _, ok := existing[number]; ok {
			continue
		}

		class, err := accounting.DeriveClass(number, s.standard)
		if err != nil {
			report.Errors = append(report.Errors, domain.ImportError{
				JournalCode: row.JournalCode,
				EntryNumber: row.EntryNumber,
				Message:     fmt.Sprintf("account %s: %s", number, err.Error()),
			})
			continue
		}
		accountType, err := accounting.DeriveType(number, s.standard)
		if err != nil {
			report.Errors = append(report.Errors, domain.ImportError{
				JournalCode: row.JournalCode,
				EntryNumber: row.EntryNumber,
				Message:     fmt.Sprintf("account %s: %s", number, err.Error()),
			})
			continue
		}

		name := row.AccountName
		if name == "" {
			name = "Compte " + number
		}
		account := domain.Account{
			AccountID:     uuid.NewString(),
			CompanyID:     companyID,
			AccountNumber: number,
			Name:          name,
			AccountType:   accountType,
			Class:         class,
			CurrencyCode:  s.defaultCurrency,
			Balance:       decimal.Zero,
			IsActive:      true,
			Imported:      true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				a, ferr := s.accountRepo.FindAccountByNumber(ctx, companyID, number)
				if ferr != nil {
					return nil, ferr
				}
				existing[number] = a.AccountID
				report.AccountsExisting++
				continue
			}
			return nil, err
		}
		existing[number] = account.AccountID
		report.AccountsCreated++
	}

	report.AccountsExisting = len(existing) - report.AccountsCreated
	return existing, nil
}

// importGroup replays one (journal code, entry number) group as a posted
// entry. Failures are recorded in the report, not returned.
func (s *importService) importGroup(ctx context.Context, companyID string, rows []fec.Row, journalIDs, accountIDs map[string]string, userID string, report *domain.ImportReport) {
	logger := middleware.GetLoggerFromCtx(ctx)
	first := rows[0]
	code := strings.ToUpper(strings.TrimSpace(first.JournalCode))

	fail := func(msg string) {
		report.Errors = append(report.Errors, domain.ImportError{
			JournalCode: first.JournalCode,
			EntryNumber: first.EntryNumber,
			Message:     msg,
		})
	}

	// Idempotence: skip groups whose external identity is already in the
	// ledger.
	if _, err := s.entryRepo.FindEntryBySource(ctx, companyID, code, first.EntryNumber); err == nil {
		report.EntriesSkipped++
		return
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		fail(err.Error())
		return
	}

	journalID, ok := journalIDs[code]
	if !ok {
		fail(fmt.Sprintf("journal %s could not be created", code))
		return
	}

	entryID := uuid.NewString()
	lines := make([]domain.EntryLine, 0, len(rows))
	for i, row := range rows {
		accountID, ok := accountIDs[strings.TrimSpace(row.AccountNumber)]
		if !ok {
			fail(fmt.Sprintf("account %s could not be created", row.AccountNumber))
			return
		}
		currency := row.Currency
		if currency == "" {
			currency = s.defaultCurrency
		}
		lines = append(lines, domain.EntryLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    accountID,
			Description:  row.Description,
			DebitAmount:  row.Debit,
			CreditAmount: row.Credit,
			CurrencyCode: currency,
			LineOrder:    i + 1,
		})
	}

	totalDebit, _, err := accounting.ValidateEntryBalance(lines)
	if err != nil {
		fail(err.Error())
		return
	}

	now := time.Now()
	entry := domain.JournalEntry{
		EntryID:           entryID,
		CompanyID:         companyID,
		JournalID:         journalID,
		EntryDate:         first.EntryDate,
		Description:       first.Description,
		Reference:         first.PieceRef,
		Status:            domain.EntryDraft,
		TotalAmount:       totalDebit,
		SourceCode:        code,
		SourceEntryNumber: first.EntryNumber,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	var saved *domain.JournalEntry
	for attempt := 0; ; attempt++ {
		saved, err = s.entryRepo.SaveEntry(ctx, entry, lines)
		if err == nil {
			break
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Another import of the same file won the race.
			report.EntriesSkipped++
			return
		}
		if !errors.Is(err, apperrors.ErrCollision) || attempt+1 >= maxNumberingRetries {
			fail(err.Error())
			return
		}
	}

	// Post immediately: imported history is settled fact, not drafts.
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, companyID, accountIDsOf(lines))
	if err != nil {
		fail(err.Error())
		return
	}
	changes := make(map[string]decimal.Decimal)
	for _, line := range lines {
		signed, err := accounting.SignedAmount(line, accounts[line.AccountID].AccountType)
		if err != nil {
			fail(err.Error())
			return
		}
		changes[line.AccountID] = changes[line.AccountID].Add(signed)
	}

	saved.PostedBy = userID
	postedAt := time.Now()
	saved.PostedAt = &postedAt
	saved.LastUpdatedAt = postedAt
	saved.LastUpdatedBy = userID
	if err := s.entryRepo.PostEntry(ctx, *saved, changes); err != nil {
		logger.Error("Failed to post imported entry", slog.String("error", err.Error()), slog.String("entry_id", saved.EntryID))
		fail(err.Error())
		return
	}

	report.EntriesCreated++
}
