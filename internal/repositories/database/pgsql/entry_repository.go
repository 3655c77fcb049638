package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerbooks/bookkeeping_core/internal/apperrors"
	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/repositories"
	"github.com/ledgerbooks/bookkeeping_core/internal/models"
	"github.com/ledgerbooks/bookkeeping_core/internal/utils/accounting"
	"github.com/ledgerbooks/bookkeeping_core/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const entryColumns = `entry_id, company_id, journal_id, entry_number, entry_date, description, reference, status, total_amount, source_code, source_entry_number, reversing_entry_id, original_entry_id, posted_by, posted_at, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_id, description, debit_amount, credit_amount, currency_code, line_order`

// Unique constraint names from the schema; 23505 handling branches on them.
const (
	constraintEntryNumber = "uq_journal_entries_company_number"
	constraintEntrySource = "uq_journal_entries_company_source"
)

type PgxEntryRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxEntryRepository creates a new repository for journal entry data.
// The account repository dependency supplies row locking and balance
// updates inside entry transactions.
func newPgxEntryRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.EntryRepository {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepository
var _ portsrepo.EntryRepository = (*PgxEntryRepository)(nil)

// nullIfEmpty maps the domain's empty string to a SQL NULL. The source
// columns must be NULL on non-imported entries or the import idempotence
// constraint would treat every manual entry as the same source.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:           d.EntryID,
		CompanyID:         d.CompanyID,
		JournalID:         d.JournalID,
		EntryNumber:       d.EntryNumber,
		EntryDate:         d.EntryDate,
		Description:       d.Description,
		Reference:         d.Reference,
		Status:            string(d.Status),
		TotalAmount:       d.TotalAmount,
		SourceCode:        nullIfEmpty(d.SourceCode),
		SourceEntryNumber: nullIfEmpty(d.SourceEntryNumber),
		ReversingEntryID:  d.ReversingEntryID,
		OriginalEntryID:   d.OriginalEntryID,
		PostedBy:          d.PostedBy,
		PostedAt:          d.PostedAt,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:           m.EntryID,
		CompanyID:         m.CompanyID,
		JournalID:         m.JournalID,
		EntryNumber:       m.EntryNumber,
		EntryDate:         m.EntryDate,
		Description:       m.Description,
		Reference:         m.Reference,
		Status:            domain.EntryStatus(m.Status),
		TotalAmount:       m.TotalAmount,
		SourceCode:        orEmpty(m.SourceCode),
		SourceEntryNumber: orEmpty(m.SourceEntryNumber),
		ReversingEntryID:  m.ReversingEntryID,
		OriginalEntryID:   m.OriginalEntryID,
		PostedBy:          m.PostedBy,
		PostedAt:          m.PostedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainLine(m models.EntryLine) domain.EntryLine {
	return domain.EntryLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		Description:  m.Description,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		CurrencyCode: m.CurrencyCode,
		LineOrder:    m.LineOrder,
	}
}

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.JournalID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Description,
		&m.Reference,
		&m.Status,
		&m.TotalAmount,
		&m.SourceCode,
		&m.SourceEntryNumber,
		&m.ReversingEntryID,
		&m.OriginalEntryID,
		&m.PostedBy,
		&m.PostedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// allocateEntryNumber increments the journal's sequence inside the
// transaction and composes the official entry number. The UPDATE takes a
// row lock on the journal, serialising concurrent allocations.
func (r *PgxEntryRepository) allocateEntryNumber(ctx context.Context, tx pgx.Tx, entry *domain.JournalEntry) error {
	query := `
		UPDATE journals
		SET last_sequence = last_sequence + 1, last_updated_at = $1, last_updated_by = $2
		WHERE journal_id = $3 AND company_id = $4
		RETURNING last_sequence, code;
	`
	var sequence int64
	var code string
	err := tx.QueryRow(ctx, query, entry.LastUpdatedAt, entry.LastUpdatedBy, entry.JournalID, entry.CompanyID).Scan(&sequence, &code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, entry.JournalID)
		}
		return fmt.Errorf("failed to allocate entry number for journal %s: %w", entry.JournalID, err)
	}
	entry.EntryNumber = accounting.FormatEntryNumber(code, entry.EntryDate, sequence)
	return nil
}

// insertEntryInTx inserts the entry row and its lines.
func (r *PgxEntryRepository) insertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.EntryLine) error {
	m := toModelEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.CompanyID,
		m.JournalID,
		m.EntryNumber,
		m.EntryDate,
		m.Description,
		m.Reference,
		m.Status,
		m.TotalAmount,
		m.SourceCode,
		m.SourceEntryNumber,
		m.ReversingEntryID,
		m.OriginalEntryID,
		m.PostedBy,
		m.PostedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case constraintEntryNumber:
				return fmt.Errorf("%w: entry number %s", apperrors.ErrCollision, m.EntryNumber)
			case constraintEntrySource:
				return fmt.Errorf("%w: source entry %s/%s already imported", apperrors.ErrDuplicate, orEmpty(m.SourceCode), orEmpty(m.SourceEntryNumber))
			}
			return fmt.Errorf("%w: entry %s", apperrors.ErrDuplicate, m.EntryID)
		}
		return fmt.Errorf("failed to insert entry %s: %w", m.EntryID, err)
	}

	lineQuery := `
		INSERT INTO entry_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(lineQuery,
			line.LineID,
			entry.EntryID,
			line.AccountID,
			line.Description,
			line.DebitAmount,
			line.CreditAmount,
			line.CurrencyCode,
			line.LineOrder,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert lines for entry %s: %w", m.EntryID, err)
	}
	return nil
}

// SaveEntry allocates the entry number and inserts the entry with its lines
// in one transaction.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.allocateEntryNumber(ctx, tx, &entry); err != nil {
		return nil, err
	}
	if err := r.insertEntryInTx(ctx, tx, entry, lines); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	entry.Lines = lines
	return &entry, nil
}

// FindEntryByID retrieves an entry by its ID, scoped to a company.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1 AND entry_id = $2;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, companyID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	d := toDomainEntry(m)
	return &d, nil
}

// FindLinesByEntryID retrieves the lines of an entry in line order.
func (r *PgxEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM entry_lines
		WHERE entry_id = $1
		ORDER BY line_order;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	var lines []domain.EntryLine
	for rows.Next() {
		var m models.EntryLine
		if err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountID,
			&m.Description,
			&m.DebitAmount,
			&m.CreditAmount,
			&m.CurrencyCode,
			&m.LineOrder,
		); err != nil {
			return nil, fmt.Errorf("failed to scan line row: %w", err)
		}
		lines = append(lines, toDomainLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows: %w", err)
	}
	return lines, nil
}

// FindEntryBySource looks an entry up by its external identity.
func (r *PgxEntryRepository) FindEntryBySource(ctx context.Context, companyID, sourceCode, sourceEntryNumber string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1 AND source_code = $2 AND source_entry_number = $3;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, companyID, sourceCode, sourceEntryNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by source %s/%s: %w", sourceCode, sourceEntryNumber, err)
	}
	d := toDomainEntry(m)
	return &d, nil
}

// ListEntries retrieves a keyset-paginated page of entries, newest first.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, companyID string, params portsrepo.ListEntriesParams) ([]domain.JournalEntry, *string, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1
		  AND ($2 = '' OR journal_id = $2)
		  AND ($3 = '' OR status = $3)
		  AND ($4::timestamptz IS NULL OR (entry_date, created_at) < ($4, $5))
		ORDER BY entry_date DESC, created_at DESC
		LIMIT $6;
	`
	var afterDate, afterCreated interface{}
	if params.NextToken != nil {
		entryDate, createdAt, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		afterDate, afterCreated = entryDate, createdAt
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	// Fetch one extra row to know whether another page exists.
	rows, err := r.Pool.Query(ctx, query, companyID, params.JournalID, string(params.Status), afterDate, afterCreated, limit+1)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, toDomainEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	var nextToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextToken = &token
	}
	return entries, nextToken, nil
}

// UpdateEntry rewrites a draft entry's mutable fields and replaces its
// lines. The status guard keeps posted history immutable even under racing
// updates.
func (r *PgxEntryRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE journal_entries
		SET entry_date = $1, description = $2, reference = $3, total_amount = $4, last_updated_at = $5, last_updated_by = $6
		WHERE entry_id = $7 AND status = $8;
	`
	tag, err := tx.Exec(ctx, query,
		entry.EntryDate,
		entry.Description,
		entry.Reference,
		entry.TotalAmount,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
		entry.EntryID,
		string(domain.EntryDraft),
	)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", entry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is not a draft", apperrors.ErrConflict, entry.EntryID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM entry_lines WHERE entry_id = $1;`, entry.EntryID); err != nil {
		return fmt.Errorf("failed to clear lines for entry %s: %w", entry.EntryID, err)
	}

	lineQuery := `
		INSERT INTO entry_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(lineQuery,
			line.LineID,
			entry.EntryID,
			line.AccountID,
			line.Description,
			line.DebitAmount,
			line.CreditAmount,
			line.CurrencyCode,
			line.LineOrder,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to replace lines for entry %s: %w", entry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// PostEntry flips a draft entry to posted and applies balance deltas.
func (r *PgxEntryRepository) PostEntry(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE journal_entries
		SET status = $1, posted_by = $2, posted_at = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $6 AND status = $7;
	`
	tag, err := tx.Exec(ctx, query,
		string(domain.EntryPosted),
		entry.PostedBy,
		entry.PostedAt,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
		entry.EntryID,
		string(domain.EntryDraft),
	)
	if err != nil {
		return fmt.Errorf("failed to post entry %s: %w", entry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is not a draft", apperrors.ErrConflict, entry.EntryID)
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID := range balanceChanges {
		accountIDs = append(accountIDs, accountID)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return err
	}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, entry.LastUpdatedBy, entry.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteEntry removes the lines then the entry.
func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM entry_lines WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete lines for entry %s: %w", entryID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return r.Commit(ctx, tx)
}

// CancelEntry inserts the reversing entry, marks the original cancelled
// with links both ways, and applies the reversing balance deltas.
func (r *PgxEntryRepository) CancelEntry(ctx context.Context, original domain.JournalEntry, reversing domain.JournalEntry, reversingLines []domain.EntryLine, balanceChanges map[string]decimal.Decimal) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.allocateEntryNumber(ctx, tx, &reversing); err != nil {
		return nil, err
	}
	if err := r.insertEntryInTx(ctx, tx, reversing, reversingLines); err != nil {
		return nil, err
	}

	query := `
		UPDATE journal_entries
		SET status = $1, reversing_entry_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $5 AND status = $6;
	`
	tag, err := tx.Exec(ctx, query,
		string(domain.EntryCancelled),
		reversing.EntryID,
		reversing.LastUpdatedAt,
		reversing.LastUpdatedBy,
		original.EntryID,
		string(domain.EntryPosted),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel entry %s: %w", original.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: entry %s is not posted", apperrors.ErrConflict, original.EntryID)
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID := range balanceChanges {
		accountIDs = append(accountIDs, accountID)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return nil, err
	}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, reversing.CreatedBy, reversing.CreatedAt); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	reversing.Lines = reversingLines
	return &reversing, nil
}
