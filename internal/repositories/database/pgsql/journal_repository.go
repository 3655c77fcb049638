package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerbooks/bookkeeping_core/internal/apperrors"
	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/repositories"
	"github.com/ledgerbooks/bookkeeping_core/internal/models"
)

const journalColumns = `journal_id, company_id, code, name, journal_type, description, last_sequence, is_active, imported, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepository
var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

func toModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:    d.JournalID,
		CompanyID:    d.CompanyID,
		Code:         d.Code,
		Name:         d.Name,
		JournalType:  string(d.JournalType),
		Description:  d.Description,
		LastSequence: d.LastSequence,
		IsActive:     d.IsActive,
		Imported:     d.Imported,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:    m.JournalID,
		CompanyID:    m.CompanyID,
		Code:         m.Code,
		Name:         m.Name,
		JournalType:  domain.JournalType(m.JournalType),
		Description:  m.Description,
		LastSequence: m.LastSequence,
		IsActive:     m.IsActive,
		Imported:     m.Imported,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanJournal(row pgx.Row) (models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.CompanyID,
		&m.Code,
		&m.Name,
		&m.JournalType,
		&m.Description,
		&m.LastSequence,
		&m.IsActive,
		&m.Imported,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveJournal inserts a new journal.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	m := toModelJournal(journal)

	query := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.JournalID,
		m.CompanyID,
		m.Code,
		m.Name,
		m.JournalType,
		m.Description,
		m.LastSequence,
		m.IsActive,
		m.Imported,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: journal code %s already exists in company %s", apperrors.ErrDuplicate, m.Code, m.CompanyID)
		}
		return fmt.Errorf("failed to save journal %s: %w", m.JournalID, err)
	}
	return nil
}

// FindJournalByID retrieves a journal by its ID, scoped to a company.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, companyID, journalID string) (*domain.Journal, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE company_id = $1 AND journal_id = $2;
	`
	m, err := scanJournal(r.Pool.QueryRow(ctx, query, companyID, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	d := toDomainJournal(m)
	return &d, nil
}

// FindJournalByCode retrieves a journal by its short code.
func (r *PgxJournalRepository) FindJournalByCode(ctx context.Context, companyID, code string) (*domain.Journal, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE company_id = $1 AND code = $2;
	`
	m, err := scanJournal(r.Pool.QueryRow(ctx, query, companyID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal code %s: %w", code, err)
	}
	d := toDomainJournal(m)
	return &d, nil
}

// ListJournalCodes returns code -> journalID for a company.
func (r *PgxJournalRepository) ListJournalCodes(ctx context.Context, companyID string) (map[string]string, error) {
	query := `SELECT code, journal_id FROM journals WHERE company_id = $1;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal codes: %w", err)
	}
	defer rows.Close()

	codes := make(map[string]string)
	for rows.Next() {
		var code, id string
		if err := rows.Scan(&code, &id); err != nil {
			return nil, fmt.Errorf("failed to scan journal code row: %w", err)
		}
		codes[code] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal code rows: %w", err)
	}
	return codes, nil
}

// ListJournals retrieves the journals of a company ordered by code.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, companyID string, includeInactive bool) ([]domain.Journal, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE company_id = $1 AND ($2 OR is_active)
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer rows.Close()

	var journals []domain.Journal
	for rows.Next() {
		m, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		journals = append(journals, toDomainJournal(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal rows: %w", err)
	}
	return journals, nil
}

// UpdateJournal updates the mutable journal fields. The code and sequence
// are managed elsewhere and never touched here.
func (r *PgxJournalRepository) UpdateJournal(ctx context.Context, journal domain.Journal) error {
	query := `
		UPDATE journals
		SET name = $1, journal_type = $2, description = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE company_id = $7 AND journal_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		journal.Name,
		string(journal.JournalType),
		journal.Description,
		journal.IsActive,
		journal.LastUpdatedAt,
		journal.LastUpdatedBy,
		journal.CompanyID,
		journal.JournalID,
	)
	if err != nil {
		return fmt.Errorf("failed to update journal %s: %w", journal.JournalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountEntries reports how many entries reference the journal.
func (r *PgxJournalRepository) CountEntries(ctx context.Context, journalID string) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM journal_entries WHERE journal_id = $1;`, journalID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries for journal %s: %w", journalID, err)
	}
	return count, nil
}

// DeleteJournal removes a journal row. Callers must ensure no entries
// reference it; the FK constraint backs that up.
func (r *PgxJournalRepository) DeleteJournal(ctx context.Context, journalID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM journals WHERE journal_id = $1;`, journalID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: journal %s still has entries", apperrors.ErrConflict, journalID)
		}
		return fmt.Errorf("failed to delete journal %s: %w", journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateJournal marks a journal as inactive.
func (r *PgxJournalRepository) DeactivateJournal(ctx context.Context, journalID, userID string, now time.Time) error {
	query := `
		UPDATE journals
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE journal_id = $3;
	`
	tag, err := r.Pool.Exec(ctx, query, now, userID, journalID)
	if err != nil {
		return fmt.Errorf("failed to deactivate journal %s: %w", journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
