package pgsql

import (
	portsrepo "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	entryRepo := newPgxEntryRepository(dbPool, accountRepo)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		JournalRepo:   journalRepo,
		EntryRepo:     entryRepo,
		ReportingRepo: reportingRepo,
	}
}
