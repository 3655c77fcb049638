package services

import (
	"context"
	"io"

	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
)

// ImportSvc ingests accounting flat files (FEC layout) into the ledger.
type ImportSvc interface {
	// ImportFEC parses the file, creates missing journals and accounts,
	// and creates posted entries grouped by journal code and entry number.
	// Previously imported entries are skipped; group-level failures are
	// collected in the report rather than aborting the import.
	ImportFEC(ctx context.Context, companyID string, file io.Reader, importerUserID string) (*domain.ImportReport, error)
}
