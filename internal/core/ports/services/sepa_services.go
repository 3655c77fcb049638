package services

import (
	"context"

	"github.com/ledgerbooks/bookkeeping_core/internal/dto"
)

// SEPAExportSvc builds SEPA credit transfer initiation files.
type SEPAExportSvc interface {
	// BuildPaymentFile validates the batch (IBAN check digits, BIC shape,
	// field lengths, positive amounts) and renders a pain.001.001.03
	// document. Validation failures report every bad row at once.
	BuildPaymentFile(ctx context.Context, companyID string, req dto.SEPAExportRequest) ([]byte, error)
}
