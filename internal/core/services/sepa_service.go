package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ledgerbooks/bookkeeping_core/internal/apperrors"
	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	portssvc "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/services"
	"github.com/ledgerbooks/bookkeeping_core/internal/dto"
	"github.com/ledgerbooks/bookkeeping_core/internal/middleware"
	"github.com/ledgerbooks/bookkeeping_core/internal/utils/sepa"
)

// PaymentBatchError reports every invalid row of a rejected batch at once.
// It unwraps to apperrors.ErrValidation so handlers map it to 400.
type PaymentBatchError struct {
	Rows []domain.PaymentRowError
}

func (e *PaymentBatchError) Error() string {
	return fmt.Sprintf("payment batch rejected: %d invalid rows", len(e.Rows))
}

func (e *PaymentBatchError) Unwrap() error {
	return apperrors.ErrValidation
}

// sepaService renders SEPA credit transfer initiation files.
type sepaService struct{}

// NewSEPAService creates a new SEPA export service.
func NewSEPAService() portssvc.SEPAExportSvc {
	return &sepaService{}
}

// Ensure sepaService implements the portssvc.SEPAExportSvc interface
var _ portssvc.SEPAExportSvc = (*sepaService)(nil)

// BuildPaymentFile validates the whole batch and renders pain.001.001.03
// XML. Validation walks every row so the caller sees all problems in one
// round trip.
func (s *sepaService) BuildPaymentFile(ctx context.Context, companyID string, req dto.SEPAExportRequest) ([]byte, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var rowErrors []domain.PaymentRowError
	addErr := func(index int, field, message string) {
		rowErrors = append(rowErrors, domain.PaymentRowError{Index: index, Field: field, Message: message})
	}

	debtorIBAN := normalizeIBAN(req.DebtorIBAN)
	if !sepa.ValidateIBAN(debtorIBAN) {
		addErr(-1, "debtorIBAN", "invalid IBAN")
	}
	debtorBIC := strings.ToUpper(strings.TrimSpace(req.DebtorBIC))
	if !sepa.ValidateBIC(debtorBIC) {
		addErr(-1, "debtorBIC", "invalid BIC")
	}

	payments := make([]domain.PaymentInstruction, 0, len(req.Payments))
	for i, p := range req.Payments {
		iban := normalizeIBAN(p.CreditorIBAN)
		if !sepa.ValidateIBAN(iban) {
			addErr(i, "creditorIBAN", "invalid IBAN")
		}
		bic := strings.ToUpper(strings.TrimSpace(p.CreditorBIC))
		if bic != "" && !sepa.ValidateBIC(bic) {
			addErr(i, "creditorBIC", "invalid BIC")
		}
		if !p.Amount.IsPositive() {
			addErr(i, "amount", "amount must be positive")
		}
		if strings.TrimSpace(p.EndToEndID) == "" {
			addErr(i, "endToEndID", "reference is required")
		}
		payments = append(payments, domain.PaymentInstruction{
			EndToEndID:   strings.TrimSpace(p.EndToEndID),
			CreditorName: p.CreditorName,
			CreditorIBAN: iban,
			CreditorBIC:  bic,
			Amount:       p.Amount,
			CurrencyCode: p.CurrencyCode,
			Remittance:   p.RemittanceInfo,
		})
	}

	if len(rowErrors) > 0 {
		logger.Warn("Payment batch rejected", slog.Int("invalid_rows", len(rowErrors)))
		return nil, &PaymentBatchError{Rows: rowErrors}
	}

	cfg := domain.PaymentBatchConfig{
		MessageID:     req.MessageID,
		DebtorName:    req.DebtorName,
		DebtorIBAN:    debtorIBAN,
		DebtorBIC:     debtorBIC,
		ExecutionDate: req.ExecutionDate,
	}
	doc := sepa.BuildDocument(cfg, payments, time.Now())
	out, err := sepa.Marshal(doc)
	if err != nil {
		logger.Error("Failed to marshal payment document", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payment file built", slog.String("message_id", req.MessageID), slog.Int("payments", len(payments)))
	return out, nil
}

func normalizeIBAN(iban string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(iban), " ", ""))
}
