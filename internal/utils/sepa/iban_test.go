package sepa_test

import (
	"strings"
	"testing"
	"time"

	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	"github.com/ledgerbooks/bookkeeping_core/internal/utils/sepa"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateIBAN(t *testing.T) {
	tests := []struct {
		name string
		iban string
		want bool
	}{
		{"french iban", "FR7630006000011234567890189", true},
		{"french iban with spaces", "FR76 3000 6000 0112 3456 7890 189", true},
		{"german iban", "DE89370400440532013000", true},
		{"transposed digits", "FR7630006000011234567890198", false},
		{"wrong check digits", "FR7530006000011234567890189", false},
		{"too short", "FR761234567", false},
		{"too long", "FR76" + strings.Repeat("0", 32), false},
		{"digit country prefix", "1276300060000112345678901", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sepa.ValidateIBAN(tt.iban))
		})
	}
}

func TestValidateBIC(t *testing.T) {
	tests := []struct {
		bic  string
		want bool
	}{
		{"BNPAFRPP", true},
		{"BNPAFRPPXXX", true},
		{"AGRIFRPP882", true},
		{"BNPAFRP", false},      // 7 chars
		{"BNPAFRPPXX", false},   // 10 chars
		{"1NPAFRPP", false},     // digit in bank code
		{"BNPA12PP", false},     // digits in country code
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.bic, func(t *testing.T) {
			assert.Equal(t, tt.want, sepa.ValidateBIC(tt.bic))
		})
	}
}

func TestBuildDocument(t *testing.T) {
	cfg := domain.PaymentBatchConfig{
		MessageID:  "BATCH-2026-001",
		DebtorName: "ACME SARL",
		DebtorIBAN: "FR7630006000011234567890189",
		DebtorBIC:  "BNPAFRPP",
	}
	payments := []domain.PaymentInstruction{
		{
			EndToEndID:   "INV-1001",
			CreditorName: "Fournisseur A",
			CreditorIBAN: "DE89370400440532013000",
			CreditorBIC:  "DEUTDEFF",
			Amount:       decimal.RequireFromString("150.50"),
			Remittance:   "Facture 1001",
		},
		{
			EndToEndID:   "INV-1002",
			CreditorName: "Fournisseur B",
			CreditorIBAN: "FR7630006000011234567890189",
			CreditorBIC:  "BNPAFRPP",
			Amount:       decimal.RequireFromString("49.50"),
			Remittance:   strings.Repeat("x", 200),
		},
	}

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	doc := sepa.BuildDocument(cfg, payments, now)

	require.Equal(t, 2, doc.CstmrCdtTrfInitn.GrpHdr.NbOfTxs)
	assert.Equal(t, "200.00", doc.CstmrCdtTrfInitn.GrpHdr.CtrlSum)
	assert.Equal(t, "BATCH-2026-001", doc.CstmrCdtTrfInitn.GrpHdr.MsgID)

	transfers := doc.CstmrCdtTrfInitn.PmtInf.CdtTrfTx
	require.Len(t, transfers, 2)
	assert.Equal(t, "150.50", transfers[0].Amt.InstdAmt.Value)
	assert.Equal(t, "EUR", transfers[0].Amt.InstdAmt.Ccy)
	require.NotNil(t, transfers[1].RmtInf)
	assert.Len(t, transfers[1].RmtInf.Ustrd, sepa.MaxRemittanceLen)

	out, err := sepa.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "pain.001.001.03")
	assert.Contains(t, string(out), "<CtrlSum>200.00</CtrlSum>")
	assert.Contains(t, string(out), "<EndToEndId>INV-1001</EndToEndId>")
}
