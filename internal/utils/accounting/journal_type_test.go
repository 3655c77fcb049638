package accounting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	"github.com/ledgerbooks/bookkeeping_core/internal/utils/accounting"
)

func TestInferJournalType(t *testing.T) {
	tests := []struct {
		code string
		want domain.JournalType
	}{
		{"VE", domain.JournalSale},
		{"VT", domain.JournalSale},
		{"AC", domain.JournalPurchase},
		{"HA", domain.JournalPurchase},
		{"ACH", domain.JournalPurchase},
		{"FOU", domain.JournalPurchase},
		{"BQ", domain.JournalBank},
		{"BQ1", domain.JournalBank},
		{"CA", domain.JournalCash},
		{"AN", domain.JournalOpening},
		{"OD", domain.JournalMiscellaneous},
		{"XYZ", domain.JournalMiscellaneous},
		{"", domain.JournalMiscellaneous},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, accounting.InferJournalType(tt.code))
		})
	}
}
