package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentInstruction is one credit transfer inside a SEPA batch. It is a
// pure value: payments are validated and rendered, never persisted here.
type PaymentInstruction struct {
	EndToEndID   string          `json:"endToEndID"` // capped at 35 chars
	CreditorName string          `json:"creditorName"`
	CreditorIBAN string          `json:"creditorIBAN"`
	CreditorBIC  string          `json:"creditorBIC"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	Remittance   string          `json:"remittance"` // capped at 140 chars
}

// PaymentBatchConfig identifies the debtor side of a SEPA batch.
type PaymentBatchConfig struct {
	MessageID     string    `json:"messageID"`
	DebtorName    string    `json:"debtorName"`
	DebtorIBAN    string    `json:"debtorIBAN"`
	DebtorBIC     string    `json:"debtorBIC"`
	ExecutionDate time.Time `json:"executionDate"`
}

// PaymentRowError locates one invalid payment in a rejected batch.
type PaymentRowError struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Message string `json:"message"`
}
