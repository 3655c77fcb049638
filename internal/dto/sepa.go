package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentInstructionRequest is one credit transfer in a payment export.
type PaymentInstructionRequest struct {
	EndToEndID     string          `json:"endToEndID" binding:"required,max=35"`
	CreditorName   string          `json:"creditorName" binding:"required,max=70"`
	CreditorIBAN   string          `json:"creditorIBAN" binding:"required"`
	CreditorBIC    string          `json:"creditorBIC" binding:"omitempty"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode   string          `json:"currencyCode" binding:"omitempty,len=3"`
	RemittanceInfo string          `json:"remittanceInfo" binding:"omitempty"`
}

// SEPAExportRequest defines the expected JSON body for a pain.001 export.
type SEPAExportRequest struct {
	MessageID     string                      `json:"messageID" binding:"required,max=35"`
	DebtorName    string                      `json:"debtorName" binding:"required,max=70"`
	DebtorIBAN    string                      `json:"debtorIBAN" binding:"required"`
	DebtorBIC     string                      `json:"debtorBIC" binding:"required"`
	ExecutionDate time.Time                   `json:"executionDate" binding:"required"`
	Payments      []PaymentInstructionRequest `json:"payments" binding:"required,min=1,dive"`
}
