package sepa

import (
	"encoding/xml"
	"time"

	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Limits imposed by the pain.001.001.03 schema.
const (
	MaxEndToEndIDLen = 35
	MaxRemittanceLen = 140
)

// Document is a pain.001.001.03 customer credit transfer initiation.
type Document struct {
	XMLName xml.Name       `xml:"Document"`
	Xmlns   string         `xml:"xmlns,attr"`
	CstmrCdtTrfInitn CdtTrfInitn `xml:"CstmrCdtTrfInitn"`
}

type CdtTrfInitn struct {
	GrpHdr GroupHeader `xml:"GrpHdr"`
	PmtInf PaymentInfo `xml:"PmtInf"`
}

// GroupHeader carries the batch identity and the control sum the receiving
// bank rechecks against the transaction blocks.
type GroupHeader struct {
	MsgID    string `xml:"MsgId"`
	CreDtTm  string `xml:"CreDtTm"`
	NbOfTxs  int    `xml:"NbOfTxs"`
	CtrlSum  string `xml:"CtrlSum"`
	InitgPty Party  `xml:"InitgPty"`
}

type Party struct {
	Nm string `xml:"Nm"`
}

type PaymentInfo struct {
	PmtInfID  string        `xml:"PmtInfId"`
	PmtMtd    string        `xml:"PmtMtd"`
	NbOfTxs   int           `xml:"NbOfTxs"`
	CtrlSum   string        `xml:"CtrlSum"`
	ReqdExctnDt string      `xml:"ReqdExctnDt"`
	Dbtr      Party         `xml:"Dbtr"`
	DbtrAcct  Account       `xml:"DbtrAcct"`
	DbtrAgt   Agent         `xml:"DbtrAgt"`
	CdtTrfTx  []CreditTransfer `xml:"CdtTrfTxInf"`
}

type Account struct {
	ID IBANID `xml:"Id"`
}

type IBANID struct {
	IBAN string `xml:"IBAN"`
}

type Agent struct {
	FinInstnID BICID `xml:"FinInstnId"`
}

type BICID struct {
	BIC string `xml:"BIC"`
}

type CreditTransfer struct {
	PmtID   PaymentID `xml:"PmtId"`
	Amt     Amount    `xml:"Amt"`
	CdtrAgt Agent     `xml:"CdtrAgt"`
	Cdtr    Party     `xml:"Cdtr"`
	CdtrAcct Account  `xml:"CdtrAcct"`
	RmtInf  *Remittance `xml:"RmtInf,omitempty"`
}

type PaymentID struct {
	EndToEndID string `xml:"EndToEndId"`
}

type Amount struct {
	InstdAmt InstructedAmount `xml:"InstdAmt"`
}

type InstructedAmount struct {
	Ccy   string `xml:"Ccy,attr"`
	Value string `xml:",chardata"`
}

type Remittance struct {
	Ustrd string `xml:"Ustrd"`
}

// BuildDocument assembles the XML document for an already-validated batch.
// End-to-end ids and remittance texts are truncated to their schema caps.
func BuildDocument(cfg domain.PaymentBatchConfig, payments []domain.PaymentInstruction, now time.Time) *Document {
	controlSum := decimal.Zero
	transfers := make([]CreditTransfer, 0, len(payments))
	for _, p := range payments {
		controlSum = controlSum.Add(p.Amount)
		currency := p.CurrencyCode
		if currency == "" {
			currency = "EUR"
		}
		transfer := CreditTransfer{
			PmtID:    PaymentID{EndToEndID: truncate(p.EndToEndID, MaxEndToEndIDLen)},
			Amt:      Amount{InstdAmt: InstructedAmount{Ccy: currency, Value: p.Amount.StringFixed(2)}},
			CdtrAgt:  Agent{FinInstnID: BICID{BIC: p.CreditorBIC}},
			Cdtr:     Party{Nm: p.CreditorName},
			CdtrAcct: Account{ID: IBANID{IBAN: p.CreditorIBAN}},
		}
		if p.Remittance != "" {
			transfer.RmtInf = &Remittance{Ustrd: truncate(p.Remittance, MaxRemittanceLen)}
		}
		transfers = append(transfers, transfer)
	}

	executionDate := cfg.ExecutionDate
	if executionDate.IsZero() {
		executionDate = now
	}

	return &Document{
		Xmlns: "urn:iso:std:iso:20022:tech:xsd:pain.001.001.03",
		CstmrCdtTrfInitn: CdtTrfInitn{
			GrpHdr: GroupHeader{
				MsgID:    cfg.MessageID,
				CreDtTm:  now.UTC().Format(time.RFC3339),
				NbOfTxs:  len(payments),
				CtrlSum:  controlSum.StringFixed(2),
				InitgPty: Party{Nm: cfg.DebtorName},
			},
			PmtInf: PaymentInfo{
				PmtInfID:    cfg.MessageID + "-01",
				PmtMtd:      "TRF",
				NbOfTxs:     len(payments),
				CtrlSum:     controlSum.StringFixed(2),
				ReqdExctnDt: executionDate.Format("2006-01-02"),
				Dbtr:        Party{Nm: cfg.DebtorName},
				DbtrAcct:    Account{ID: IBANID{IBAN: cfg.DebtorIBAN}},
				DbtrAgt:     Agent{FinInstnID: BICID{BIC: cfg.DebtorBIC}},
				CdtTrfTx:    transfers,
			},
		},
	}
}

// Marshal renders the document with the XML prolog.
func Marshal(doc *Document) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// truncate caps s at max runes. Byte slicing would split multi-byte
// characters, which are routine in French remittance texts.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
