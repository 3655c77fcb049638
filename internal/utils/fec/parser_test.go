package fec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/ledgerbooks/bookkeeping_core/internal/utils/fec"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFEC = `JournalCode;JournalLib;EcritureNum;EcritureDate;CompteNum;CompteLib;PieceRef;EcritureLib;Debit;Credit
VE;Journal des ventes;000001;20260115;411000;Clients;F-1001;Facture client;1200,00;0,00
VE;Journal des ventes;000001;20260115;701000;Ventes;F-1001;Facture client;0,00;1200,00
BQ;Banque;000002;20260120;512000;Banque;REL-01;Encaissement;1200,00;0,00
BQ;Banque;000002;20260120;411000;Clients;REL-01;Encaissement;0,00;1200,00
`

func TestParseSampleFile(t *testing.T) {
	result, err := fec.Parse(strings.NewReader(sampleFEC))
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.Len(t, result.Rows, 4)

	first := result.Rows[0]
	assert.Equal(t, "VE", first.JournalCode)
	assert.Equal(t, "000001", first.EntryNumber)
	assert.Equal(t, "411000", first.AccountNumber)
	assert.Equal(t, "Clients", first.AccountName)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), first.EntryDate)
	assert.True(t, first.Debit.Equal(decimal.RequireFromString("1200.00")))
	assert.True(t, first.Credit.IsZero())

	assert.True(t, result.TotalDebit.Equal(decimal.RequireFromString("2400.00")))
	assert.True(t, result.TotalDebit.Equal(result.TotalCredit))
}

func TestParseTabDelimited(t *testing.T) {
	content := "JournalCode\tEcritureNum\tEcritureDate\tCompteNum\tDebit\tCredit\n" +
		"OD\t42\t2026-02-01\t606000\t10.50\t0\n" +
		"OD\t42\t2026-02-01\t401000\t0\t10.50\n"

	result, err := fec.Parse(strings.NewReader(content))
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "OD", result.Rows[0].JournalCode)
	assert.True(t, result.Rows[0].Debit.Equal(decimal.RequireFromString("10.5")))
}

func TestParseCollectsRowErrors(t *testing.T) {
	content := sampleFEC +
		"VE;;000003;baddate;411000;;;;5,00;0,00\n" + // unparseable date
		"VE;;000003;20260116;411000;;;;5,00;5,00\n" + // both sides set
		"VE;;000003;20260116;411000;;;;0,00;0,00\n" // both sides zero

	result, err := fec.Parse(strings.NewReader(content))
	require.NoError(t, err)
	assert.Len(t, result.Rows, 4)
	assert.Len(t, result.Errors, 3)
	for _, e := range result.Errors {
		assert.NotZero(t, e.Line)
		assert.NotEmpty(t, e.Message)
	}
}

func TestParseMissingRequiredColumn(t *testing.T) {
	content := "JournalCode;EcritureNum;CompteNum;Debit;Credit\nVE;1;411000;1;0\n"
	_, err := fec.Parse(strings.NewReader(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EcritureDate")
}

func TestGroupRows(t *testing.T) {
	result, err := fec.Parse(strings.NewReader(sampleFEC))
	require.NoError(t, err)

	order, groups := fec.GroupRows(result.Rows)
	require.Len(t, order, 2)
	assert.Len(t, groups[order[0]], 2)
	assert.Len(t, groups[order[1]], 2)
	assert.Equal(t, "VE", groups[order[0]][0].JournalCode)
	assert.Equal(t, "BQ", groups[order[1]][0].JournalCode)
}
