// Package fec parses flat-file ledger exports (FEC and close relatives):
// one delimited row per ledger movement, rows sharing (journal code, entry
// number) forming one logical entry.
package fec

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Row is one parsed ledger movement.
type Row struct {
	LineNumber    int
	JournalCode   string
	JournalName   string
	EntryNumber   string
	EntryDate     time.Time
	AccountNumber string
	AccountName   string
	PieceRef      string
	Description   string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	Currency      string
}

// GroupKey identifies the logical entry a row belongs to.
func (r Row) GroupKey() string {
	return r.JournalCode + "\x00" + r.EntryNumber
}

// ParseError locates a rejected source line.
type ParseError struct {
	Line    int
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Result is the outcome of parsing one file. Bad lines land in Errors and
// do not abort the parse.
type Result struct {
	Rows        []Row
	Errors      []ParseError
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// Column aliases seen across FEC and common tool exports. Headers are
// normalised to lowercase alphanumerics before matching.
var columnAliases = map[string][]string{
	"journalCode":   {"journalcode", "codejournal", "journal"},
	"journalName":   {"journallib", "journalname", "libellejournal"},
	"entryNumber":   {"ecriturenum", "entrynumber", "numeroecriture", "numecriture"},
	"entryDate":     {"ecrituredate", "dateecriture", "entrydate", "date"},
	"accountNumber": {"comptenum", "accountnumber", "numerocompte", "compte"},
	"accountName":   {"comptelib", "accountname", "libellecompte"},
	"pieceRef":      {"pieceref", "reference", "docref"},
	"description":   {"ecriturelib", "libelle", "description", "label"},
	"debit":         {"debit", "montantdebit"},
	"credit":        {"credit", "montantcredit"},
	"currency":      {"idevise", "devise", "currency"},
}

// Parse reads a delimited ledger file. The delimiter (tab, semicolon or
// pipe) is detected from the header line; the header decides column order.
func Parse(r io.Reader) (*Result, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading header: %w", err)
		}
		return nil, fmt.Errorf("empty file")
	}
	header := strings.TrimPrefix(scanner.Text(), "\ufeff")
	sep := detectSeparator(header)
	headers := splitFields(header, sep)

	cols, err := mapColumns(headers)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	lineNo := 1
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}
		fields := splitFields(raw, sep)
		row, rowErr := parseRow(fields, cols, lineNo)
		if rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			continue
		}
		result.Rows = append(result.Rows, row)
		result.TotalDebit = result.TotalDebit.Add(row.Debit)
		result.TotalCredit = result.TotalCredit.Add(row.Credit)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger file: %w", err)
	}
	return result, nil
}

// GroupRows buckets rows by (journal code, entry number), preserving first
// appearance order of the groups.
func GroupRows(rows []Row) ([]string, map[string][]Row) {
	order := make([]string, 0)
	groups := make(map[string][]Row)
	for _, row := range rows {
		key := row.GroupKey()
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], row)
	}
	return order, groups
}

type columnMap struct {
	journalCode, journalName, entryNumber, entryDate int
	accountNumber, accountName, pieceRef, description int
	debit, credit, currency int
}

func mapColumns(headers []string) (*columnMap, error) {
	find := func(field string) int {
		aliases := columnAliases[field]
		for i, h := range headers {
			normalized := normalizeHeader(h)
			for _, alias := range aliases {
				if normalized == alias {
					return i
				}
			}
		}
		return -1
	}

	cols := &columnMap{
		journalCode:   find("journalCode"),
		journalName:   find("journalName"),
		entryNumber:   find("entryNumber"),
		entryDate:     find("entryDate"),
		accountNumber: find("accountNumber"),
		accountName:   find("accountName"),
		pieceRef:      find("pieceRef"),
		description:   find("description"),
		debit:         find("debit"),
		credit:        find("credit"),
		currency:      find("currency"),
	}

	for _, required := range []struct {
		name string
		idx  int
	}{
		{"JournalCode", cols.journalCode},
		{"EcritureNum", cols.entryNumber},
		{"EcritureDate", cols.entryDate},
		{"CompteNum", cols.accountNumber},
		{"Debit", cols.debit},
		{"Credit", cols.credit},
	} {
		if required.idx < 0 {
			return nil, fmt.Errorf("missing required column %s", required.name)
		}
	}
	return cols, nil
}

func parseRow(fields []string, cols *columnMap, lineNo int) (Row, *ParseError) {
	get := func(idx int) string {
		if idx < 0 || idx >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[idx])
	}

	row := Row{
		LineNumber:    lineNo,
		JournalCode:   strings.ToUpper(get(cols.journalCode)),
		JournalName:   get(cols.journalName),
		EntryNumber:   get(cols.entryNumber),
		AccountNumber: get(cols.accountNumber),
		AccountName:   get(cols.accountName),
		PieceRef:      get(cols.pieceRef),
		Description:   get(cols.description),
		Currency:      strings.ToUpper(get(cols.currency)),
	}

	if row.JournalCode == "" || row.EntryNumber == "" || row.AccountNumber == "" {
		return row, &ParseError{Line: lineNo, Message: "missing journal code, entry number or account number"}
	}

	date, err := parseDate(get(cols.entryDate))
	if err != nil {
		return row, &ParseError{Line: lineNo, Message: err.Error()}
	}
	row.EntryDate = date

	row.Debit, err = parseAmount(get(cols.debit))
	if err != nil {
		return row, &ParseError{Line: lineNo, Message: fmt.Sprintf("bad debit amount: %v", err)}
	}
	row.Credit, err = parseAmount(get(cols.credit))
	if err != nil {
		return row, &ParseError{Line: lineNo, Message: fmt.Sprintf("bad credit amount: %v", err)}
	}
	if row.Debit.IsNegative() || row.Credit.IsNegative() {
		return row, &ParseError{Line: lineNo, Message: "negative amount"}
	}
	if row.Debit.IsZero() && row.Credit.IsZero() {
		return row, &ParseError{Line: lineNo, Message: "row moves neither debit nor credit"}
	}
	if row.Debit.IsPositive() && row.Credit.IsPositive() {
		return row, &ParseError{Line: lineNo, Message: "row has both debit and credit set"}
	}
	return row, nil
}

func detectSeparator(header string) string {
	for _, sep := range []string{"\t", ";", "|"} {
		if strings.Contains(header, sep) {
			return sep
		}
	}
	return ";"
}

func splitFields(line, sep string) []string {
	parts := strings.Split(strings.TrimRight(line, "\r"), sep)
	for i := range parts {
		parts[i] = strings.Trim(parts[i], `"' `)
	}
	return parts
}

func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseAmount accepts French decimal commas ("1 234,56") as well as dot
// decimals. Empty means zero.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") {
		// Comma is the decimal separator; dots, if any, are thousands.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}

var dateLayouts = []string{"20060102", "2006-01-02", "02/01/2006", "02-01-2006", "02.01.2006"}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("missing entry date")
	}
	// Ignore any time component.
	if idx := strings.IndexAny(s, " T"); idx > 0 {
		s = s[:idx]
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
