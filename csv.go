package finbook

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// csvHeader is the fixed export header. Downstream spreadsheet tooling
// depends on these names and this order; do not reorder.
var csvHeader = []string{
	"DateTime",
	"Description",
	"Amount",
	"Cash Category",
	"Expense Category",
	"Notes",
	"Type",
	"Asset Label",
}

// ToCSV serializes a filtered, ordered list of ledger records to CSV text.
// Fields containing a quote, comma or newline are quoted with internal
// quotes doubled (standard CSV quoting, stdlib encoding/csv).
func ToCSV(records []TransactionRecord) string {
	var b strings.Builder
	w := csv.NewWriter(&b)

	w.Write(csvHeader)
	for _, r := range records {
		var cashCategory, expenseCategory string
		switch d := r.Detail.(type) {
		case CashDetail:
			cashCategory = d.Category
		case CardDetail:
			expenseCategory = d.Category
		}
		w.Write([]string{
			r.DateTime.CSV(),
			r.Description,
			r.Amount.PlainString(),
			cashCategory,
			expenseCategory,
			r.Notes,
			r.Type,
			r.AssetLabel,
		})
	}
	w.Flush()
	return b.String()
}

var (
	whitespaceRE = regexp.MustCompile(`\s+`)
	nonWordRE    = regexp.MustCompile(`[^A-Za-z0-9_]`)
)

// sanitizeLabel collapses whitespace to underscores and strips everything
// outside [A-Za-z0-9_], yielding a filesystem-safe label fragment.
func sanitizeLabel(label string) string {
	s := whitespaceRE.ReplaceAllString(strings.TrimSpace(label), "_")
	s = nonWordRE.ReplaceAllString(s, "")
	if s == "" {
		return "all"
	}
	return s
}

// Filename derives the deterministic export filename:
// {assetType}_{sanitizedAssetLabel}_{DDMonYYYY}.csv
func Filename(f FilterCriteria, asOf DateTime) string {
	label := f.AssetLabel
	if label == "" {
		label = f.AssetID
	}
	return fmt.Sprintf("%s_%s_%s.csv", f.AssetType, sanitizeLabel(label), asOf.Format("02Jan2006"))
}

// ExportResult is the structured outcome of a CSV export. Export failures
// are reported, never thrown.
type ExportResult struct {
	Success bool
	Path    string
	Err     string
}

// ExportFile writes the records as CSV into dir under the deterministic
// filename and reports the outcome. The only failure mode is I/O at this
// boundary; the formatting itself is total.
func ExportFile(dir string, records []TransactionRecord, f FilterCriteria, asOf DateTime) ExportResult {
	path := filepath.Join(dir, Filename(f, asOf))
	if err := os.WriteFile(path, []byte(ToCSV(records)), 0644); err != nil {
		return ExportResult{Err: err.Error()}
	}
	return ExportResult{Success: true, Path: path}
}
