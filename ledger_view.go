package finbook

import (
	"sort"
)

// AssetType names the domain collection a ledger record came from.
type AssetType string

const (
	AssetCash       AssetType = "cash"
	AssetAccount    AssetType = "account"
	AssetLoan       AssetType = "loan"
	AssetCreditCard AssetType = "credit_card"
)

// FilterType selects between the full asset-type view and a single category.
type FilterType string

const (
	FilterAll      FilterType = "all"
	FilterCategory FilterType = "category"
)

// FilterCriteria selects and labels a subset of the unified ledger. It never
// mutates state.
type FilterCriteria struct {
	AssetType  AssetType
	FilterType FilterType
	// AssetID is the category key for cash (the category name), cards and
	// loans (the entity id).
	AssetID string
	// AssetLabel is the category key for accounts (the composite label).
	AssetLabel string
}

// RecordDetail carries the asset-specific fields of a ledger record. Exactly
// one variant exists per AssetType, so consumers can switch exhaustively
// instead of probing optional fields.
type RecordDetail interface {
	assetType() AssetType
}

// CashDetail is the detail variant of cash records.
type CashDetail struct {
	Category string
}

// AccountDetail is the detail variant of bank-account records.
type AccountDetail struct {
	BankName     string
	AccountType  string
	MaskedNumber string
}

// CardDetail is the detail variant of credit-card records.
type CardDetail struct {
	Merchant string
	Category string
}

// LoanDetail is the detail variant of loan records.
type LoanDetail struct {
	Lender string
}

func (CashDetail) assetType() AssetType    { return AssetCash }
func (AccountDetail) assetType() AssetType { return AssetAccount }
func (CardDetail) assetType() AssetType    { return AssetCreditCard }
func (LoanDetail) assetType() AssetType    { return AssetLoan }

// TransactionRecord is one row of the unified ledger view: a read-only
// derived projection, never persisted. The envelope fields are common to all
// asset types; Detail holds the per-type rest.
type TransactionRecord struct {
	ID          string
	DateTime    DateTime
	Amount      Money
	Description string
	Notes       string
	Type        string
	AssetType   AssetType
	AssetID     string
	AssetLabel  string
	Detail      RecordDetail
}

// IsOpening reports whether this record is an opening-balance row, explicit
// or synthesized.
func (r TransactionRecord) IsOpening() bool {
	return r.Type == TxTypeOpening || r.Description == OpeningDescription
}

// LedgerPageSize is the number of records materialized per page.
const LedgerPageSize = 20

// LedgerView is the result of BuildLedger: the materialized page of records,
// whether more pages exist, and the balance to display for the view.
type LedgerView struct {
	Records []TransactionRecord
	HasMore bool
	// Balance is the account's authoritative stored balance for an account
	// category view, and the sum of the filtered records for every other
	// view.
	Balance Money
}

// BuildLedger merges one asset type's transaction sources into a single
// chronologically ordered list of unified records, synthesizing a missing
// opening-balance row where an account's stored balance cannot be explained
// by its log, then filters and paginates.
//
// It is a pure function over the snapshot: no I/O, no mutation, and paging
// only changes how much of the already-sorted, already-synthesized list is
// materialized.
func BuildLedger(s *Snapshot, f FilterCriteria, page int) LedgerView {
	records := project(s, f.AssetType)

	if f.FilterType == FilterCategory {
		records = filterByCategory(records, f)
	}

	var view LedgerView
	if f.AssetType == AssetAccount && f.FilterType == FilterCategory {
		if acc := s.AccountByLabel(f.AssetLabel); acc != nil {
			if opening, ok := synthesizeOpening(s, acc, records); ok {
				records = append(records, opening)
			}
			// Trust the stored balance, not the transaction sum.
			view.Balance = acc.Balance
		}
	} else {
		view.Balance = sumRecords(records)
	}

	sortNewestFirst(records)

	if page < 1 {
		page = 1
	}
	shown := page * LedgerPageSize
	if shown > len(records) {
		shown = len(records)
	}
	view.Records = records[:shown]
	view.HasMore = shown < len(records)
	return view
}

// project maps one collection's native records into the unified shape.
func project(s *Snapshot, at AssetType) []TransactionRecord {
	var records []TransactionRecord
	switch at {
	case AssetCash:
		for _, e := range s.CashEntries {
			records = append(records, TransactionRecord{
				ID:          e.ID,
				DateTime:    e.UpdatedAt,
				Amount:      e.Amount,
				Description: e.Category,
				Notes:       e.Notes,
				Type:        "cash",
				AssetType:   AssetCash,
				AssetID:     e.ID,
				AssetLabel:  "Cash",
				Detail:      CashDetail{Category: e.Category},
			})
		}
	case AssetAccount:
		for i := range s.Accounts {
			acc := &s.Accounts[i]
			label := acc.CompositeLabel()
			for _, tx := range acc.Transactions {
				records = append(records, TransactionRecord{
					ID:          tx.ID,
					DateTime:    tx.DateTime,
					Amount:      tx.Amount,
					Description: tx.Description,
					Type:        tx.Type,
					AssetType:   AssetAccount,
					AssetID:     acc.ID,
					AssetLabel:  label,
					Detail: AccountDetail{
						BankName:     acc.BankName,
						AccountType:  acc.AccountType,
						MaskedNumber: acc.MaskedNumber,
					},
				})
			}
		}
	case AssetCreditCard:
		for _, tx := range s.CardTransactions {
			label := tx.CardID
			if card := s.CreditCard(tx.CardID); card != nil {
				label = cardLabel(card)
			}
			records = append(records, TransactionRecord{
				ID:          tx.ID,
				DateTime:    tx.DateTime,
				Amount:      tx.Amount,
				Description: tx.Description,
				Type:        tx.Type,
				AssetType:   AssetCreditCard,
				AssetID:     tx.CardID,
				AssetLabel:  label,
				Detail: CardDetail{
					Merchant: tx.Merchant,
					Category: tx.Category,
				},
			})
		}
	case AssetLoan:
		// Loans carry no transaction log; the collection's native records
		// are the entries themselves, shown as outstanding balances.
		for _, l := range s.Loans {
			records = append(records, TransactionRecord{
				ID:          l.ID,
				DateTime:    l.StartDate,
				Amount:      l.CurrentBalance.Neg(),
				Description: l.Lender,
				Notes:       l.Notes,
				Type:        "loan_balance",
				AssetType:   AssetLoan,
				AssetID:     l.ID,
				AssetLabel:  l.Lender,
				Detail:      LoanDetail{Lender: l.Lender},
			})
		}
	}
	return records
}

// cardLabel is the stable display label of a credit card.
func cardLabel(c *CreditCardEntry) string {
	if c.MaskedNumber == "" {
		return c.Label
	}
	return c.Label + " ••" + c.MaskedNumber
}

// categoryKey returns the value a record's category filter matches against.
func categoryKey(r TransactionRecord) string {
	switch d := r.Detail.(type) {
	case CashDetail:
		return d.Category
	case AccountDetail:
		return r.AssetLabel
	default:
		return r.AssetID
	}
}

// filterByCategory keeps records whose category key exactly equals the
// criteria's key for the asset type.
func filterByCategory(records []TransactionRecord, f FilterCriteria) []TransactionRecord {
	key := f.AssetID
	if f.AssetType == AssetAccount {
		key = f.AssetLabel
	}
	kept := records[:0:0]
	for _, r := range records {
		if categoryKey(r) == key {
			kept = append(kept, r)
		}
	}
	return kept
}

// synthesizeOpening reconstructs the opening-balance row of an account whose
// stored balance is not fully explained by its recorded transactions.
//
// The difference between the authoritative balance and the sum of the
// projected transactions becomes a synthetic row placed one tick before the
// earliest real transaction (or before lastSynced when the log is empty).
// No row is produced when the difference is exactly zero or when the log
// already carries an explicit opening marker. This repairs the display
// invariant balance == Σ transactions + opening without mutating persisted
// state.
func synthesizeOpening(s *Snapshot, acc *Account, projected []TransactionRecord) (TransactionRecord, bool) {
	for _, r := range projected {
		if r.IsOpening() {
			return TransactionRecord{}, false
		}
	}

	opening := acc.Balance
	for _, r := range projected {
		opening = opening.Sub(r.Amount)
	}
	if opening.IsZero() {
		return TransactionRecord{}, false
	}

	// Anchor on the earliest real transaction; fall back to lastSynced (or
	// the document timestamp) when the log is empty.
	var anchor DateTime
	for _, r := range projected {
		if anchor.IsZero() || r.DateTime.Before(anchor) {
			anchor = r.DateTime
		}
	}
	if anchor.IsZero() {
		anchor = acc.LastSynced
	}
	if anchor.IsZero() {
		anchor = s.UpdatedAt
	}

	return TransactionRecord{
		ID:          acc.ID + ":opening",
		DateTime:    anchor.Add(-Tick),
		Amount:      opening,
		Description: OpeningDescription,
		Type:        TxTypeOpening,
		AssetType:   AssetAccount,
		AssetID:     acc.ID,
		AssetLabel:  acc.CompositeLabel(),
		Detail: AccountDetail{
			BankName:     acc.BankName,
			AccountType:  acc.AccountType,
			MaskedNumber: acc.MaskedNumber,
		},
	}, true
}

// sortNewestFirst orders records by datetime descending. The sort is stable:
// records at the same instant keep their projection order.
func sortNewestFirst(records []TransactionRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].DateTime.After(records[j].DateTime)
	})
}

// sumRecords totals the amounts of a record list.
func sumRecords(records []TransactionRecord) Money {
	var total Money
	for _, r := range records {
		total = addAmount(total, r.Amount)
	}
	return total
}
