package finbook

import (
	"fmt"
	"testing"
	"time"
)

// setupAccount builds a snapshot holding a single account with the given
// balance and transactions.
func setupAccount(t *testing.T, balance Money, txs ...AccountTransaction) (*Snapshot, *Account) {
	t.Helper()
	s := DefaultSnapshot()
	s.Accounts = []Account{{
		ID:           "a1",
		Nickname:     "Everyday",
		BankName:     "First National",
		AccountType:  "checking",
		MaskedNumber: "4821",
		Balance:      balance,
		Status:       AccountActive,
		LastSynced:   at(2025, time.June, 1, 9, 0),
		Transactions: txs,
	}}
	return s, &s.Accounts[0]
}

func accountCategoryFilter(acc *Account) FilterCriteria {
	return FilterCriteria{
		AssetType:  AssetAccount,
		FilterType: FilterCategory,
		AssetID:    acc.ID,
		AssetLabel: acc.CompositeLabel(),
	}
}

func TestBuildLedger_OpeningOnly(t *testing.T) {
	// An account with no transactions and a non-zero balance shows exactly
	// one synthetic opening row equal to that balance.
	s, acc := setupAccount(t, USD(5000))

	view := BuildLedger(s, accountCategoryFilter(acc), 1)
	if len(view.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(view.Records))
	}
	r := view.Records[0]
	if r.Description != OpeningDescription {
		t.Errorf("description = %q, want %q", r.Description, OpeningDescription)
	}
	if !r.Amount.Equal(USD(5000)) {
		t.Errorf("amount = %s, want 5000", r.Amount.PlainString())
	}
	if !r.DateTime.Equal(acc.LastSynced.Add(-Tick)) {
		t.Errorf("datetime = %s, want one tick before lastSynced %s", r.DateTime, acc.LastSynced)
	}
	if !view.Balance.Equal(USD(5000)) {
		t.Errorf("view balance = %s, want 5000", view.Balance.PlainString())
	}
}

func TestBuildLedger_OpeningReconcilesDebit(t *testing.T) {
	// balance 5000 with a single -500 debit: the view must add a 5500
	// opening row so the records sum back to the stored balance.
	debit := AccountTransaction{
		ID:          "t1",
		DateTime:    at(2025, time.May, 10, 14, 30),
		Amount:      USD(-500),
		Description: "Groceries",
		Type:        "debit",
	}
	s, acc := setupAccount(t, USD(5000), debit)

	view := BuildLedger(s, accountCategoryFilter(acc), 1)
	if len(view.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(view.Records))
	}
	// Newest first: the debit, then the opening row one tick earlier.
	if view.Records[0].ID != "t1" {
		t.Errorf("first record = %q, want the debit", view.Records[0].ID)
	}
	opening := view.Records[1]
	if !opening.IsOpening() {
		t.Fatalf("second record is %q, want the opening row", opening.Description)
	}
	if !opening.Amount.Equal(USD(5500)) {
		t.Errorf("opening amount = %s, want 5500", opening.Amount.PlainString())
	}
	if !opening.DateTime.Equal(debit.DateTime.Add(-Tick)) {
		t.Errorf("opening datetime = %s, want one tick before the earliest transaction", opening.DateTime)
	}

	sum := sumRecords(view.Records)
	if !sum.Equal(acc.Balance) {
		t.Errorf("records sum to %s, want the stored balance %s", sum.PlainString(), acc.Balance.PlainString())
	}
}

func TestBuildLedger_NoOpeningWhenExplained(t *testing.T) {
	// Transactions already sum to the balance: no synthetic row.
	s, acc := setupAccount(t, USD(700),
		AccountTransaction{ID: "t1", DateTime: at(2025, time.May, 1, 8, 0), Amount: USD(1000), Description: "Salary"},
		AccountTransaction{ID: "t2", DateTime: at(2025, time.May, 3, 8, 0), Amount: USD(-300), Description: "Rent"},
	)

	view := BuildLedger(s, accountCategoryFilter(acc), 1)
	if len(view.Records) != 2 {
		t.Fatalf("got %d records, want 2 (no synthetic row)", len(view.Records))
	}
	for _, r := range view.Records {
		if r.IsOpening() {
			t.Errorf("unexpected opening row %q", r.ID)
		}
	}
}

func TestBuildLedger_NoDuplicateOpeningMarker(t *testing.T) {
	// An explicit opening marker suppresses synthesis even when the sums do
	// not reconcile.
	s, acc := setupAccount(t, USD(5000),
		AccountTransaction{ID: "t1", DateTime: at(2025, time.May, 1, 8, 0), Amount: USD(4000), Description: OpeningDescription, Type: TxTypeOpening},
	)

	view := BuildLedger(s, accountCategoryFilter(acc), 1)
	if len(view.Records) != 1 {
		t.Fatalf("got %d records, want only the explicit marker", len(view.Records))
	}
	if view.Records[0].ID != "t1" {
		t.Errorf("record = %q, want the explicit marker row", view.Records[0].ID)
	}
}

func TestBuildLedger_AllViewDoesNotSynthesize(t *testing.T) {
	s, _ := setupAccount(t, USD(5000))
	view := BuildLedger(s, FilterCriteria{AssetType: AssetAccount, FilterType: FilterAll}, 1)
	if len(view.Records) != 0 {
		t.Fatalf("all view synthesized %d records, want 0", len(view.Records))
	}
	if !view.Balance.IsZero() {
		t.Errorf("all view balance = %s, want sum of records (zero)", view.Balance.PlainString())
	}
}

func TestBuildLedger_CashCategoryFilter(t *testing.T) {
	s := DefaultSnapshot()
	s.CashEntries = []CashEntry{
		{ID: "c1", Category: "Wallet", Amount: USD(50), UpdatedAt: at(2025, time.April, 1, 12, 0)},
		{ID: "c2", Category: "Drawer", Amount: USD(90), UpdatedAt: at(2025, time.April, 2, 12, 0)},
		{ID: "c3", Category: "Wallet", Amount: USD(10), UpdatedAt: at(2025, time.April, 3, 12, 0)},
	}

	view := BuildLedger(s, FilterCriteria{
		AssetType:  AssetCash,
		FilterType: FilterCategory,
		AssetID:    "Wallet",
		AssetLabel: "Wallet",
	}, 1)

	if len(view.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(view.Records))
	}
	if view.Records[0].ID != "c3" || view.Records[1].ID != "c1" {
		t.Errorf("records are not newest first: %q, %q", view.Records[0].ID, view.Records[1].ID)
	}
	if !view.Balance.Equal(USD(60)) {
		t.Errorf("balance = %s, want 60 (sum of filtered records)", view.Balance.PlainString())
	}
}

func TestBuildLedger_FilterTotality(t *testing.T) {
	// The all view is the union, without duplicates, of every
	// category-filtered view for that asset type.
	s := DefaultSnapshot()
	s.CashEntries = []CashEntry{
		{ID: "c1", Category: "Wallet", Amount: USD(50), UpdatedAt: at(2025, time.April, 1, 12, 0)},
		{ID: "c2", Category: "Drawer", Amount: USD(90), UpdatedAt: at(2025, time.April, 2, 12, 0)},
		{ID: "c3", Category: "Wallet", Amount: USD(10), UpdatedAt: at(2025, time.April, 3, 12, 0)},
	}

	all := BuildLedger(s, FilterCriteria{AssetType: AssetCash, FilterType: FilterAll}, 1)

	union := make(map[string]int)
	for _, category := range []string{"Wallet", "Drawer"} {
		view := BuildLedger(s, FilterCriteria{AssetType: AssetCash, FilterType: FilterCategory, AssetID: category}, 1)
		for _, r := range view.Records {
			union[r.ID]++
		}
	}

	if len(all.Records) != len(union) {
		t.Fatalf("all view has %d records, union of categories has %d", len(all.Records), len(union))
	}
	for _, r := range all.Records {
		if union[r.ID] != 1 {
			t.Errorf("record %q appears %d times across category views, want exactly 1", r.ID, union[r.ID])
		}
	}
}

func TestBuildLedger_CardTransactions(t *testing.T) {
	s := DefaultSnapshot()
	s.CreditCards = []CreditCardEntry{{
		ID: "cc1", Label: "Travel Card", MaskedNumber: "7001",
		CreditLimit: USD(10000), CurrentBalance: USD(600),
	}}
	s.CardTransactions = []CardTransaction{
		{ID: "k1", CardID: "cc1", DateTime: at(2025, time.May, 2, 19, 0), Amount: USD(-600), Description: "Flights", Merchant: "AirCo", Category: "Travel", Type: "charge"},
		{ID: "k2", CardID: "other", DateTime: at(2025, time.May, 3, 19, 0), Amount: USD(-20), Description: "Other card", Type: "charge"},
	}

	view := BuildLedger(s, FilterCriteria{AssetType: AssetCreditCard, FilterType: FilterCategory, AssetID: "cc1"}, 1)
	if len(view.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(view.Records))
	}
	r := view.Records[0]
	if r.AssetLabel != "Travel Card ••7001" {
		t.Errorf("label = %q", r.AssetLabel)
	}
	detail, ok := r.Detail.(CardDetail)
	if !ok {
		t.Fatalf("detail is %T, want CardDetail", r.Detail)
	}
	if detail.Merchant != "AirCo" || detail.Category != "Travel" {
		t.Errorf("detail = %+v", detail)
	}
	if !view.Balance.Equal(USD(-600)) {
		t.Errorf("balance = %s, want -600", view.Balance.PlainString())
	}
}

func TestBuildLedger_LoanEntriesProject(t *testing.T) {
	s := DefaultSnapshot()
	s.Loans = []LoanEntry{{
		ID: "l1", Lender: "AutoFin", Principal: USD(20000), CurrentBalance: USD(8000),
		StartDate: at(2024, time.January, 15, 0, 0),
	}}

	view := BuildLedger(s, FilterCriteria{AssetType: AssetLoan, FilterType: FilterAll}, 1)
	if len(view.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(view.Records))
	}
	if !view.Records[0].Amount.Equal(USD(-8000)) {
		t.Errorf("loan amount = %s, want -8000", view.Records[0].Amount.PlainString())
	}
}

func TestBuildLedger_PaginationMonotonic(t *testing.T) {
	txs := make([]AccountTransaction, 0, 45)
	for i := 0; i < 45; i++ {
		txs = append(txs, AccountTransaction{
			ID:          fmt.Sprintf("t%02d", i),
			DateTime:    at(2025, time.January, 1, 0, 0).Add(time.Duration(i) * time.Hour),
			Amount:      USD(1),
			Description: "drip",
		})
	}
	s, acc := setupAccount(t, USD(45), txs...)
	filter := accountCategoryFilter(acc)

	page1 := BuildLedger(s, filter, 1)
	if len(page1.Records) != LedgerPageSize {
		t.Fatalf("page 1 has %d records, want %d", len(page1.Records), LedgerPageSize)
	}
	if !page1.HasMore {
		t.Error("page 1 should report more records")
	}

	page3 := BuildLedger(s, filter, 3)
	if len(page3.Records) != 45 {
		t.Fatalf("page 3 has %d records, want all 45", len(page3.Records))
	}
	if page3.HasMore {
		t.Error("page 3 should not report more records")
	}

	// Increasing the page count never removes or reorders earlier records.
	for i, r := range page1.Records {
		if page3.Records[i].ID != r.ID {
			t.Fatalf("record %d changed between pages: %q != %q", i, r.ID, page3.Records[i].ID)
		}
	}
}

func TestBuildLedger_DoesNotMutateSnapshot(t *testing.T) {
	s, acc := setupAccount(t, USD(5000))
	BuildLedger(s, accountCategoryFilter(acc), 1)
	if len(acc.Transactions) != 0 {
		t.Fatalf("BuildLedger persisted %d synthetic transactions", len(acc.Transactions))
	}
}
