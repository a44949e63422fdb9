package finbook

import (
	"fmt"
	"slices"
)

// SchemaVersion is the current version of the persisted document schema.
const SchemaVersion = 3

// AccountStatus is the lifecycle state of a bank account.
type AccountStatus string

const (
	AccountActive AccountStatus = "active"
	AccountClosed AccountStatus = "closed"
)

// Reserved transaction markers for the opening-balance row. A transaction
// carrying either marker is treated as the account's explicit opening entry
// and suppresses synthesis in the ledger view.
const (
	TxTypeOpening      = "opening_balance"
	OpeningDescription = "Opening Balance"
)

// CashEntry is one row of the cash ledger.
type CashEntry struct {
	ID        string   `json:"id"`
	Category  string   `json:"category"`
	Amount    Money    `json:"amount"`
	Notes     string   `json:"notes,omitempty"`
	UpdatedAt DateTime `json:"updatedAt"`
}

// AccountTransaction is a transaction embedded in its bank account.
// Amounts are signed: credits positive, debits negative.
type AccountTransaction struct {
	ID          string   `json:"id"`
	DateTime    DateTime `json:"datetime"`
	Amount      Money    `json:"amount"`
	Description string   `json:"description"`
	Type        string   `json:"type,omitempty"`
	Status      string   `json:"status,omitempty"`
}

// Account is a bank account aggregate. Balance is authoritative: the
// transaction log may be incomplete for migrated accounts, so derivations
// trust Balance and reconcile the log against it rather than the reverse.
type Account struct {
	ID           string               `json:"id"`
	Nickname     string               `json:"nickname"`
	BankName     string               `json:"bankName"`
	AccountType  string               `json:"accountType"`
	MaskedNumber string               `json:"maskedNumber"` // last 4 digits only
	Balance      Money                `json:"balance"`
	Status       AccountStatus        `json:"status"`
	LastSynced   DateTime             `json:"lastSynced"`
	Transactions []AccountTransaction `json:"transactions"`
}

// CompositeLabel is the stable display label of the account. It doubles as
// the category-filter match key in the ledger view, so its shape must not
// change between releases.
func (a *Account) CompositeLabel() string {
	return fmt.Sprintf("%s (••%s %s %s)", a.Nickname, a.MaskedNumber, a.BankName, a.AccountType)
}

// CreditCardEntry is a credit card. AvailableCredit and MinimumPayment are
// derived fields maintained by the card commands, never edited directly.
type CreditCardEntry struct {
	ID              string   `json:"id"`
	Label           string   `json:"label"`
	BankName        string   `json:"bankName"`
	MaskedNumber    string   `json:"maskedNumber"`
	CreditLimit     Money    `json:"creditLimit"`
	CurrentBalance  Money    `json:"currentBalance"` // amount owed
	AvailableCredit Money    `json:"availableCredit"`
	MinimumPayment  Money    `json:"minimumPayment"`
	StatementDay    int      `json:"statementDay,omitempty"`
	UpdatedAt       DateTime `json:"updatedAt"`
}

// CardTransaction is a credit-card transaction. Cards keep their transactions
// in a separate collection linked by CardID. Amounts are signed ledger
// amounts: charges negative, payments positive.
type CardTransaction struct {
	ID          string   `json:"id"`
	CardID      string   `json:"cardId"`
	DateTime    DateTime `json:"datetime"`
	Amount      Money    `json:"amount"`
	Description string   `json:"description"`
	Merchant    string   `json:"merchant,omitempty"`
	Category    string   `json:"category,omitempty"`
	Type        string   `json:"type,omitempty"`
}

// LoanEntry is a loan. Loans are not transaction-backed: only the running
// CurrentBalance is tracked, decremented by payment commands.
type LoanEntry struct {
	ID             string   `json:"id"`
	Lender         string   `json:"lender"`
	Principal      Money    `json:"principal"`
	CurrentBalance Money    `json:"currentBalance"`
	InterestRate   float64  `json:"interestRate,omitempty"`
	TermMonths     int      `json:"termMonths,omitempty"`
	StartDate      DateTime `json:"startDate"`
	Notes          string   `json:"notes,omitempty"`
}

// FixedIncomeEntry is a fixed-income instrument (deposit, bond, scheme).
type FixedIncomeEntry struct {
	ID           string   `json:"id"`
	Issuer       string   `json:"issuer"`
	Kind         string   `json:"kind,omitempty"`
	Principal    Money    `json:"principal"`
	CurrentValue Money    `json:"currentValue"`
	Rate         float64  `json:"rate,omitempty"`
	StartDate    DateTime `json:"startDate"`
	MaturityDate DateTime `json:"maturityDate"`
}

// CryptoEntry is a crypto holding valued at its last known price.
type CryptoEntry struct {
	ID       string  `json:"id"`
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	Value    Money   `json:"value"`
}

// PhysicalAssetEntry is a physical asset (vehicle, jewellery, property).
type PhysicalAssetEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value Money  `json:"value"`
}

// EncryptionMeta is modeled for schema compatibility with clients that
// reserve it. No encryption is performed.
type EncryptionMeta struct {
	Algorithm string `json:"algorithm,omitempty"`
	KeyID     string `json:"keyId,omitempty"`
}

// Snapshot is the entire persisted application state. The store reads and
// writes it as one document; every mutation rewrites the whole file.
type Snapshot struct {
	CashEntries      []CashEntry          `json:"cashEntries"`
	Accounts         []Account            `json:"accounts"`
	CreditCards      []CreditCardEntry    `json:"creditCards"`
	CardTransactions []CardTransaction    `json:"creditCardTransactions"`
	Loans            []LoanEntry          `json:"loans"`
	FixedIncomes     []FixedIncomeEntry   `json:"fixedIncomes"`
	CryptoEntries    []CryptoEntry        `json:"cryptoEntries"`
	PhysicalAssets   []PhysicalAssetEntry `json:"physicalAssets"`
	Encryption       *EncryptionMeta      `json:"_encryption,omitempty"`
	Version          int                  `json:"_version"`
	UpdatedAt        DateTime             `json:"_updatedAt"`
}

// DefaultSnapshot returns a fresh, empty, versioned document. It is the
// state of a first run and the state a corrupted file recovers to.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		CashEntries:      []CashEntry{},
		Accounts:         []Account{},
		CreditCards:      []CreditCardEntry{},
		CardTransactions: []CardTransaction{},
		Loans:            []LoanEntry{},
		FixedIncomes:     []FixedIncomeEntry{},
		CryptoEntries:    []CryptoEntry{},
		PhysicalAssets:   []PhysicalAssetEntry{},
		Version:          SchemaVersion,
		UpdatedAt:        Now(),
	}
}

// Clone returns a deep copy of the snapshot. The store clones its cache
// before applying commands so a failed command never leaks partial state.
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.CashEntries = slices.Clone(s.CashEntries)
	c.Accounts = slices.Clone(s.Accounts)
	for i := range c.Accounts {
		c.Accounts[i].Transactions = slices.Clone(s.Accounts[i].Transactions)
	}
	c.CreditCards = slices.Clone(s.CreditCards)
	c.CardTransactions = slices.Clone(s.CardTransactions)
	c.Loans = slices.Clone(s.Loans)
	c.FixedIncomes = slices.Clone(s.FixedIncomes)
	c.CryptoEntries = slices.Clone(s.CryptoEntries)
	c.PhysicalAssets = slices.Clone(s.PhysicalAssets)
	if s.Encryption != nil {
		enc := *s.Encryption
		c.Encryption = &enc
	}
	return &c
}

// Account returns the account with this id, or nil if unknown.
func (s *Snapshot) Account(id string) *Account {
	for i := range s.Accounts {
		if s.Accounts[i].ID == id {
			return &s.Accounts[i]
		}
	}
	return nil
}

// AccountByLabel returns the account whose composite label matches, or nil.
func (s *Snapshot) AccountByLabel(label string) *Account {
	for i := range s.Accounts {
		if s.Accounts[i].CompositeLabel() == label {
			return &s.Accounts[i]
		}
	}
	return nil
}

// CreditCard returns the card with this id, or nil if unknown.
func (s *Snapshot) CreditCard(id string) *CreditCardEntry {
	for i := range s.CreditCards {
		if s.CreditCards[i].ID == id {
			return &s.CreditCards[i]
		}
	}
	return nil
}

// Loan returns the loan with this id, or nil if unknown.
func (s *Snapshot) Loan(id string) *LoanEntry {
	for i := range s.Loans {
		if s.Loans[i].ID == id {
			return &s.Loans[i]
		}
	}
	return nil
}

// CashEntry returns the cash entry with this id, or nil if unknown.
func (s *Snapshot) CashEntry(id string) *CashEntry {
	for i := range s.CashEntries {
		if s.CashEntries[i].ID == id {
			return &s.CashEntries[i]
		}
	}
	return nil
}

// FixedIncome returns the fixed-income entry with this id, or nil if unknown.
func (s *Snapshot) FixedIncome(id string) *FixedIncomeEntry {
	for i := range s.FixedIncomes {
		if s.FixedIncomes[i].ID == id {
			return &s.FixedIncomes[i]
		}
	}
	return nil
}
