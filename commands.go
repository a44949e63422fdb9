package finbook

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// This file holds the named mutation commands. The UI layer (or the CLI)
// folds one or more of them into a single Store.Save call; the store applies
// them to a clone and persists the whole document once.

// minimumPaymentRate is the fraction of the card balance due each statement.
var minimumPaymentRate = decimal.NewFromFloat(0.05)

// minimumPaymentFloor is the smallest non-zero minimum payment.
var minimumPaymentFloor = decimal.NewFromInt(100)

// refreshCardDerived recomputes the card's derived fields. It is the single
// place availableCredit and minimumPayment come from: every card command
// calls it, so the two can never drift between call sites.
func refreshCardDerived(c *CreditCardEntry) {
	c.AvailableCredit = c.CreditLimit.Sub(c.CurrentBalance)

	currency := c.CreditLimit.Currency()
	if !c.CurrentBalance.IsPositive() {
		c.MinimumPayment = M(0, currency)
		return
	}
	min := c.CurrentBalance.value.Mul(minimumPaymentRate).Round(2)
	if min.LessThan(minimumPaymentFloor) {
		min = minimumPaymentFloor
	}
	if c.CurrentBalance.value.LessThan(min) {
		min = c.CurrentBalance.value
	}
	c.MinimumPayment = M(min, currency)
}

// --- cash ---

// AddCashEntry appends a row to the cash ledger.
func AddCashEntry(category string, amount Money, notes string) Command {
	return func(s *Snapshot) error {
		if category == "" {
			return errors.New("cash entry category is missing")
		}
		s.CashEntries = append(s.CashEntries, CashEntry{
			ID:        uuid.NewString(),
			Category:  category,
			Amount:    amount,
			Notes:     notes,
			UpdatedAt: Now(),
		})
		return nil
	}
}

// UpdateCashEntry replaces the amount and notes of an existing cash entry.
func UpdateCashEntry(id string, amount Money, notes string) Command {
	return func(s *Snapshot) error {
		entry := s.CashEntry(id)
		if entry == nil {
			return fmt.Errorf("unknown cash entry %q", id)
		}
		entry.Amount = amount
		entry.Notes = notes
		entry.UpdatedAt = Now()
		return nil
	}
}

// DeleteCashEntry removes a cash entry.
func DeleteCashEntry(id string) Command {
	return func(s *Snapshot) error {
		for i := range s.CashEntries {
			if s.CashEntries[i].ID == id {
				s.CashEntries = append(s.CashEntries[:i], s.CashEntries[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("unknown cash entry %q", id)
	}
}

// --- bank accounts ---

// AddAccount creates a bank account with the given opening balance and an
// empty transaction log.
func AddAccount(nickname, bankName, accountType, maskedNumber string, balance Money) Command {
	return func(s *Snapshot) error {
		if nickname == "" {
			return errors.New("account nickname is missing")
		}
		s.Accounts = append(s.Accounts, Account{
			ID:           uuid.NewString(),
			Nickname:     nickname,
			BankName:     bankName,
			AccountType:  accountType,
			MaskedNumber: maskedNumber,
			Balance:      balance,
			Status:       AccountActive,
			LastSynced:   Now(),
			Transactions: []AccountTransaction{},
		})
		return nil
	}
}

// SetAccountBalance corrects the authoritative balance of an account without
// touching its transaction log. The ledger view reconciles the difference
// with a synthetic opening row.
func SetAccountBalance(id string, balance Money) Command {
	return func(s *Snapshot) error {
		acc := s.Account(id)
		if acc == nil {
			return fmt.Errorf("unknown account %q", id)
		}
		acc.Balance = balance
		acc.LastSynced = Now()
		return nil
	}
}

// CloseAccount marks an account closed. Its history stays in the document.
func CloseAccount(id string) Command {
	return func(s *Snapshot) error {
		acc := s.Account(id)
		if acc == nil {
			return fmt.Errorf("unknown account %q", id)
		}
		acc.Status = AccountClosed
		return nil
	}
}

// RecordAccountTransaction appends a signed transaction (credit positive,
// debit negative) to the account's log and moves the balance with it.
func RecordAccountTransaction(accountID string, when DateTime, amount Money, description, txType string) Command {
	return func(s *Snapshot) error {
		acc := s.Account(accountID)
		if acc == nil {
			return fmt.Errorf("unknown account %q", accountID)
		}
		if acc.Status == AccountClosed {
			return fmt.Errorf("account %q is closed", accountID)
		}
		if amount.IsZero() {
			return errors.New("transaction amount cannot be zero")
		}
		if when.IsZero() {
			when = Now()
		}
		acc.Transactions = append(acc.Transactions, AccountTransaction{
			ID:          uuid.NewString(),
			DateTime:    when,
			Amount:      amount,
			Description: description,
			Type:        txType,
			Status:      "posted",
		})
		acc.Balance = acc.Balance.Add(amount)
		acc.LastSynced = Now()
		return nil
	}
}

// --- credit cards ---

// AddCreditCard creates a card with a zero balance. Derived fields are
// computed immediately.
func AddCreditCard(label, bankName, maskedNumber string, creditLimit Money, statementDay int) Command {
	return func(s *Snapshot) error {
		if label == "" {
			return errors.New("card label is missing")
		}
		if !creditLimit.IsPositive() {
			return fmt.Errorf("credit limit must be positive, got %s", creditLimit)
		}
		card := CreditCardEntry{
			ID:             uuid.NewString(),
			Label:          label,
			BankName:       bankName,
			MaskedNumber:   maskedNumber,
			CreditLimit:    creditLimit,
			CurrentBalance: M(0, creditLimit.Currency()),
			StatementDay:   statementDay,
			UpdatedAt:      Now(),
		}
		refreshCardDerived(&card)
		s.CreditCards = append(s.CreditCards, card)
		return nil
	}
}

// RecordCharge records a purchase on a card: the owed balance grows by the
// charge and the transaction is stored with a negative ledger amount.
func RecordCharge(cardID string, when DateTime, amount Money, merchant, description, category string) Command {
	return func(s *Snapshot) error {
		card := s.CreditCard(cardID)
		if card == nil {
			return fmt.Errorf("unknown credit card %q", cardID)
		}
		if !amount.IsPositive() {
			return fmt.Errorf("charge amount must be positive, got %s", amount)
		}
		if when.IsZero() {
			when = Now()
		}
		s.CardTransactions = append(s.CardTransactions, CardTransaction{
			ID:          uuid.NewString(),
			CardID:      cardID,
			DateTime:    when,
			Amount:      amount.Neg(),
			Description: description,
			Merchant:    merchant,
			Category:    category,
			Type:        "charge",
		})
		card.CurrentBalance = card.CurrentBalance.Add(amount)
		card.UpdatedAt = Now()
		refreshCardDerived(card)
		return nil
	}
}

// PayCard pays down a card from a bank account. Both effects, the card
// credit and the account withdrawal, live in this one command so they can
// only ever persist together, in a single document write.
func PayCard(cardID, fromAccountID string, when DateTime, amount Money) Command {
	return func(s *Snapshot) error {
		card := s.CreditCard(cardID)
		if card == nil {
			return fmt.Errorf("unknown credit card %q", cardID)
		}
		if !amount.IsPositive() {
			return fmt.Errorf("payment amount must be positive, got %s", amount)
		}
		if when.IsZero() {
			when = Now()
		}

		s.CardTransactions = append(s.CardTransactions, CardTransaction{
			ID:          uuid.NewString(),
			CardID:      cardID,
			DateTime:    when,
			Amount:      amount,
			Description: "Payment",
			Type:        "payment",
		})
		card.CurrentBalance = card.CurrentBalance.Sub(amount)
		card.UpdatedAt = Now()
		refreshCardDerived(card)

		description := fmt.Sprintf("Credit card payment: %s", card.Label)
		return RecordAccountTransaction(fromAccountID, when, amount.Neg(), description, "card_payment")(s)
	}
}

// --- loans ---

// AddLoan creates a loan with its balance at the full principal.
func AddLoan(lender string, principal Money, interestRate float64, termMonths int, start DateTime) Command {
	return func(s *Snapshot) error {
		if lender == "" {
			return errors.New("loan lender is missing")
		}
		if !principal.IsPositive() {
			return fmt.Errorf("loan principal must be positive, got %s", principal)
		}
		if start.IsZero() {
			start = Now()
		}
		s.Loans = append(s.Loans, LoanEntry{
			ID:             uuid.NewString(),
			Lender:         lender,
			Principal:      principal,
			CurrentBalance: principal,
			InterestRate:   interestRate,
			TermMonths:     termMonths,
			StartDate:      start,
		})
		return nil
	}
}

// RecordLoanPayment reduces the loan balance. When fromAccountID is set, the
// matching bank withdrawal is recorded by the same command, in the same
// write.
func RecordLoanPayment(loanID, fromAccountID string, when DateTime, amount Money) Command {
	return func(s *Snapshot) error {
		loan := s.Loan(loanID)
		if loan == nil {
			return fmt.Errorf("unknown loan %q", loanID)
		}
		if !amount.IsPositive() {
			return fmt.Errorf("loan payment must be positive, got %s", amount)
		}
		if loan.CurrentBalance.LessThan(amount) {
			return fmt.Errorf("loan payment %s exceeds balance %s", amount, loan.CurrentBalance)
		}
		loan.CurrentBalance = loan.CurrentBalance.Sub(amount)

		if fromAccountID == "" {
			return nil
		}
		description := fmt.Sprintf("Loan payment: %s", loan.Lender)
		return RecordAccountTransaction(fromAccountID, when, amount.Neg(), description, "loan_payment")(s)
	}
}

// --- fixed income and other assets ---

// AddFixedIncome creates a fixed-income instrument valued at its principal.
func AddFixedIncome(issuer, kind string, principal Money, rate float64, start, maturity DateTime) Command {
	return func(s *Snapshot) error {
		if issuer == "" {
			return errors.New("fixed income issuer is missing")
		}
		if !principal.IsPositive() {
			return fmt.Errorf("fixed income principal must be positive, got %s", principal)
		}
		s.FixedIncomes = append(s.FixedIncomes, FixedIncomeEntry{
			ID:           uuid.NewString(),
			Issuer:       issuer,
			Kind:         kind,
			Principal:    principal,
			CurrentValue: principal,
			Rate:         rate,
			StartDate:    start,
			MaturityDate: maturity,
		})
		return nil
	}
}

// RevalueFixedIncome updates the current value of an instrument.
func RevalueFixedIncome(id string, value Money) Command {
	return func(s *Snapshot) error {
		fi := s.FixedIncome(id)
		if fi == nil {
			return fmt.Errorf("unknown fixed income entry %q", id)
		}
		fi.CurrentValue = value
		return nil
	}
}

// AddCryptoEntry records a crypto holding at its current value.
func AddCryptoEntry(symbol string, quantity float64, value Money) Command {
	return func(s *Snapshot) error {
		if symbol == "" {
			return errors.New("crypto symbol is missing")
		}
		s.CryptoEntries = append(s.CryptoEntries, CryptoEntry{
			ID:       uuid.NewString(),
			Symbol:   symbol,
			Quantity: quantity,
			Value:    value,
		})
		return nil
	}
}

// AddPhysicalAsset records a physical asset at its current value.
func AddPhysicalAsset(name string, value Money) Command {
	return func(s *Snapshot) error {
		if name == "" {
			return errors.New("asset name is missing")
		}
		s.PhysicalAssets = append(s.PhysicalAssets, PhysicalAssetEntry{
			ID:    uuid.NewString(),
			Name:  name,
			Value: value,
		})
		return nil
	}
}
