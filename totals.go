package finbook

// TotalsOptions configures ComputeTotals.
type TotalsOptions struct {
	// IncludeCryptoInLiquidity counts crypto holdings as liquid. Off by
	// default: the dashboard treats crypto as an investment unless the user
	// opts in.
	IncludeCryptoInLiquidity bool
}

// Totals is the set of derived aggregate figures shown on the dashboard.
type Totals struct {
	Cash         Money
	BankAccounts Money
	Loans        Money
	CreditCards  Money
	FixedIncome  Money
	// FixedIncomeByCurrency breaks the fixed-income total down per currency.
	FixedIncomeByCurrency map[string]Money
	// Investments currently equals FixedIncome; it is the extension point for
	// future instrument types.
	Investments    Money
	Crypto         Money
	PhysicalAssets Money
	NetWorth       Money
	Liquidity      Money
}

// addAmount accumulates a money value into a running total, adopting the
// first non-empty currency seen. It never converts: collections are
// single-currency by contract, and the core does no cross-currency
// arithmetic.
func addAmount(total, m Money) Money {
	c := total.cur
	if c == "" {
		c = m.cur
	}
	return Money{value: total.value.Add(m.value), cur: c}
}

// ComputeTotals folds the snapshot's collections into summary totals.
//
// It is a pure, total function: no I/O, no error conditions. Absent
// collections count as empty and absent amounts as zero, and two calls on
// the same snapshot always yield identical output. Stored running balances
// are trusted as-is; transaction logs are never re-summed here, because logs
// may be incomplete for migrated accounts while the balance field is
// authoritative.
func ComputeTotals(s *Snapshot, opts TotalsOptions) Totals {
	var t Totals
	t.FixedIncomeByCurrency = make(map[string]Money)

	for _, e := range s.CashEntries {
		t.Cash = addAmount(t.Cash, e.Amount)
	}
	for _, a := range s.Accounts {
		t.BankAccounts = addAmount(t.BankAccounts, a.Balance)
	}
	for _, l := range s.Loans {
		t.Loans = addAmount(t.Loans, l.CurrentBalance)
	}
	for _, c := range s.CreditCards {
		t.CreditCards = addAmount(t.CreditCards, c.CurrentBalance)
	}
	for _, fi := range s.FixedIncomes {
		t.FixedIncome = addAmount(t.FixedIncome, fi.CurrentValue)
		cur := fi.CurrentValue.Currency()
		t.FixedIncomeByCurrency[cur] = addAmount(t.FixedIncomeByCurrency[cur], fi.CurrentValue)
	}
	for _, ce := range s.CryptoEntries {
		t.Crypto = addAmount(t.Crypto, ce.Value)
	}
	for _, pa := range s.PhysicalAssets {
		t.PhysicalAssets = addAmount(t.PhysicalAssets, pa.Value)
	}

	t.Investments = t.FixedIncome

	assets := addAmount(addAmount(addAmount(t.BankAccounts, t.Crypto), t.Investments), t.PhysicalAssets)
	liabilities := addAmount(t.Loans, t.CreditCards)
	t.NetWorth = Money{value: assets.value.Sub(liabilities.value), cur: assets.cur}

	t.Liquidity = t.BankAccounts
	if opts.IncludeCryptoInLiquidity {
		t.Liquidity = addAmount(t.Liquidity, t.Crypto)
	}
	return t
}
