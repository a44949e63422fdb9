package finbook

import "time"

// USD is a helper for tests to create dollar money from const
func USD(v float64) Money { return M(v, "USD") }

// EUR is a helper for tests to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// NO is a helper for tests to create money with no currency set
func NO(v float64) Money { return M(v, "") }

// at is a helper for tests to build datetimes without parse noise.
func at(year int, month time.Month, day, hour, min int) DateTime {
	return NewDateTime(time.Date(year, month, day, hour, min, 0, 0, time.UTC))
}
