// Package finbook is the ledger consistency layer of a personal-finance
// tracker. It is local-first: the entire application state lives in a single
// JSON document on disk, and every derivation is recomputed from that one
// source of truth.
//
// The core functionalities include:
//   - Document Store: durable single-file persistence of the whole state,
//     with atomic replace-on-write, timestamped backups, and silent recovery
//     from a corrupt file (availability over durability, by product
//     decision).
//   - State Model: the versioned schema of domain collections (cash,
//     accounts with embedded transactions, credit cards with a separate
//     transaction collection, loans, fixed income, crypto, physical assets).
//   - Aggregation Engine: pure summary totals (liquidity, liabilities,
//     investments, net worth) folded from a snapshot.
//   - Ledger View: the unified, filtered, chronologically ordered list of
//     transaction records for one asset type, reconstructing a synthetic
//     opening-balance row when an account's stored balance cannot be
//     explained by its recorded transactions.
//   - CSV Export: bit-exact CSV text with a deterministic filename for
//     downstream spreadsheet tools.
//
// This package serves as the foundational logic for the `fbk` command-line
// tool and for any UI layer hosting the tracker.
package finbook
