package finbook

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

// testLogger returns a quiet logger so corruption-recovery tests don't spam
// the test output.
func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func openTempStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "finbook.json")
	s, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestOpen_CreatesDefaultDocument(t *testing.T) {
	s := openTempStore(t)

	if _, err := os.Stat(s.Path()); err != nil {
		t.Fatalf("backing file was not created: %v", err)
	}
	snap := s.Read()
	if snap.Version != SchemaVersion {
		t.Errorf("version = %d, want %d", snap.Version, SchemaVersion)
	}
	if snap.CashEntries == nil || snap.Accounts == nil {
		t.Error("default snapshot collections should be empty, not nil")
	}
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	s := openTempStore(t)

	err := s.Save(
		AddCashEntry("Wallet", USD(120), "emergency notes"),
		AddAccount("Everyday", "First National", "checking", "4821", USD(5000)),
	)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Reopen from disk and compare what survived the roundtrip.
	s2, err := Open(s.Path(), testLogger())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	snap := s2.Read()
	if len(snap.CashEntries) != 1 {
		t.Fatalf("got %d cash entries, want 1", len(snap.CashEntries))
	}
	if c := snap.CashEntries[0]; c.Category != "Wallet" || !c.Amount.Equal(USD(120)) || c.Notes != "emergency notes" {
		t.Errorf("cash entry = %+v", c)
	}
	if len(snap.Accounts) != 1 {
		t.Fatalf("got %d accounts, want 1", len(snap.Accounts))
	}
	acc := snap.Accounts[0]
	if acc.Nickname != "Everyday" || !acc.Balance.Equal(USD(5000)) || acc.Status != AccountActive {
		t.Errorf("account = %+v", acc)
	}
	if acc.ID == "" {
		t.Error("account was saved without an id")
	}
	if snap.UpdatedAt.IsZero() {
		t.Error("_updatedAt was not stamped")
	}
}

func TestStore_FailedCommandLeavesNoTrace(t *testing.T) {
	s := openTempStore(t)
	if err := s.Save(AddCashEntry("Wallet", USD(120), "")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	before := s.Read()

	err := s.Save(
		AddCashEntry("Drawer", USD(40), ""),
		DeleteCashEntry("no-such-entry"),
	)
	if err == nil {
		t.Fatal("Save with a failing command should return its error")
	}

	// The cache is untouched, the file too.
	after := s.Read()
	if after != before {
		t.Error("cache was swapped despite the failed command")
	}
	s2, err := Open(s.Path(), testLogger())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if n := len(s2.Read().CashEntries); n != 1 {
		t.Errorf("file has %d cash entries, want 1 (partial batch persisted)", n)
	}
}

func TestStore_RecoversCorruptFile(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"truncated json", `{"cashEntries": [`},
		{"not an object", `[1, 2, 3]`},
		{"missing version", `{"cashEntries": []}`},
		{"version not a number", `{"_version": "three"}`},
		{"version not positive", `{"_version": 0}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := openTempStore(t)
			if err := os.WriteFile(s.Path(), []byte(c.data), 0644); err != nil {
				t.Fatal(err)
			}

			var hooked error
			s.SetRecoveryHook(func(err error) { hooked = err })

			snap, err := s.Load()
			if err != nil {
				t.Fatalf("Load should recover, not fail: %v", err)
			}
			if snap.Version != SchemaVersion {
				t.Errorf("recovered version = %d, want %d", snap.Version, SchemaVersion)
			}
			if hooked == nil {
				t.Error("recovery hook was not invoked")
			}

			// Recovery persists: the rewritten file parses cleanly next time.
			data, err := os.ReadFile(s.Path())
			if err != nil {
				t.Fatal(err)
			}
			if _, err := decodeSnapshot(data); err != nil {
				t.Errorf("rewritten file is still corrupt: %v", err)
			}
		})
	}
}

func TestStore_ValidFileIsNotRecovered(t *testing.T) {
	s := openTempStore(t)
	if err := s.Save(AddCashEntry("Wallet", USD(120), "")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	recovered := false
	s.SetRecoveryHook(func(error) { recovered = true })
	snap, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if recovered {
		t.Error("recovery hook fired on a valid file")
	}
	if len(snap.CashEntries) != 1 {
		t.Errorf("got %d cash entries, want 1", len(snap.CashEntries))
	}
}

func TestStore_Backup(t *testing.T) {
	s := openTempStore(t)
	if err := s.Save(AddCashEntry("Wallet", USD(120), "")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	backup, err := s.Backup()
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if !strings.HasSuffix(backup, ".bak") {
		t.Errorf("backup path %q does not end in .bak", backup)
	}

	orig, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	copied, err := os.ReadFile(backup)
	if err != nil {
		t.Fatal(err)
	}
	if string(orig) != string(copied) {
		t.Error("backup content differs from the backing file")
	}
}

func TestStore_SaveDoesNotMutateReadSnapshot(t *testing.T) {
	s := openTempStore(t)
	if err := s.Save(AddAccount("Everyday", "First National", "checking", "4821", USD(5000))); err != nil {
		t.Fatalf("Save: %v", err)
	}
	held := s.Read()
	accID := held.Accounts[0].ID

	if err := s.Save(RecordAccountTransaction(accID, Now(), USD(-500), "Groceries", "debit")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// The previously read snapshot is a distinct value: commands acted on a
	// clone, not on what callers already hold.
	if len(held.Accounts[0].Transactions) != 0 {
		t.Error("earlier snapshot grew a transaction")
	}
	if !held.Accounts[0].Balance.Equal(USD(5000)) {
		t.Error("earlier snapshot balance changed")
	}
	if !s.Read().Accounts[0].Balance.Equal(USD(4500)) {
		t.Errorf("current balance = %s, want 4500", s.Read().Accounts[0].Balance.PlainString())
	}
}
