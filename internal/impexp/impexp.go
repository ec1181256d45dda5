// Package impexp reads and writes the backup file format: a single JSON
// object with exactly three array fields, clients, payments and expenses.
// The same shape serves export downloads and import uploads.
package impexp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/core"
)

// ErrInvalidBackup rejects a payload missing any of the three arrays. An
// empty array is fine; an absent or null one is not.
var ErrInvalidBackup = errors.New("invalid backup file: clients, payments and expenses arrays are required")

// Backup is the interchange shape.
type Backup struct {
	Clients  []core.Client  `json:"clients"`
	Payments []core.Payment `json:"payments"`
	Expenses []core.Expense `json:"expenses"`
}

// FromLedger builds a backup from a ledger snapshot. Clients are emitted in
// name order so exports diff cleanly.
func FromLedger(l *core.Ledger) Backup {
	b := Backup{
		Clients:  l.SortedClients(),
		Payments: l.Payments,
		Expenses: l.Expenses,
	}
	// Keep the three fields arrays even when empty: consumers validate with
	// the same strictness Decode does.
	if b.Clients == nil {
		b.Clients = []core.Client{}
	}
	if b.Payments == nil {
		b.Payments = []core.Payment{}
	}
	if b.Expenses == nil {
		b.Expenses = []core.Expense{}
	}
	return b
}

// Decode parses and validates a backup payload. Client records pass through
// the usual isActive normalization during decoding. Unknown extra fields are
// ignored; missing or null arrays are rejected.
func Decode(r io.Reader) (Backup, error) {
	var raw struct {
		Clients  *[]core.Client  `json:"clients"`
		Payments *[]core.Payment `json:"payments"`
		Expenses *[]core.Expense `json:"expenses"`
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return Backup{}, fmt.Errorf("parse backup file: %w", err)
	}
	if raw.Clients == nil || raw.Payments == nil || raw.Expenses == nil {
		return Backup{}, ErrInvalidBackup
	}
	return Backup{
		Clients:  *raw.Clients,
		Payments: *raw.Payments,
		Expenses: *raw.Expenses,
	}, nil
}

// Encode writes the backup as indented JSON, the download format.
func Encode(w io.Writer, b Backup) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encode backup file: %w", err)
	}
	return nil
}
