// Package sqlite is the local backend: a single-file SQLite database behind
// the persistence ports. It is the silent fallback when no remote store is
// configured, so opening it must always work given a writable directory.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/core"
	"github.com/msmraqeeb/Euro-IT-Accounts/internal/store"
)

type Store struct {
	db *sql.DB
}

var (
	_ store.Loader       = (*Store)(nil)
	_ store.ClientStore  = (*Store)(nil)
	_ store.PaymentStore = (*Store)(nil)
	_ store.ExpenseStore = (*Store)(nil)
	_ store.Bulk         = (*Store)(nil)
	_ store.Pinger       = (*Store)(nil)
)

// Open creates or opens the database at dbPath and brings the schema up to
// date.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return store.Connectivity("sqlite.Ping", "database unavailable", err)
	}
	return nil
}

// FetchAll reads the three tables into a fresh ledger. Legacy client rows
// with a NULL is_active land here as active.
func (s *Store) FetchAll(ctx context.Context) (*core.Ledger, error) {
	ledger := core.NewLedger()

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, email, phone, company, notes, total_billed, is_active, created_at FROM clients`)
	if err != nil {
		return nil, store.Connectivity("sqlite.FetchAll", "cannot load clients", err)
	}
	defer rows.Close()
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, store.Connectivity("sqlite.FetchAll", "corrupt client row", err)
		}
		ledger.Clients[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, store.Connectivity("sqlite.FetchAll", "cannot load clients", err)
	}

	prows, err := s.db.QueryContext(ctx, `SELECT id, client_id, amount, paid_on, description, method, details, kind FROM payments ORDER BY paid_on, id`)
	if err != nil {
		return nil, store.Connectivity("sqlite.FetchAll", "cannot load payments", err)
	}
	defer prows.Close()
	for prows.Next() {
		p, err := scanPayment(prows)
		if err != nil {
			return nil, store.Connectivity("sqlite.FetchAll", "corrupt payment row", err)
		}
		ledger.Payments = append(ledger.Payments, p)
	}
	if err := prows.Err(); err != nil {
		return nil, store.Connectivity("sqlite.FetchAll", "cannot load payments", err)
	}

	erows, err := s.db.QueryContext(ctx, `SELECT id, category, amount, spent_on, description FROM expenses ORDER BY spent_on, id`)
	if err != nil {
		return nil, store.Connectivity("sqlite.FetchAll", "cannot load expenses", err)
	}
	defer erows.Close()
	for erows.Next() {
		e, err := scanExpense(erows)
		if err != nil {
			return nil, store.Connectivity("sqlite.FetchAll", "corrupt expense row", err)
		}
		ledger.Expenses = append(ledger.Expenses, e)
	}
	if err := erows.Err(); err != nil {
		return nil, store.Connectivity("sqlite.FetchAll", "cannot load expenses", err)
	}

	return ledger, nil
}

// UpsertAll applies the three collections inside one transaction, clients
// first. The first failing statement rolls back everything, so a failed
// import never leaves a partial commit behind.
func (s *Store) UpsertAll(ctx context.Context, clients []core.Client, payments []core.Payment, expenses []core.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Connectivity("sqlite.UpsertAll", "cannot start transaction", err)
	}
	defer tx.Rollback()

	for _, c := range clients {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO clients (id, name, email, phone, company, notes, total_billed, is_active, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name, email = excluded.email, phone = excluded.phone,
				company = excluded.company, notes = excluded.notes,
				total_billed = excluded.total_billed, is_active = excluded.is_active,
				created_at = excluded.created_at`,
			c.ID, c.Name, c.Email, c.Phone, c.Company, c.Notes,
			c.TotalBilled.String(), boolInt(c.IsActive), c.CreatedAt.UTC().Format(time.RFC3339)); err != nil {
			return store.Rejected("sqlite.UpsertAll(clients)", "upsert failed", err)
		}
	}
	for _, p := range payments {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO payments (id, client_id, amount, paid_on, description, method, details, kind)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				client_id = excluded.client_id, amount = excluded.amount,
				paid_on = excluded.paid_on, description = excluded.description,
				method = excluded.method, details = excluded.details, kind = excluded.kind`,
			p.ID, p.ClientID, p.Amount.String(), p.Date.String(),
			p.Description, p.Method, p.Details, string(p.ResolvedKind())); err != nil {
			return store.Rejected("sqlite.UpsertAll(payments)", "upsert failed", err)
		}
	}
	for _, e := range expenses {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO expenses (id, category, amount, spent_on, description)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				category = excluded.category, amount = excluded.amount,
				spent_on = excluded.spent_on, description = excluded.description`,
			e.ID, e.Category, e.Amount.String(), e.Date.String(), e.Description); err != nil {
			return store.Rejected("sqlite.UpsertAll(expenses)", "upsert failed", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return store.Connectivity("sqlite.UpsertAll", "commit failed", err)
	}
	return nil
}

// ClearAll empties every table, payments and expenses before clients.
func (s *Store) ClearAll(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Connectivity("sqlite.ClearAll", "cannot start transaction", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"payments", "expenses", "clients"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return store.Rejected("sqlite.ClearAll", "delete from "+table+" failed", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return store.Connectivity("sqlite.ClearAll", "commit failed", err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanClient(row scanner) (core.Client, error) {
	var (
		c           core.Client
		totalBilled string
		active      sql.NullBool
		createdAt   string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Notes, &totalBilled, &active, &createdAt); err != nil {
		return core.Client{}, err
	}
	amount, err := decimal.NewFromString(totalBilled)
	if err != nil {
		return core.Client{}, fmt.Errorf("total_billed %q: %w", totalBilled, err)
	}
	c.TotalBilled = amount
	if active.Valid {
		c.IsActive = core.NormalizeActive(&active.Bool)
	} else {
		c.IsActive = core.NormalizeActive(nil)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		c.CreatedAt = t
	}
	return c, nil
}

func scanPayment(row scanner) (core.Payment, error) {
	var (
		p      core.Payment
		amount string
		paidOn string
		kind   string
	)
	if err := row.Scan(&p.ID, &p.ClientID, &amount, &paidOn, &p.Description, &p.Method, &p.Details, &kind); err != nil {
		return core.Payment{}, err
	}
	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return core.Payment{}, fmt.Errorf("amount %q: %w", amount, err)
	}
	date, err := core.ParseDate(paidOn)
	if err != nil {
		return core.Payment{}, err
	}
	p.Amount = dec
	p.Date = date
	p.Kind = core.PaymentKind(kind)
	return p, nil
}

func scanExpense(row scanner) (core.Expense, error) {
	var (
		e       core.Expense
		amount  string
		spentOn string
	)
	if err := row.Scan(&e.ID, &e.Category, &amount, &spentOn, &e.Description); err != nil {
		return core.Expense{}, err
	}
	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return core.Expense{}, fmt.Errorf("amount %q: %w", amount, err)
	}
	date, err := core.ParseDate(spentOn)
	if err != nil {
		return core.Expense{}, err
	}
	e.Amount = dec
	e.Date = date
	return e, nil
}
