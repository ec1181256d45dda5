package sqlite

import (
	"context"
	"time"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/core"
	"github.com/msmraqeeb/Euro-IT-Accounts/internal/store"
)

func (s *Store) AddClient(ctx context.Context, c core.Client) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO clients (id, name, email, phone, company, notes, total_billed, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.Phone, c.Company, c.Notes,
		c.TotalBilled.String(), boolInt(c.IsActive), c.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return store.Rejected("sqlite.AddClient", "insert failed", err)
	}
	return nil
}

func (s *Store) UpdateClient(ctx context.Context, c core.Client) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE clients SET name = ?, email = ?, phone = ?, company = ?, notes = ?,
			total_billed = ?, is_active = ?
		WHERE id = ?`,
		c.Name, c.Email, c.Phone, c.Company, c.Notes,
		c.TotalBilled.String(), boolInt(c.IsActive), c.ID)
	if err != nil {
		return store.Rejected("sqlite.UpdateClient", "update failed", err)
	}
	return requireRow(res, "sqlite.UpdateClient", "unknown client id")
}

// DeleteClient is a no-op for an absent id, the local-storage rule.
func (s *Store) DeleteClient(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id); err != nil {
		return store.Rejected("sqlite.DeleteClient", "delete failed", err)
	}
	return nil
}

func (s *Store) AddPayment(ctx context.Context, p core.Payment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payments (id, client_id, amount, paid_on, description, method, details, kind)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.ClientID, p.Amount.String(), p.Date.String(),
		p.Description, p.Method, p.Details, string(p.ResolvedKind()))
	if err != nil {
		return store.Rejected("sqlite.AddPayment", "insert failed", err)
	}
	return nil
}

func (s *Store) UpdatePayment(ctx context.Context, p core.Payment) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE payments SET client_id = ?, amount = ?, paid_on = ?, description = ?,
			method = ?, details = ?, kind = ?
		WHERE id = ?`,
		p.ClientID, p.Amount.String(), p.Date.String(), p.Description,
		p.Method, p.Details, string(p.ResolvedKind()), p.ID)
	if err != nil {
		return store.Rejected("sqlite.UpdatePayment", "update failed", err)
	}
	return requireRow(res, "sqlite.UpdatePayment", "unknown payment id")
}

func (s *Store) DeletePayment(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id); err != nil {
		return store.Rejected("sqlite.DeletePayment", "delete failed", err)
	}
	return nil
}

func (s *Store) AddExpense(ctx context.Context, e core.Expense) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (id, category, amount, spent_on, description)
		VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Category, e.Amount.String(), e.Date.String(), e.Description)
	if err != nil {
		return store.Rejected("sqlite.AddExpense", "insert failed", err)
	}
	return nil
}

func (s *Store) UpdateExpense(ctx context.Context, e core.Expense) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE expenses SET category = ?, amount = ?, spent_on = ?, description = ?
		WHERE id = ?`,
		e.Category, e.Amount.String(), e.Date.String(), e.Description, e.ID)
	if err != nil {
		return store.Rejected("sqlite.UpdateExpense", "update failed", err)
	}
	return requireRow(res, "sqlite.UpdateExpense", "unknown expense id")
}

func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id); err != nil {
		return store.Rejected("sqlite.DeleteExpense", "delete failed", err)
	}
	return nil
}

type rowsAffected interface {
	RowsAffected() (int64, error)
}

func requireRow(res rowsAffected, op, message string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return store.Rejected(op, message, err)
	}
	if n == 0 {
		return store.Rejected(op, message, core.ErrUnknownEntity)
	}
	return nil
}
