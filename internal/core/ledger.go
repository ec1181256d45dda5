package core

import (
	"maps"
	"slices"
)

// Ledger is the aggregate the whole application reads from: every client
// indexed by id plus the full payment and expense lists. A Ledger value is
// never shared mutable state; the session store hands out deep clones and
// swaps whole instances.
//
// The ledger enforces no referential integrity. A payment may reference a
// deleted client id; ClientName resolves those to UnknownClientName.
type Ledger struct {
	Clients  map[string]Client
	Payments []Payment
	Expenses []Expense
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{Clients: make(map[string]Client)}
}

// Clone returns a deep copy. Entities are value types (strings, decimals,
// dates), so cloning the containers is enough.
func (l *Ledger) Clone() *Ledger {
	return &Ledger{
		Clients:  maps.Clone(l.Clients),
		Payments: slices.Clone(l.Payments),
		Expenses: slices.Clone(l.Expenses),
	}
}

// Client returns the client with this id, or false if unknown.
func (l *Ledger) Client(id string) (Client, bool) {
	c, ok := l.Clients[id]
	return c, ok
}

// ClientName resolves a client id for display, falling back to
// UnknownClientName when the id no longer resolves.
func (l *Ledger) ClientName(id string) string {
	if c, ok := l.Clients[id]; ok {
		return c.Name
	}
	return UnknownClientName
}

// PaymentsOf returns the payments referencing this client id.
func (l *Ledger) PaymentsOf(clientID string) []Payment {
	var out []Payment
	for _, p := range l.Payments {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out
}

// SortedClients returns the clients ordered by name then id, for stable
// listing and export.
func (l *Ledger) SortedClients() []Client {
	out := slices.SortedFunc(maps.Values(l.Clients), func(a, b Client) int {
		if a.Name != b.Name {
			if a.Name < b.Name {
				return -1
			}
			return 1
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out
}

// AddClient inserts a new client. The id must not already exist.
func (l *Ledger) AddClient(c Client) error {
	if _, ok := l.Clients[c.ID]; ok {
		return ErrDuplicateEntity
	}
	l.Clients[c.ID] = c
	return nil
}

// UpdateClient replaces all non-id fields of an existing client.
func (l *Ledger) UpdateClient(c Client) error {
	if _, ok := l.Clients[c.ID]; !ok {
		return ErrUnknownEntity
	}
	l.Clients[c.ID] = c
	return nil
}

// DeleteClient removes a client. Removing an absent id is a no-op; the
// client's payments stay in the ledger and render as Unknown.
func (l *Ledger) DeleteClient(id string) {
	delete(l.Clients, id)
}

// AddPayment appends a new payment. The id must not already exist.
func (l *Ledger) AddPayment(p Payment) error {
	if l.paymentIndex(p.ID) >= 0 {
		return ErrDuplicateEntity
	}
	l.Payments = append(l.Payments, p)
	return nil
}

// UpdatePayment replaces all non-id fields of an existing payment.
func (l *Ledger) UpdatePayment(p Payment) error {
	i := l.paymentIndex(p.ID)
	if i < 0 {
		return ErrUnknownEntity
	}
	l.Payments[i] = p
	return nil
}

// DeletePayment removes a payment. Removing an absent id is a no-op.
func (l *Ledger) DeletePayment(id string) {
	if i := l.paymentIndex(id); i >= 0 {
		l.Payments = slices.Delete(l.Payments, i, i+1)
	}
}

// AddExpense appends a new expense. The id must not already exist.
func (l *Ledger) AddExpense(e Expense) error {
	if l.expenseIndex(e.ID) >= 0 {
		return ErrDuplicateEntity
	}
	l.Expenses = append(l.Expenses, e)
	return nil
}

// UpdateExpense replaces all non-id fields of an existing expense.
func (l *Ledger) UpdateExpense(e Expense) error {
	i := l.expenseIndex(e.ID)
	if i < 0 {
		return ErrUnknownEntity
	}
	l.Expenses[i] = e
	return nil
}

// DeleteExpense removes an expense. Removing an absent id is a no-op.
func (l *Ledger) DeleteExpense(id string) {
	if i := l.expenseIndex(id); i >= 0 {
		l.Expenses = slices.Delete(l.Expenses, i, i+1)
	}
}

func (l *Ledger) paymentIndex(id string) int {
	return slices.IndexFunc(l.Payments, func(p Payment) bool { return p.ID == id })
}

func (l *Ledger) expenseIndex(id string) int {
	return slices.IndexFunc(l.Expenses, func(e Expense) bool { return e.ID == id })
}
