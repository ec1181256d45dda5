// Package core holds the bookkeeping domain: clients, payments, expenses and
// the ledger aggregate that the rest of the application reads from. All types
// here are plain values with no I/O; persistence backends and HTTP handlers
// translate to and from them at their boundaries.
package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// KindReceived marks a payment that increases net income.
	KindReceived PaymentKind = "received"
	// KindRefund marks a payment that decreases net income. The amount stays
	// non-negative; direction is carried by the kind, never by the sign.
	KindRefund PaymentKind = "refund"

	// DefaultMethod is the payment method assumed when a record carries none.
	DefaultMethod = "Cash"

	// UnknownClientName labels payments whose client id no longer resolves.
	// The store enforces no referential integrity, so this is a display rule,
	// not an error.
	UnknownClientName = "Unknown"
)

type (
	PaymentKind string

	// Client is somebody the business bills. TotalBilled is the agreed total
	// revenue expected from this client, a contractual ceiling rather than a
	// running balance.
	Client struct {
		ID          string          `json:"id"`
		Name        string          `json:"name"`
		Email       string          `json:"email,omitempty"`
		Phone       string          `json:"phone,omitempty"`
		Company     string          `json:"company,omitempty"`
		Notes       string          `json:"notes,omitempty"`
		TotalBilled decimal.Decimal `json:"totalBilled"`
		IsActive    bool            `json:"isActive"`
		CreatedAt   time.Time       `json:"createdAt"`
	}

	// Payment is money received from (or refunded to) a client.
	Payment struct {
		ID          string          `json:"id"`
		ClientID    string          `json:"clientId"`
		Amount      decimal.Decimal `json:"amount"`
		Date        Date            `json:"date"`
		Description string          `json:"description,omitempty"`
		Method      string          `json:"method,omitempty"`
		Details     string          `json:"details,omitempty"`
		Kind        PaymentKind     `json:"kind,omitempty"`
	}

	// Expense is money spent, labelled with a free-text category. Categories
	// are compared byte-for-byte: "Travel" and "travel" are distinct buckets.
	Expense struct {
		ID          string          `json:"id"`
		Category    string          `json:"category"`
		Amount      decimal.Decimal `json:"amount"`
		Date        Date            `json:"date"`
		Description string          `json:"description,omitempty"`
	}
)

var (
	ErrMissingID       = errors.New("missing id")
	ErrMissingDate     = errors.New("missing date")
	ErrEmptyName       = errors.New("client name can't be empty")
	ErrEmptyCategory   = errors.New("expense category can't be empty")
	ErrEmptyClientID   = errors.New("payment must reference a client")
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrUnknownKind     = errors.New("unknown payment kind")
	ErrUnknownEntity   = errors.New("no such entity")
	ErrDuplicateEntity = errors.New("entity id already exists")
)

func init() {
	// Amounts travel as JSON numbers, matching the import/export file format.
	decimal.MarshalJSONWithoutQuotes = true
}

// Valid reports whether k is a known discriminator. The empty kind is valid
// and read as received.
func (k PaymentKind) Valid() bool {
	return k == "" || k == KindReceived || k == KindRefund
}

// Signed returns amount with the sign this kind contributes to net income.
func (k PaymentKind) Signed(amount decimal.Decimal) decimal.Decimal {
	if k == KindRefund {
		return amount.Neg()
	}
	return amount
}

// NewID generates a fresh globally unique entity id.
func NewID() string {
	return uuid.NewString()
}

// NewClient creates a client with a fresh id, active by default.
func NewClient(name string) Client {
	return Client{
		ID:        NewID(),
		Name:      name,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

// NewPayment creates a received payment with a fresh id.
func NewPayment(clientID string, amount decimal.Decimal, date Date) Payment {
	return Payment{
		ID:       NewID(),
		ClientID: clientID,
		Amount:   amount,
		Date:     date,
		Kind:     KindReceived,
	}
}

// NewExpense creates an expense with a fresh id.
func NewExpense(category string, amount decimal.Decimal, date Date) Expense {
	return Expense{
		ID:       NewID(),
		Category: category,
		Amount:   amount,
		Date:     date,
	}
}

func (c Client) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if c.TotalBilled.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

func (p Payment) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(p.ClientID) == "" {
		return ErrEmptyClientID
	}
	if p.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if !p.Kind.Valid() {
		return ErrUnknownKind
	}
	return p.Date.Validate()
}

// ResolvedKind returns the discriminator with the absent value read as
// received.
func (p Payment) ResolvedKind() PaymentKind {
	if p.Kind == "" {
		return KindReceived
	}
	return p.Kind
}

// ResolvedMethod returns the payment method with the absent value read as
// DefaultMethod.
func (p Payment) ResolvedMethod() string {
	if strings.TrimSpace(p.Method) == "" {
		return DefaultMethod
	}
	return p.Method
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if e.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	return e.Date.Validate()
}
