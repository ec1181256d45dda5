// Package remote is the networked backend: a key-authenticated JSON/REST
// data service holding the three collections.
//
// The wire contract is plain resource routing under the configured base URL:
//
//	GET    {base}/{collection}            fetch the whole collection
//	POST   {base}/{collection}            insert one record
//	PUT    {base}/{collection}/{id}       replace one record
//	DELETE {base}/{collection}/{id}       delete one record
//	PUT    {base}/{collection}            bulk insert-or-replace (array body)
//	DELETE {base}/{collection}?all=true   drop the whole collection
//
// Every request carries the access key in both the apikey header and an
// Authorization bearer token. Errors come back as {"message": "..."}.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/core"
	"github.com/msmraqeeb/Euro-IT-Accounts/internal/store"
)

const (
	colClients  = "clients"
	colPayments = "payments"
	colExpenses = "expenses"

	defaultTimeout = 30 * time.Second
)

type Client struct {
	base *url.URL
	key  string
	http *http.Client
}

// Ensure port conformance.
var (
	_ store.Loader       = (*Client)(nil)
	_ store.ClientStore  = (*Client)(nil)
	_ store.PaymentStore = (*Client)(nil)
	_ store.ExpenseStore = (*Client)(nil)
	_ store.Bulk         = (*Client)(nil)
	_ store.Pinger       = (*Client)(nil)
)

// New creates a remote backend client for the given endpoint and access key.
func New(rawURL, accessKey string) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(rawURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid store URL %q: %w", rawURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid store URL %q: scheme must be http or https", rawURL)
	}
	if strings.TrimSpace(accessKey) == "" {
		return nil, errors.New("missing store access key")
	}
	return &Client{
		base: base,
		key:  accessKey,
		http: &http.Client{Timeout: defaultTimeout},
	}, nil
}

// apiError is an HTTP-level rejection from the data service.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// do performs one JSON round trip. A non-nil returned *apiError means the
// service answered and refused; any other error means it could not be
// reached.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	// path arrives pre-escaped, so build the URL textually rather than
	// through url.URL.Path, which would escape it a second time.
	target := strings.TrimRight(c.base.String(), "/") + "/" + path
	if query != nil {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return &apiError{Status: resp.StatusCode, Message: readMessage(resp.Body)}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// readMessage extracts the service's error message, falling back to the raw
// body when it is not the usual JSON shape.
func readMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4<<10))
	if err != nil || len(raw) == 0 {
		return "request rejected"
	}
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(raw))
}

// classify turns a do() failure into the adapter error taxonomy: an answer
// from the service is a rejection, anything else is connectivity.
func classify(op string, err error) error {
	var api *apiError
	if errors.As(err, &api) {
		return store.Rejected(op, api.Message, nil)
	}
	return store.Connectivity(op, "data service unreachable", err)
}

// Ping is the connectivity probe: one bounded read of the clients
// collection. It must succeed before the configuration counts as connected.
func (c *Client) Ping(ctx context.Context) error {
	var discard json.RawMessage
	q := url.Values{"limit": {"1"}}
	if err := c.do(ctx, http.MethodGet, colClients, q, nil, &discard); err != nil {
		return store.Connectivity("remote.Ping", "data service unreachable", err)
	}
	return nil
}

// FetchAll loads the three collections concurrently and fails the whole load
// if any one fetch fails. Client normalization happens during decoding.
func (c *Client) FetchAll(ctx context.Context) (*core.Ledger, error) {
	var (
		clients  []core.Client
		payments []core.Payment
		expenses []core.Expense
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.do(ctx, http.MethodGet, colClients, nil, nil, &clients) })
	g.Go(func() error { return c.do(ctx, http.MethodGet, colPayments, nil, nil, &payments) })
	g.Go(func() error { return c.do(ctx, http.MethodGet, colExpenses, nil, nil, &expenses) })
	if err := g.Wait(); err != nil {
		return nil, store.Connectivity("remote.FetchAll", "cannot load data", err)
	}

	ledger := core.NewLedger()
	for _, cl := range clients {
		ledger.Clients[cl.ID] = cl
	}
	ledger.Payments = payments
	ledger.Expenses = expenses
	return ledger, nil
}

func (c *Client) AddClient(ctx context.Context, cl core.Client) error {
	if err := c.do(ctx, http.MethodPost, colClients, nil, cl, nil); err != nil {
		return classify("remote.AddClient", err)
	}
	return nil
}

func (c *Client) UpdateClient(ctx context.Context, cl core.Client) error {
	if err := c.do(ctx, http.MethodPut, colClients+"/"+url.PathEscape(cl.ID), nil, cl, nil); err != nil {
		return classify("remote.UpdateClient", err)
	}
	return nil
}

func (c *Client) DeleteClient(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, colClients+"/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return classify("remote.DeleteClient", err)
	}
	return nil
}

func (c *Client) AddPayment(ctx context.Context, p core.Payment) error {
	if err := c.do(ctx, http.MethodPost, colPayments, nil, p, nil); err != nil {
		return classify("remote.AddPayment", err)
	}
	return nil
}

func (c *Client) UpdatePayment(ctx context.Context, p core.Payment) error {
	if err := c.do(ctx, http.MethodPut, colPayments+"/"+url.PathEscape(p.ID), nil, p, nil); err != nil {
		return classify("remote.UpdatePayment", err)
	}
	return nil
}

func (c *Client) DeletePayment(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, colPayments+"/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return classify("remote.DeletePayment", err)
	}
	return nil
}

func (c *Client) AddExpense(ctx context.Context, e core.Expense) error {
	if err := c.do(ctx, http.MethodPost, colExpenses, nil, e, nil); err != nil {
		return classify("remote.AddExpense", err)
	}
	return nil
}

func (c *Client) UpdateExpense(ctx context.Context, e core.Expense) error {
	if err := c.do(ctx, http.MethodPut, colExpenses+"/"+url.PathEscape(e.ID), nil, e, nil); err != nil {
		return classify("remote.UpdateExpense", err)
	}
	return nil
}

func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, colExpenses+"/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return classify("remote.DeleteExpense", err)
	}
	return nil
}

// UpsertAll bulk-replaces collection by collection: clients, then payments,
// then expenses. The first failing collection aborts the rest.
func (c *Client) UpsertAll(ctx context.Context, clients []core.Client, payments []core.Payment, expenses []core.Expense) error {
	if len(clients) > 0 {
		if err := c.do(ctx, http.MethodPut, colClients, nil, clients, nil); err != nil {
			return classify("remote.UpsertAll(clients)", err)
		}
	}
	if len(payments) > 0 {
		if err := c.do(ctx, http.MethodPut, colPayments, nil, payments, nil); err != nil {
			return classify("remote.UpsertAll(payments)", err)
		}
	}
	if len(expenses) > 0 {
		if err := c.do(ctx, http.MethodPut, colExpenses, nil, expenses, nil); err != nil {
			return classify("remote.UpsertAll(expenses)", err)
		}
	}
	return nil
}

// ClearAll drops every collection, payments and expenses before clients so a
// service enforcing foreign keys never sees a referenced client vanish first.
func (c *Client) ClearAll(ctx context.Context) error {
	all := url.Values{"all": {"true"}}
	for _, col := range []string{colPayments, colExpenses, colClients} {
		if err := c.do(ctx, http.MethodDelete, col, all, nil, nil); err != nil {
			return classify("remote.ClearAll("+col+")", err)
		}
	}
	return nil
}
