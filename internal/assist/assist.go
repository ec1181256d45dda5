// Package assist renders a computed financial summary into a short
// plain-language paragraph using Gemini. The narrative is presentation
// sugar: it is never part of the bookkeeping correctness contract, and any
// failure here leaves the numbers untouched.
package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/report"
)

type Narrator struct {
	client *genai.Client
	model  string
}

// NewNarrator creates the Gemini-backed narrator. The client reads its API
// key from the environment; an unconfigured key surfaces as an error here,
// which callers treat as "narrative unavailable".
func NewNarrator(ctx context.Context, model string) (*Narrator, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("initialize Gemini client: %w", err)
	}
	return &Narrator{client: client, model: model}, nil
}

const promptTemplate = `You are an accountant writing for a small-business owner.
Summarize the figures below in one short paragraph of plain language.
Mention overall profitability and outstanding client dues. Do not invent numbers.

Net income: %s
Total expenses: %s
Net profit: %s
Total outstanding from clients: %s
Clients: %d (%d active)`

// Narrate produces the one-paragraph overview of a summary.
func (n *Narrator) Narrate(ctx context.Context, s report.Summary) (string, error) {
	prompt := fmt.Sprintf(promptTemplate,
		s.NetIncome.StringFixed(2),
		s.TotalExpenses.StringFixed(2),
		s.NetProfit.StringFixed(2),
		s.Outstanding.StringFixed(2),
		s.ClientCount, s.ActiveClients)

	resp, err := n.client.Models.GenerateContent(ctx, n.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate narrative: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("empty narrative response")
	}
	return text, nil
}
