package http

import (
	"time"

	"tally/internal/core"
)

// Amounts travel as decimal strings ("12.50") and dates as ISO
// "YYYY-MM-DD", matching the CSV representation.

type transactionRequest struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Account     string `json:"account"`
}

type transactionResponse struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Account     string `json:"account"`
	CreatedAt   string `json:"created_at"`
}

func (req transactionRequest) toDomain() (core.Transaction, error) {
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	txType, err := core.ParseTxType(req.Type)
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := core.ParseMoney(req.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		Date:        date,
		Type:        txType,
		Category:    req.Category,
		Description: req.Description,
		Amount:      amount,
		Account:     req.Account,
	}, nil
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		Date:        t.Date.Format(),
		Type:        string(t.Type),
		Category:    t.Category,
		Description: t.Description,
		Amount:      t.Amount.String(),
		Account:     t.Account,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toTransactionResponses(txns []core.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, toTransactionResponse(t))
	}
	return out
}

type budgetRequest struct {
	Month    string `json:"month"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

type budgetResponse struct {
	Month    string `json:"month"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

type ruleRequest struct {
	Type        string `json:"type"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Interval    string `json:"interval"`
	NextDate    string `json:"next_date"`
}

type ruleResponse struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Interval    string `json:"interval"`
	NextDate    string `json:"next_date"`
}

func (req ruleRequest) toDomain() (core.RecurringRule, error) {
	next, err := core.ParseDate(req.NextDate)
	if err != nil {
		return core.RecurringRule{}, err
	}
	txType, err := core.ParseTxType(req.Type)
	if err != nil {
		return core.RecurringRule{}, err
	}
	amount, err := core.ParseMoney(req.Amount)
	if err != nil {
		return core.RecurringRule{}, err
	}
	return core.RecurringRule{
		Type:        txType,
		Category:    req.Category,
		Description: req.Description,
		Amount:      amount,
		Interval:    core.Interval(req.Interval),
		NextDate:    next,
	}, nil
}

func toRuleResponse(r core.RecurringRule) ruleResponse {
	return ruleResponse{
		ID:          r.ID,
		Type:        string(r.Type),
		Category:    r.Category,
		Description: r.Description,
		Amount:      r.Amount.String(),
		Interval:    string(r.Interval),
		NextDate:    r.NextDate.Format(),
	}
}

type summaryResponse struct {
	Expenses string `json:"expenses"`
	Income   string `json:"income"`
	Balance  string `json:"balance"`
	Count    int    `json:"count"`
}

type trendEntry struct {
	Month  string `json:"month"`
	Type   string `json:"type"`
	Amount string `json:"amount"`
}

type categoryTotalEntry struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

type budgetLineEntry struct {
	Category  string `json:"category"`
	Budget    string `json:"budget"`
	Actual    string `json:"actual"`
	Remaining string `json:"remaining"`
}
