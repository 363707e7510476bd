// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultAlertThreshold is the spent percentage at which a budget is flagged.
const DefaultAlertThreshold = 80.0

// ErrBudgetExists is returned when a category already has a budget for the period.
var ErrBudgetExists = errors.New("budget already exists")

// =============================================================================
// TYPES
// =============================================================================

// TransactionType is INCOME or EXPENSE.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// Transaction is one recorded income or expense.
type Transaction struct {
	ID          string
	Amount      float64
	Description string
	Category    string
	Type        TransactionType
	Date        time.Time
	CreatedAt   time.Time
}

// Budget is a monthly spending limit for a category.
type Budget struct {
	ID             string
	Category       string
	MonthlyLimit   float64
	Year           int
	Month          int
	AlertThreshold float64
	Notes          string
}

// Totals mirrors the client's quick stats.
type Totals struct {
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetAmount     float64 `json:"netAmount"`
}

// =============================================================================
// LEDGER
// =============================================================================

// Ledger stores budgets and transactions in memory.
type Ledger struct {
	mu           sync.RWMutex
	transactions []Transaction
	budgets      []Budget
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// AddTransaction records tx, assigning an id.
func (l *Ledger) AddTransaction(tx Transaction) Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx.ID = uuid.NewString()
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = tx.Date
	}
	l.transactions = append(l.transactions, tx)
	return tx
}

// CreateBudget records b. A category may have one budget per month.
func (l *Ledger) CreateBudget(b Budget) (Budget, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, existing := range l.budgets {
		if strings.EqualFold(existing.Category, b.Category) && existing.Year == b.Year && existing.Month == b.Month {
			return existing, ErrBudgetExists
		}
	}
	if b.AlertThreshold == 0 {
		b.AlertThreshold = DefaultAlertThreshold
	}
	b.ID = uuid.NewString()
	l.budgets = append(l.budgets, b)
	return b, nil
}

// Budgets returns all budgets ordered by period then category.
func (l *Ledger) Budgets() []Budget {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Budget, len(l.budgets))
	copy(out, l.budgets)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Totals sums income and expenses for a calendar month.
func (l *Ledger) Totals(year, month int) Totals {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var t Totals
	for _, tx := range l.transactions {
		if !inMonth(tx.Date, year, month) {
			continue
		}
		switch tx.Type {
		case Income:
			t.TotalIncome += tx.Amount
		case Expense:
			t.TotalExpenses += tx.Amount
		}
	}
	t.NetAmount = t.TotalIncome - t.TotalExpenses
	return t
}

// Spent sums expenses in category for a calendar month and counts the
// category's transactions.
func (l *Ledger) Spent(category string, year, month int) (float64, int) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var (
		spent float64
		count int
	)
	for _, tx := range l.transactions {
		if !strings.EqualFold(tx.Category, category) || !inMonth(tx.Date, year, month) {
			continue
		}
		count++
		if tx.Type == Expense {
			spent += tx.Amount
		}
	}
	return spent, count
}

// Recent returns up to n transactions, newest first.
func (l *Ledger) Recent(n int) []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Transaction, 0, n)
	for i := len(l.transactions) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.transactions[i])
	}
	return out
}

func inMonth(t time.Time, year, month int) bool {
	return t.Year() == year && int(t.Month()) == month
}

// =============================================================================
// CONVERSATION MEMORY
// =============================================================================

// MemoryRecord is one remembered message, shaped like the Spring AI
// message the real backend returns from /chat/history.
type MemoryRecord struct {
	MessageType string            `json:"messageType"`
	Text        string            `json:"text"`
	Metadata    map[string]string `json:"metadata"`
}

// Memory is the assistant's conversation memory.
type Memory struct {
	mu      sync.Mutex
	records []MemoryRecord
	max     int
}

// NewMemory keeps at most max records (0 = unbounded).
func NewMemory(max int) *Memory {
	return &Memory{max: max}
}

// Append remembers one exchange.
func (m *Memory) Append(user, assistant string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records,
		MemoryRecord{MessageType: "USER", Text: user, Metadata: map[string]string{"messageType": "USER"}},
		MemoryRecord{MessageType: "ASSISTANT", Text: assistant, Metadata: map[string]string{"messageType": "ASSISTANT"}},
	)
	if m.max > 0 && len(m.records) > m.max {
		m.records = m.records[len(m.records)-m.max:]
	}
}

// Records returns a copy of the remembered messages, oldest first.
func (m *Memory) Records() []MemoryRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]MemoryRecord, len(m.records))
	copy(out, m.records)
	return out
}

// Clear forgets everything.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
}
