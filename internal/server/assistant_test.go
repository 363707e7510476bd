// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)

func newTestAssistant() (*Assistant, *Ledger) {
	l := NewLedger()
	return NewAssistant(l, func() time.Time { return testNow }), l
}

func TestAssistant_CreateBudget(t *testing.T) {
	tests := []struct {
		input    string
		category string
		limit    float64
	}{
		{"Create a $300 budget for rent", "Rent", 300},
		{"Create a budget of $300 for Transportation this month", "Transportation", 300},
		{"Set up a $1000 budget for rent", "Rent", 1000},
		{"create a $1,250.50 budget for groceries.", "Groceries", 1250.50},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			a, l := newTestAssistant()
			reply := a.Reply(tc.input)

			assert.True(t, strings.HasPrefix(reply, "✅ Budget created successfully!"), "reply = %q", reply)
			budgets := l.Budgets()
			require.Len(t, budgets, 1)
			assert.Equal(t, tc.category, budgets[0].Category)
			assert.Equal(t, tc.limit, budgets[0].MonthlyLimit)
			assert.Equal(t, 2025, budgets[0].Year)
			assert.Equal(t, 3, budgets[0].Month)
			assert.Equal(t, DefaultAlertThreshold, budgets[0].AlertThreshold)
		})
	}
}

func TestAssistant_CreateBudgetDuplicate(t *testing.T) {
	a, l := newTestAssistant()
	a.Reply("Create a $300 budget for rent")
	reply := a.Reply("Create a $500 budget for Rent")

	assert.Equal(t, "❌ Budget for Rent already exists for 3/2025. Current limit: $300.00", reply)
	assert.Len(t, l.Budgets(), 1)
}

func TestAssistant_Transactions(t *testing.T) {
	tests := []struct {
		input    string
		amount   float64
		desc     string
		category string
		typ      TransactionType
	}{
		{"Add $50 expense for groceries to Food category", 50, "groceries", "Food", Expense},
		{"Add $50 expense for groceries", 50, "groceries", "Food", Expense},
		{"I spent $25 on coffee today", 25, "coffee", "Food", Expense},
		{"I spent $40 on books", 40, "books", "Books", Expense},
		{"I received $3000 salary", 3000, "salary", "Salary", Income},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			a, l := newTestAssistant()
			reply := a.Reply(tc.input)

			require.Contains(t, reply, "Transaction added successfully!")
			txs := l.Recent(10)
			require.Len(t, txs, 1)
			assert.Equal(t, tc.amount, txs[0].Amount)
			assert.Equal(t, tc.desc, txs[0].Description)
			assert.Equal(t, tc.category, txs[0].Category)
			assert.Equal(t, tc.typ, txs[0].Type)
		})
	}
}

func TestAssistant_TransactionReplyFormat(t *testing.T) {
	a, _ := newTestAssistant()
	reply := a.Reply("I spent $25 on coffee today")

	want := "💸 Transaction added successfully!\n💵 Amount: $25.00\n📝 Description: coffee\n🏷️ Category: Food\n📅 Date: Mar 14, 2025\n🔄 Type: EXPENSE\n"
	if reply != want {
		t.Errorf("Reply() = %q, want %q", reply, want)
	}
}

func TestAssistant_ListBudgets(t *testing.T) {
	a, _ := newTestAssistant()

	assert.Equal(t, "📋 No active budgets found. Create your first budget to get started!",
		a.Reply("Show me all my current budgets"))

	a.Reply("Create a $100 budget for Food")
	a.Reply("I spent $85 on groceries")

	reply := a.Reply("Show me all my current budgets")
	assert.Contains(t, reply, "📋 **Current Active Budgets:**")
	assert.Contains(t, reply, "⚠️ **Food**")
	assert.Contains(t, reply, "💸 Spent: $85.00 (85.0%)")
	assert.Contains(t, reply, "💵 Remaining: $15.00")
}

func TestAssistant_SummaryAndAdvice(t *testing.T) {
	a, _ := newTestAssistant()
	a.Reply("I received $1000 salary")
	a.Reply("I spent $900 on rent")

	summary := a.Reply("Show me my current spending")
	assert.Contains(t, summary, "💰 Total Income: $1000.00")
	assert.Contains(t, summary, "💸 Total Expenses: $900.00")
	assert.Contains(t, summary, "📈 Status: Positive ✅")

	advice := a.Reply("Give me financial advice based on my spending")
	assert.Contains(t, advice, "10.0%")
}

func TestAssistant_Prompts(t *testing.T) {
	a, l := newTestAssistant()

	assert.Contains(t, a.Reply("I want to add an expense"), "Add $50 expense for groceries")
	assert.Contains(t, a.Reply("Help me create a new budget"), "Create a $300 budget for rent")
	assert.Contains(t, a.Reply("what's the weather"), "I can add income and expenses")
	assert.Empty(t, l.Recent(10))
	assert.Empty(t, l.Budgets())
}

func TestTrimTail(t *testing.T) {
	tests := []struct{ in, want string }{
		{"coffee today", "coffee"},
		{"Transportation this month.", "Transportation"},
		{"rent", "rent"},
		{"lunch yesterday please", "lunch"},
	}
	for _, tc := range tests {
		if got := trimTail(tc.in); got != tc.want {
			t.Errorf("trimTail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
