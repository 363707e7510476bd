// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// =============================================================================
// PATTERNS
// =============================================================================

const amountPattern = `\$?(\d+(?:,\d{3})*(?:\.\d{1,2})?)`

var (
	createBudgetRe = regexp.MustCompile(`(?i)\b(?:create|set\s*up|make|add)\s+(?:an?\s+)?(?:new\s+)?(?:monthly\s+)?(?:budget\s+of\s+)?` +
		amountPattern + `\s*(?:monthly\s+)?(?:budget\s+)?for\s+(.+)$`)
	addExpenseRe = regexp.MustCompile(`(?i)\badd\s+(?:an?\s+)?` + amountPattern +
		`\s+expense\s+(?:for|on)\s+(.+?)(?:\s+to\s+(?:the\s+)?(.+?)\s+category)?$`)
	spentRe = regexp.MustCompile(`(?i)\bi\s+(?:spent|paid)\s+` + amountPattern + `\s+(?:on|for)\s+(.+)$`)
	incomeRe = regexp.MustCompile(`(?i)\bi\s+(?:received|earned|got|was\s+paid)\s+` + amountPattern +
		`(?:\s+(?:from|for|as|in))?\s*(.*)$`)
)

// tailWords are trailing time phrases dropped from descriptions.
var tailWords = []string{"this month", "today", "yesterday", "please"}

// categoryKeywords maps description words to a category.
var categoryKeywords = map[string]string{
	"coffee": "Food", "groceries": "Food", "grocery": "Food", "lunch": "Food",
	"dinner": "Food", "breakfast": "Food", "restaurant": "Food", "food": "Food",
	"gas": "Transportation", "fuel": "Transportation", "uber": "Transportation",
	"taxi": "Transportation", "bus": "Transportation", "train": "Transportation",
	"parking": "Transportation",
	"rent": "Housing", "mortgage": "Housing",
	"electricity": "Utilities", "water": "Utilities", "internet": "Utilities", "phone": "Utilities",
	"movie": "Entertainment", "movies": "Entertainment", "netflix": "Entertainment",
	"concert": "Entertainment", "games": "Entertainment",
}


// =============================================================================
// ASSISTANT
// =============================================================================

// Assistant answers chat messages by acting on a Ledger.
type Assistant struct {
	ledger *Ledger
	now    func() time.Time
}

// NewAssistant creates an assistant over ledger.
func NewAssistant(ledger *Ledger, now func() time.Time) *Assistant {
	if now == nil {
		now = time.Now
	}
	return &Assistant{ledger: ledger, now: now}
}

// Reply handles one user message and returns the assistant's markdown reply.
func (a *Assistant) Reply(message string) string {
	text := strings.TrimSpace(message)
	lower := strings.ToLower(text)
	now := a.now()

	if strings.Contains(lower, "budget") {
		if m := createBudgetRe.FindStringSubmatch(text); m != nil {
			return a.createBudget(parseAmount(m[1]), m[2], now)
		}
	}
	if m := addExpenseRe.FindStringSubmatch(text); m != nil {
		return a.addTransaction(parseAmount(m[1]), m[2], m[3], Expense, lower, now)
	}
	if m := spentRe.FindStringSubmatch(text); m != nil {
		return a.addTransaction(parseAmount(m[1]), m[2], "", Expense, lower, now)
	}
	if m := incomeRe.FindStringSubmatch(text); m != nil {
		return a.addTransaction(parseAmount(m[1]), m[2], "", Income, lower, now)
	}

	switch {
	case strings.Contains(lower, "advice"):
		return a.advice(now)
	case strings.Contains(lower, "budget") && containsAny(lower, "show", "list", "current", "all", "what"):
		return a.listBudgets()
	case containsAny(lower, "how much", "spending", "summary", "spent so far"):
		return a.summary(now)
	case strings.Contains(lower, "transaction"):
		return a.recent()
	case containsAny(lower, "add an expense", "add expense", "add a expense"):
		return "Sure! Tell me the amount, what it was for and the category, for example:\n" +
			"- \"Add $50 expense for groceries to Food category\"\n" +
			"- \"I spent $25 on coffee today\""
	case strings.Contains(lower, "budget"):
		return "Let's set up a budget. Give me a category and a monthly limit, for example:\n" +
			"- \"Create a $300 budget for rent\"\n" +
			"- \"Create a budget of $300 for Transportation this month\""
	case containsAny(lower, "hello", "hi ", "hey") || lower == "hi":
		return "Hello! How can I help with your budget today?"
	}

	return "I can add income and expenses, create budgets, and summarize your spending. " +
		"Try \"Add $50 expense for groceries\" or \"Show me all my current budgets\"."
}

// =============================================================================
// ACTIONS
// =============================================================================

func (a *Assistant) createBudget(limit float64, phrase string, now time.Time) string {
	if limit <= 0 {
		return "❌ Monthly limit must be greater than 0"
	}
	category := titleCase(trimTail(phrase))
	if category == "" {
		return "❌ Please tell me which category the budget is for."
	}

	b, err := a.ledger.CreateBudget(Budget{
		Category:     category,
		MonthlyLimit: limit,
		Year:         now.Year(),
		Month:        int(now.Month()),
	})
	if errors.Is(err, ErrBudgetExists) {
		return fmt.Sprintf("❌ Budget for %s already exists for %d/%d. Current limit: $%.2f",
			b.Category, b.Month, b.Year, b.MonthlyLimit)
	}

	notes := b.Notes
	if notes == "" {
		notes = "None"
	}
	return fmt.Sprintf("✅ Budget created successfully!\n📋 Category: %s\n💰 Monthly Limit: $%.2f\n📅 Period: %d/%d\n⚠️ Alert Threshold: %.1f%%\n📝 Notes: %s\n",
		b.Category, b.MonthlyLimit, b.Month, b.Year, b.AlertThreshold, notes)
}

func (a *Assistant) addTransaction(amount float64, desc, category string, typ TransactionType, lower string, now time.Time) string {
	if amount <= 0 {
		return "❌ Amount must be greater than 0"
	}

	desc = trimTail(desc)
	category = strings.TrimSpace(category)
	if category == "" {
		category = inferCategory(desc, typ)
	} else {
		category = titleCase(category)
	}
	if desc == "" {
		desc = category
	}

	date := now
	if strings.Contains(lower, "yesterday") {
		date = now.AddDate(0, 0, -1)
	}

	tx := a.ledger.AddTransaction(Transaction{
		Amount:      amount,
		Description: desc,
		Category:    category,
		Type:        typ,
		Date:        date,
		CreatedAt:   now,
	})

	emoji := "💸"
	if typ == Income {
		emoji = "💰"
	}
	return fmt.Sprintf("%s Transaction added successfully!\n💵 Amount: $%.2f\n📝 Description: %s\n🏷️ Category: %s\n📅 Date: %s\n🔄 Type: %s\n",
		emoji, tx.Amount, tx.Description, tx.Category, tx.Date.Format("Jan 02, 2006"), tx.Type)
}

func (a *Assistant) listBudgets() string {
	budgets := a.ledger.Budgets()
	if len(budgets) == 0 {
		return "📋 No active budgets found. Create your first budget to get started!"
	}

	var sb strings.Builder
	sb.WriteString("📋 **Current Active Budgets:**\n\n")
	for _, b := range budgets {
		spent, _ := a.ledger.Spent(b.Category, b.Year, b.Month)
		percent := 0.0
		if b.MonthlyLimit > 0 {
			percent = spent / b.MonthlyLimit * 100
		}
		status := "✅"
		if percent >= b.AlertThreshold {
			status = "⚠️"
		}
		fmt.Fprintf(&sb, "%s **%s**\n  💰 Budget: $%.2f\n  💸 Spent: $%.2f (%.1f%%)\n  💵 Remaining: $%.2f\n  📅 Period: %d/%d\n",
			status, b.Category, b.MonthlyLimit, spent, percent, b.MonthlyLimit-spent, b.Month, b.Year)
		if strings.TrimSpace(b.Notes) != "" {
			fmt.Fprintf(&sb, "  📝 Notes: %s\n", b.Notes)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (a *Assistant) summary(now time.Time) string {
	year, month := now.Year(), int(now.Month())
	t := a.ledger.Totals(year, month)

	status := "Positive ✅"
	if t.NetAmount < 0 {
		status = "Negative ⚠️"
	}
	return fmt.Sprintf("📊 **Monthly Summary for %d/%d:**\n\n💰 Total Income: $%.2f\n💸 Total Expenses: $%.2f\n💵 Net Amount: $%.2f\n📈 Status: %s\n",
		month, year, t.TotalIncome, t.TotalExpenses, t.NetAmount, status)
}

func (a *Assistant) recent() string {
	txs := a.ledger.Recent(10)
	if len(txs) == 0 {
		return "📝 No transactions found. Add your first transaction to get started!"
	}

	var sb strings.Builder
	sb.WriteString("📝 **Recent Transactions:**\n\n")
	for _, tx := range txs {
		emoji := "💸"
		if tx.Type == Income {
			emoji = "💰"
		}
		fmt.Fprintf(&sb, "%s $%.2f - %s\n  🏷️ %s | 📅 %s\n", emoji, tx.Amount, tx.Description, tx.Category, tx.Date.Format("Jan 02, 2006"))
	}
	return sb.String()
}

func (a *Assistant) advice(now time.Time) string {
	t := a.ledger.Totals(now.Year(), int(now.Month()))
	if t.TotalIncome == 0 && t.TotalExpenses == 0 {
		return "I don't see any transactions this month yet. Start by recording your income and " +
			"a few expenses, then set a budget for your biggest categories."
	}
	if t.TotalIncome == 0 {
		return fmt.Sprintf("You've spent $%.2f this month but recorded no income. "+
			"Add your income so I can tell how much room you have.", t.TotalExpenses)
	}

	rate := t.NetAmount / t.TotalIncome * 100
	switch {
	case rate < 0:
		return fmt.Sprintf("⚠️ You're spending more than you earn this month (net $%.2f). "+
			"Look at your largest categories and set budgets to cap them.", t.NetAmount)
	case rate < 20:
		return fmt.Sprintf("You're saving %.1f%% of your income. Aim for at least 20%% by trimming "+
			"discretionary spending like dining out and entertainment.", rate)
	default:
		return fmt.Sprintf("✅ Nice work! You're saving %.1f%% of your income this month. "+
			"Consider moving part of the surplus into savings or an emergency fund.", rate)
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// titleCase builds a Caser per call; Casers are not safe for concurrent use.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

func trimTail(s string) string {
	s = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), ".!?"))
	for changed := true; changed; {
		changed = false
		lower := strings.ToLower(s)
		for _, w := range tailWords {
			if (strings.HasSuffix(lower, " "+w) || lower == w) && len(s) >= len(w) {
				s = strings.TrimSpace(s[:len(s)-len(w)])
				changed = true
				break
			}
		}
	}
	return s
}

func inferCategory(desc string, typ TransactionType) string {
	for _, word := range strings.Fields(strings.ToLower(desc)) {
		if c, ok := categoryKeywords[word]; ok {
			return c
		}
	}
	if desc == "" {
		if typ == Income {
			return "Income"
		}
		return "Other"
	}
	return titleCase(desc)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
