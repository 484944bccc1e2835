package core

import "sort"

const (
	StatusOver  Status = "over"
	StatusNear  Status = "near"
	StatusUnder Status = "under"
)

type (
	// Status classifies how far along a budget a trip's spending is.
	Status string

	// CategoryTotal is the aggregated spend for one observed category.
	CategoryTotal struct {
		Category Category
		Amount   Money
		Count    int
	}
)

// TotalBudget sums the budgets of all trips.
func TotalBudget(trips []Trip) Money {
	var sum int64
	for _, t := range trips {
		sum += t.TotalBudget.Cents
	}
	return Money{Cents: sum}
}

// TotalSpent sums the home-currency spending of all trips.
func TotalSpent(trips []Trip) Money {
	var sum int64
	for _, t := range trips {
		sum += t.SpentHome.Cents
	}
	return Money{Cents: sum}
}

// TotalSaved is budget minus spend; negative when over budget overall.
func TotalSaved(trips []Trip) Money {
	return Money{Cents: TotalBudget(trips).Cents - TotalSpent(trips).Cents}
}

// Percentage returns spent as a percentage of budget, clamped to 100 for
// progress display. A zero budget yields 0 rather than dividing by zero.
func Percentage(spent, budget Money) float64 {
	if budget.Cents == 0 {
		return 0
	}
	pct := float64(spent.Cents) / float64(budget.Cents) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// UsagePercent is the unclamped counterpart of Percentage, used to classify
// budget status. A zero budget yields 0.
func UsagePercent(spent, budget Money) float64 {
	if budget.Cents == 0 {
		return 0
	}
	return float64(spent.Cents) / float64(budget.Cents) * 100
}

// BudgetStatus classifies a raw usage percentage: over above 100, near in
// (90, 100], under otherwise.
func BudgetStatus(pct float64) Status {
	switch {
	case pct > 100:
		return StatusOver
	case pct > 90:
		return StatusNear
	default:
		return StatusUnder
	}
}

// CategoryBreakdown groups expenses by category. Only observed categories
// appear, in first-seen order; nothing is zero-filled.
func CategoryBreakdown(expenses []Expense) []CategoryTotal {
	index := make(map[Category]int)
	var out []CategoryTotal
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(out)
			index[e.Category] = i
			out = append(out, CategoryTotal{Category: e.Category})
		}
		out[i].Amount.Cents += e.Amount.Cents
		out[i].Count++
	}
	return out
}

// TopCategories returns the breakdown sorted descending by amount, truncated
// to n entries. The input slice is not modified.
func TopCategories(breakdown []CategoryTotal, n int) []CategoryTotal {
	sorted := append([]CategoryTotal(nil), breakdown...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.Cents > sorted[j].Amount.Cents
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
