package model

import "fmt"

// BalanceDisplay renders a credit balance the way the dashboard shows it.
// Negative balances are classes taken on credit that still need paying for.
func BalanceDisplay(balance int) string {
	if balance < 0 {
		// uint keeps math.MinInt from overflowing on negation.
		return fmt.Sprintf("payment due for %d classes", uint(-balance))
	}
	return fmt.Sprintf("%d classes left", balance)
}

// Balance is the student-facing view of a credit balance.
type Balance struct {
	Credits int    `json:"credits"`
	Display string `json:"display"`
}

// NewBalance pairs a balance with its display string.
func NewBalance(credits int) Balance {
	return Balance{Credits: credits, Display: BalanceDisplay(credits)}
}
