package core

// Summary holds the dashboard KPIs for a filtered transaction set.
type Summary struct {
	Expenses Money
	Income   Money
	Balance  Money // Income - Expenses
	Count    int
}

// MonthTypeTotal is one point in the monthly trend: the sum of one
// transaction type within one calendar month.
type MonthTypeTotal struct {
	Month  string // "YYYY-MM"
	Type   TxType
	Amount Money
}

// CategoryTotal is an amount aggregated by category name.
type CategoryTotal struct {
	Category string
	Amount   Money
}

// BudgetLine compares one category's budget against actual spending for
// a month. Remaining goes negative when the budget is exceeded.
type BudgetLine struct {
	Category  string
	Budget    Money
	Actual    Money
	Remaining Money
}
