package core

// Summary is a compact view of a collection.
type Summary struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

func Summarize(expenses []Expense) Summary {
	return Summary{Count: len(expenses), Total: Total(expenses)}
}

// Seed returns the example expenses used when nothing has been stored yet.
func Seed() []Expense {
	return []Expense{
		{ID: 1, Name: "Groceries", Amount: 250, Date: NewDate(2024, 5, 15)},
		{ID: 2, Name: "Rent", Amount: 250, Date: NewDate(2024, 6, 1)},
		{ID: 3, Name: "Utilities", Amount: 250, Date: NewDate(2024, 6, 5)},
		{ID: 4, Name: "Dining Out", Amount: 250, Date: NewDate(2024, 6, 10)},
	}
}

// NextID returns one past the highest id in expenses, or 1 when empty.
func NextID(expenses []Expense) int64 {
	var max int64
	for _, e := range expenses {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}
