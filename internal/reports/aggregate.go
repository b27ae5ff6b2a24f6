package reports

import (
	"time"

	"spendwize/internal/models"

	"github.com/shopspring/decimal"
)

// Entry is the projection of a transaction row that the aggregators read.
// Amount is nullable so a missing value counts as zero instead of failing
// the scan.
type Entry struct {
	CategoryID      *string                `json:"category_id"`
	CategoryName    *string                `json:"category_name"`
	Type            models.TransactionType `json:"type"`
	Amount          decimal.NullDecimal    `json:"amount"`
	TransactionDate time.Time              `json:"transaction_date"`
}

// EntryColumns is the column projection that fills an Entry.
var EntryColumns = []string{"category_id", "category_name", "type", "amount", "transaction_date"}

// Point is one bucket of an expense series.
type Point struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

// ExpenseSeries folds entries into one point per bucket of w, in ascending
// key order. Every bucket is present even when nothing was spent in it.
// Income rows and rows dated outside w are ignored.
func ExpenseSeries(w Window, entries []Entry) []Point {
	keys := w.Keys()
	totals := make(map[string]decimal.Decimal, len(keys))
	for _, k := range keys {
		totals[k] = decimal.Zero
	}

	for _, e := range entries {
		if e.Type != models.TransactionTypeExpense || !w.Contains(e.TransactionDate) {
			continue
		}
		k := w.Key(e.TransactionDate)
		total, ok := totals[k]
		if !ok {
			continue
		}
		if e.Amount.Valid {
			totals[k] = total.Add(e.Amount.Decimal)
		}
	}

	points := make([]Point, len(keys))
	for i, k := range keys {
		points[i] = Point{Key: k, Label: w.Label(k), Total: totals[k]}
	}
	return points
}

// UncategorizedKey groups expenses that carry neither a category id nor a
// category name; UncategorizedLabel is its display name.
const (
	UncategorizedKey   = "uncategorized"
	UncategorizedLabel = "Uncategorized"
)

// Palette is cycled over pie slices in first-seen order.
var Palette = []string{
	"var(--chart-1)",
	"var(--chart-2)",
	"var(--chart-3)",
	"var(--chart-4)",
	"var(--chart-5)",
	"var(--chart-6)",
}

// Slice is one segment of the category breakdown.
type Slice struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
	Fill  string          `json:"fill"`
}

// ExpensesByCategory sums expense entries per category. Entries are keyed by
// category id, falling back to the snapshot name and then to
// UncategorizedKey, so an id-less "Food" never merges into a category that
// has an id. Slices come out in the order their key was first seen and are
// labelled with the last name seen, so a renamed category shows its latest
// name when entries arrive oldest first.
func ExpensesByCategory(entries []Entry) []Slice {
	index := make(map[string]int)
	var slices []Slice

	for _, e := range entries {
		if e.Type != models.TransactionTypeExpense {
			continue
		}
		key, label := sliceKey(e)
		i, ok := index[key]
		if !ok {
			i = len(slices)
			index[key] = i
			slices = append(slices, Slice{
				Key:   key,
				Label: label,
				Total: decimal.Zero,
				Fill:  Palette[i%len(Palette)],
			})
		}
		slices[i].Label = label
		if e.Amount.Valid {
			slices[i].Total = slices[i].Total.Add(e.Amount.Decimal)
		}
	}
	return slices
}

func sliceKey(e Entry) (key, label string) {
	label = UncategorizedLabel
	if e.CategoryName != nil && *e.CategoryName != "" {
		label = *e.CategoryName
	}
	switch {
	case e.CategoryID != nil && *e.CategoryID != "":
		return *e.CategoryID, label
	case e.CategoryName != nil && *e.CategoryName != "":
		return *e.CategoryName, label
	}
	return UncategorizedKey, label
}
