package report

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/roach88/bizdesk/internal/model"
)

// InRange reports whether the ISO day falls within [start, end]. An empty
// bound is unbounded on that side.
func InRange(day, start, end string) bool {
	if start != "" && day < start {
		return false
	}
	if end != "" && day > end {
		return false
	}
	return true
}

// FilterSales returns the sales dated within [start, end]. With both bounds
// empty the input is returned as is.
func FilterSales(sales []model.Sale, start, end string) []model.Sale {
	if start == "" && end == "" {
		return sales
	}
	out := make([]model.Sale, 0, len(sales))
	for _, s := range sales {
		if InRange(s.Date, start, end) {
			out = append(out, s)
		}
	}
	return out
}

// FilterExpenses returns the expenses dated within [start, end].
func FilterExpenses(expenses []model.Expense, start, end string) []model.Expense {
	if start == "" && end == "" {
		return expenses
	}
	out := make([]model.Expense, 0, len(expenses))
	for _, e := range expenses {
		if InRange(e.Date, start, end) {
			out = append(out, e)
		}
	}
	return out
}

// TotalSales sums the sale totals.
func TotalSales(sales []model.Sale) float64 {
	acc := decimal.Zero
	for _, s := range sales {
		acc = acc.Add(decimal.NewFromFloat(s.Total))
	}
	return acc.InexactFloat64()
}

// TotalCost sums the cost snapshots of the sales.
func TotalCost(sales []model.Sale) float64 {
	acc := decimal.Zero
	for _, s := range sales {
		acc = acc.Add(decimal.NewFromFloat(s.Cost))
	}
	return acc.InexactFloat64()
}

// TotalProfit is TotalSales minus TotalCost.
func TotalProfit(sales []model.Sale) float64 {
	acc := decimal.Zero
	for _, s := range sales {
		acc = acc.Add(decimal.NewFromFloat(s.Total)).Sub(decimal.NewFromFloat(s.Cost))
	}
	return acc.InexactFloat64()
}

// TotalExpenses sums the expense values.
func TotalExpenses(expenses []model.Expense) float64 {
	acc := decimal.Zero
	for _, e := range expenses {
		acc = acc.Add(decimal.NewFromFloat(e.Value))
	}
	return acc.InexactFloat64()
}

// ExpensesByCategory sums expense values per category.
func ExpensesByCategory(expenses []model.Expense) map[string]float64 {
	sums := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		sums[e.Category] = sums[e.Category].Add(decimal.NewFromFloat(e.Value))
	}
	out := make(map[string]float64, len(sums))
	for cat, v := range sums {
		out[cat] = v.InexactFloat64()
	}
	return out
}

// ProductSales is the sold volume of one product across sales.
type ProductSales struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

// TopSelling groups sale lines by product id and returns the limit
// products with the highest quantity. Ties keep the order in which the
// products first appear in sales. Name is the first snapshot seen.
func TopSelling(sales []model.Sale, limit int) []ProductSales {
	type acc struct {
		first    int
		name     string
		quantity int
		revenue  decimal.Decimal
	}
	byID := make(map[string]*acc)
	var order []string
	for _, s := range sales {
		for _, item := range s.Items {
			a, ok := byID[item.ProductID]
			if !ok {
				a = &acc{first: len(order), name: item.Name}
				byID[item.ProductID] = a
				order = append(order, item.ProductID)
			}
			a.quantity += item.Quantity
			a.revenue = a.revenue.Add(decimal.NewFromFloat(item.Total))
		}
	}

	slices.SortStableFunc(order, func(x, y string) int {
		return cmp.Compare(byID[y].quantity, byID[x].quantity)
	})
	if limit >= 0 && len(order) > limit {
		order = order[:limit]
	}

	out := make([]ProductSales, 0, len(order))
	for _, id := range order {
		a := byID[id]
		out = append(out, ProductSales{
			ProductID: id,
			Name:      a.name,
			Quantity:  a.quantity,
			Revenue:   a.revenue.InexactFloat64(),
		})
	}
	return out
}
