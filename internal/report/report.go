// Package report computes read-only aggregations over the business data.
//
// Every report is a pure function of the collections and settings exposed
// by a Source plus the current time, which anchors the trailing month
// windows. Money sums use decimal arithmetic; percentages are rounded to
// one decimal place.
package report

import (
	"time"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"github.com/roach88/bizdesk/internal/format"
	"github.com/roach88/bizdesk/internal/model"
)

const (
	// FinancialMonths is the trailing window of the financial report.
	FinancialMonths = 12
	// ProfitMonths is the trailing window of the profit report.
	ProfitMonths = 6
	// TopProductsLimit is how many products the sales report ranks.
	TopProductsLimit = 10
)

// Source is the read view a Generator aggregates over.
type Source interface {
	Products() []model.Product
	Sales() []model.Sale
	Expenses() []model.Expense
	Settings() model.Settings
	Now() time.Time
}

// Generator builds reports from a Source.
type Generator struct {
	src Source
}

// New creates a Generator reading from src.
func New(src Source) *Generator {
	return &Generator{src: src}
}

// Period is the inclusive ISO day range a report covers. Empty bounds are
// open.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// MonthBucket is one month of the financial report.
type MonthBucket struct {
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Sales    float64 `json:"sales"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

// FinancialReport summarizes revenue, cost and expenses over a period.
type FinancialReport struct {
	Period             Period             `json:"period"`
	TotalSales         float64            `json:"totalSales"`
	TotalCost          float64            `json:"totalCost"`
	GrossProfit        float64            `json:"grossProfit"`
	TotalExpenses      float64            `json:"totalExpenses"`
	NetProfit          float64            `json:"netProfit"`
	ExpensesByCategory map[string]float64 `json:"expensesByCategory"`
	SalesByMonth       []MonthBucket      `json:"salesByMonth"`
	SalesCount         int                `json:"salesCount"`
	ExpensesCount      int                `json:"expensesCount"`
}

// Financial reports on the sales and expenses dated within [start, end].
// The monthly series always covers the twelve months ending with the
// current one; records outside that window count toward the totals only.
func (g *Generator) Financial(start, end string) FinancialReport {
	sales := FilterSales(g.src.Sales(), start, end)
	expenses := FilterExpenses(g.src.Expenses(), start, end)

	totalSales := TotalSales(sales)
	totalCost := TotalCost(sales)
	totalExpenses := TotalExpenses(expenses)
	gross := format.Profit(totalSales, totalCost)

	type bucket struct{ sales, expenses, profit decimal.Decimal }
	months := format.LastMonths(g.src.Now(), FinancialMonths)
	buckets := make(map[string]*bucket, len(months))
	for _, m := range months {
		buckets[m.Key] = &bucket{}
	}
	for _, s := range sales {
		if b, ok := buckets[format.MonthKey(s.Date)]; ok {
			total := decimal.NewFromFloat(s.Total)
			b.sales = b.sales.Add(total)
			b.profit = b.profit.Add(total).Sub(decimal.NewFromFloat(s.Cost))
		}
	}
	for _, e := range expenses {
		if b, ok := buckets[format.MonthKey(e.Date)]; ok {
			v := decimal.NewFromFloat(e.Value)
			b.expenses = b.expenses.Add(v)
			b.profit = b.profit.Sub(v)
		}
	}

	series := make([]MonthBucket, 0, len(months))
	for _, m := range months {
		b := buckets[m.Key]
		series = append(series, MonthBucket{
			Key:      m.Key,
			Label:    m.Label,
			Sales:    b.sales.InexactFloat64(),
			Expenses: b.expenses.InexactFloat64(),
			Profit:   b.profit.InexactFloat64(),
		})
	}

	return FinancialReport{
		Period:             Period{Start: start, End: end},
		TotalSales:         totalSales,
		TotalCost:          totalCost,
		GrossProfit:        gross,
		TotalExpenses:      totalExpenses,
		NetProfit:          format.Profit(gross, totalExpenses),
		ExpensesByCategory: ExpensesByCategory(expenses),
		SalesByMonth:       series,
		SalesCount:         len(sales),
		ExpensesCount:      len(expenses),
	}
}

// CategoryValue is the stock held in one category: Count units worth
// Value at cost.
type CategoryValue struct {
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

// StockReport summarizes the inventory.
type StockReport struct {
	TotalProducts      int                      `json:"totalProducts"`
	TotalItems         int                      `json:"totalItems"`
	TotalValue         float64                  `json:"totalValue"`
	TotalRetailValue   float64                  `json:"totalRetailValue"`
	PotentialProfit    float64                  `json:"potentialProfit"`
	Threshold          int                      `json:"threshold"`
	LowStock           int                      `json:"lowStock"`
	OutOfStock         int                      `json:"outOfStock"`
	LowStockProducts   []model.Product          `json:"lowStockProducts"`
	OutOfStockProducts []model.Product          `json:"outOfStockProducts"`
	ValueByCategory    map[string]CategoryValue `json:"valueByCategory"`
}

// Stock reports on the current inventory. A product is low on stock below
// the configured threshold, so an empty product counts as both low and
// out of stock.
func (g *Generator) Stock() StockReport {
	products := g.src.Products()
	threshold := g.src.Settings().LowStockThreshold

	r := StockReport{
		TotalProducts:      len(products),
		Threshold:          threshold,
		LowStockProducts:   []model.Product{},
		OutOfStockProducts: []model.Product{},
		ValueByCategory:    make(map[string]CategoryValue),
	}

	value, retail := decimal.Zero, decimal.Zero
	catValue := make(map[string]decimal.Decimal)
	for _, p := range products {
		qty := decimal.NewFromInt(int64(p.Stock))
		cost := decimal.NewFromFloat(p.Cost).Mul(qty)

		r.TotalItems += p.Stock
		value = value.Add(cost)
		retail = retail.Add(decimal.NewFromFloat(p.Price).Mul(qty))

		if p.Stock < threshold {
			r.LowStockProducts = append(r.LowStockProducts, p)
		}
		if p.Stock == 0 {
			r.OutOfStockProducts = append(r.OutOfStockProducts, p)
		}

		cv := r.ValueByCategory[p.Category]
		cv.Count += p.Stock
		r.ValueByCategory[p.Category] = cv
		catValue[p.Category] = catValue[p.Category].Add(cost)
	}
	for cat, v := range catValue {
		cv := r.ValueByCategory[cat]
		cv.Value = v.InexactFloat64()
		r.ValueByCategory[cat] = cv
	}

	r.TotalValue = value.InexactFloat64()
	r.TotalRetailValue = retail.InexactFloat64()
	r.PotentialProfit = retail.Sub(value).InexactFloat64()
	r.LowStock = len(r.LowStockProducts)
	r.OutOfStock = len(r.OutOfStockProducts)
	return r
}

// SalesReport summarizes the sales of a period.
type SalesReport struct {
	Period        Period         `json:"period"`
	Count         int            `json:"count"`
	TotalSales    float64        `json:"totalSales"`
	TotalCost     float64        `json:"totalCost"`
	TotalProfit   float64        `json:"totalProfit"`
	AverageTicket float64        `json:"averageTicket"`
	TopProducts   []ProductSales `json:"topProducts"`
}

// Sales reports on the sales dated within [start, end]. The top products
// ranking always covers the whole sales history.
func (g *Generator) Sales(start, end string) SalesReport {
	all := g.src.Sales()
	sales := FilterSales(all, start, end)

	totals := make(stats.Float64Data, 0, len(sales))
	for _, s := range sales {
		totals = append(totals, s.Total)
	}
	avg := 0.0
	if len(totals) > 0 {
		if mean, err := totals.Mean(); err == nil {
			avg = mean
		}
	}

	return SalesReport{
		Period:        Period{Start: start, End: end},
		Count:         len(sales),
		TotalSales:    TotalSales(sales),
		TotalCost:     TotalCost(sales),
		TotalProfit:   TotalProfit(sales),
		AverageTicket: avg,
		TopProducts:   TopSelling(all, TopProductsLimit),
	}
}

// MonthProfit is one month of the profit report.
type MonthProfit struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Profit  float64 `json:"profit"`
	Margin  float64 `json:"margin"`
}

// ProfitReport breaks profit down over the trailing months.
type ProfitReport struct {
	Period      Period        `json:"period"`
	TotalSales  float64       `json:"totalSales"`
	TotalCost   float64       `json:"totalCost"`
	TotalProfit float64       `json:"totalProfit"`
	Margin      float64       `json:"margin"`
	Months      []MonthProfit `json:"months"`
}

// Profit reports on the sales dated within [start, end]. Margins are
// profit as a percentage of revenue, 0 when there is no revenue.
func (g *Generator) Profit(start, end string) ProfitReport {
	sales := FilterSales(g.src.Sales(), start, end)

	byMonth := make(map[string][]model.Sale)
	for _, s := range sales {
		key := format.MonthKey(s.Date)
		byMonth[key] = append(byMonth[key], s)
	}

	months := format.LastMonths(g.src.Now(), ProfitMonths)
	series := make([]MonthProfit, 0, len(months))
	for _, m := range months {
		ms := byMonth[m.Key]
		revenue := TotalSales(ms)
		profit := TotalProfit(ms)
		series = append(series, MonthProfit{
			Key:     m.Key,
			Label:   m.Label,
			Revenue: revenue,
			Cost:    TotalCost(ms),
			Profit:  profit,
			Margin:  format.Percent(profit, revenue),
		})
	}

	totalSales := TotalSales(sales)
	totalProfit := TotalProfit(sales)
	return ProfitReport{
		Period:      Period{Start: start, End: end},
		TotalSales:  totalSales,
		TotalCost:   TotalCost(sales),
		TotalProfit: totalProfit,
		Margin:      format.Percent(totalProfit, totalSales),
		Months:      series,
	}
}
