package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bizdesk/internal/model"
)

var now = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

type fakeSource struct {
	products []model.Product
	sales    []model.Sale
	expenses []model.Expense
	settings model.Settings
}

func (f *fakeSource) Products() []model.Product { return f.products }
func (f *fakeSource) Sales() []model.Sale       { return f.sales }
func (f *fakeSource) Expenses() []model.Expense { return f.expenses }
func (f *fakeSource) Settings() model.Settings  { return f.settings }
func (f *fakeSource) Now() time.Time            { return now }

func line(id, name string, price float64, qty int) model.SaleItem {
	return model.SaleItem{ProductID: id, Name: name, Price: price, Quantity: qty, Total: price * float64(qty)}
}

func fixture() *fakeSource {
	return &fakeSource{
		sales: []model.Sale{
			{ID: "sale_1", Client: "Ana", Date: "2026-03-10", Total: 20, Cost: 8,
				Items: []model.SaleItem{line("prod_1", "Caneta", 5, 4)}},
			{ID: "sale_2", Client: "Bruno", Date: "2026-02-20", Total: 30, Cost: 14,
				Items: []model.SaleItem{line("prod_2", "Caderno", 12.5, 2), line("prod_1", "Caneta", 5, 1)}},
			{ID: "sale_3", Client: "Carla", Date: "2025-01-05", Total: 20, Cost: 10,
				Items: []model.SaleItem{line("prod_3", "Lápis", 2, 10)}},
		},
		expenses: []model.Expense{
			{ID: "exp_1", Description: "Renda", Category: "Aluguel", Value: 15, Date: "2026-03-01"},
			{ID: "exp_2", Description: "Luz", Category: "Energia", Value: 4.5, Date: "2026-02-11"},
			{ID: "exp_3", Description: "Gerador", Category: "Energia", Value: 2, Date: "2026-03-05"},
		},
		settings: model.DefaultSettings(),
	}
}

func assertGolden(t *testing.T, name string, v any) {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	require.NoError(t, err)
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, append(data, '\n'))
}

func TestFinancial_Golden(t *testing.T) {
	assertGolden(t, "financial", New(fixture()).Financial("", ""))
}

func TestSales_Golden(t *testing.T) {
	assertGolden(t, "sales", New(fixture()).Sales("2026-02-01", "2026-03-31"))
}

func TestProfit_Golden(t *testing.T) {
	assertGolden(t, "profit", New(fixture()).Profit("", ""))
}

func TestFinancial_PeriodFilter(t *testing.T) {
	r := New(fixture()).Financial("2026-03-01", "2026-03-31")
	assert.Equal(t, 1, r.SalesCount)
	assert.Equal(t, 2, r.ExpensesCount)
	assert.Equal(t, 20.0, r.TotalSales)
	assert.Equal(t, 12.0, r.GrossProfit)
	assert.Equal(t, 17.0, r.TotalExpenses)
	assert.Equal(t, -5.0, r.NetProfit)
	require.Len(t, r.SalesByMonth, FinancialMonths)
	assert.Equal(t, "2025-04", r.SalesByMonth[0].Key)
	assert.Equal(t, "2026-03", r.SalesByMonth[11].Key)
}

func TestFinancial_EmptyHasZeroBuckets(t *testing.T) {
	r := New(&fakeSource{settings: model.DefaultSettings()}).Financial("", "")
	assert.Zero(t, r.TotalSales)
	assert.Empty(t, r.ExpensesByCategory)
	require.Len(t, r.SalesByMonth, FinancialMonths)
	for _, b := range r.SalesByMonth {
		assert.Zero(t, b.Sales)
		assert.Zero(t, b.Expenses)
		assert.Zero(t, b.Profit)
	}
}

func TestSales_EmptyAverageTicketIsZero(t *testing.T) {
	r := New(fixture()).Sales("2030-01-01", "")
	assert.Zero(t, r.Count)
	assert.Zero(t, r.AverageTicket)
	assert.Len(t, r.TopProducts, 3, "top products ignore the period")
}

func TestProfit_ZeroRevenueMonthHasZeroMargin(t *testing.T) {
	r := New(fixture()).Profit("", "")
	require.Len(t, r.Months, ProfitMonths)
	assert.Zero(t, r.Months[0].Margin)
	assert.Equal(t, 60.0, r.Months[5].Margin)
}

func TestStock(t *testing.T) {
	src := &fakeSource{
		settings: model.DefaultSettings(),
		products: []model.Product{
			{ID: "prod_1", Name: "Caneta", Category: "Papelaria", Cost: 2, Price: 5, Stock: 30},
			{ID: "prod_2", Name: "Caderno", Category: "Papelaria", Cost: 6, Price: 12.5, Stock: 4},
			{ID: "prod_3", Name: "Pilha", Category: "Eletrônicos", Cost: 1.5, Price: 3, Stock: 0},
		},
	}

	r := New(src).Stock()

	assert.Equal(t, 3, r.TotalProducts)
	assert.Equal(t, 34, r.TotalItems)
	assert.Equal(t, 84.0, r.TotalValue)
	assert.Equal(t, 200.0, r.TotalRetailValue)
	assert.Equal(t, 116.0, r.PotentialProfit)
	assert.Equal(t, model.DefaultLowStockThreshold, r.Threshold)

	assert.Equal(t, 2, r.LowStock)
	assert.Equal(t, 1, r.OutOfStock)
	assert.Equal(t, "prod_2", r.LowStockProducts[0].ID)
	assert.Equal(t, "prod_3", r.LowStockProducts[1].ID)
	assert.Equal(t, "prod_3", r.OutOfStockProducts[0].ID)

	assert.Equal(t, map[string]CategoryValue{
		"Papelaria":   {Count: 34, Value: 84},
		"Eletrônicos": {Count: 0, Value: 0},
	}, r.ValueByCategory)
}

func TestStock_ThresholdFromSettings(t *testing.T) {
	settings := model.DefaultSettings()
	settings.LowStockThreshold = 50
	src := &fakeSource{
		settings: settings,
		products: []model.Product{{ID: "prod_1", Stock: 30}},
	}
	assert.Equal(t, 1, New(src).Stock().LowStock)
}
