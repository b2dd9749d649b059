package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/bizdesk/internal/model"
)

func TestInRange(t *testing.T) {
	assert.True(t, InRange("2026-03-10", "", ""))
	assert.True(t, InRange("2026-03-10", "2026-03-10", "2026-03-10"))
	assert.False(t, InRange("2026-03-09", "2026-03-10", ""))
	assert.False(t, InRange("2026-03-11", "", "2026-03-10"))
}

func TestFilterSales_NoBoundsReturnsInput(t *testing.T) {
	sales := fixture().sales
	assert.Equal(t, sales, FilterSales(sales, "", ""))
}

func TestFilterSales_Inclusive(t *testing.T) {
	got := FilterSales(fixture().sales, "2026-02-20", "2026-03-10")
	assert.Len(t, got, 2)
}

func TestFilterExpenses(t *testing.T) {
	got := FilterExpenses(fixture().expenses, "2026-03-01", "")
	assert.Len(t, got, 2)
}

func TestTotals(t *testing.T) {
	sales := fixture().sales
	assert.Equal(t, 70.0, TotalSales(sales))
	assert.Equal(t, 32.0, TotalCost(sales))
	assert.Equal(t, 38.0, TotalProfit(sales))
	assert.Equal(t, 21.5, TotalExpenses(fixture().expenses))
	assert.Zero(t, TotalSales(nil))
}

func TestTotals_NoFloatDrift(t *testing.T) {
	sales := []model.Sale{{Total: 0.1}, {Total: 0.2}}
	assert.Equal(t, 0.3, TotalSales(sales))
}

func TestExpensesByCategory(t *testing.T) {
	assert.Equal(t, map[string]float64{"Aluguel": 15, "Energia": 6.5}, ExpensesByCategory(fixture().expenses))
}

func TestTopSelling(t *testing.T) {
	top := TopSelling(fixture().sales, 2)
	assert.Equal(t, []ProductSales{
		{ProductID: "prod_3", Name: "Lápis", Quantity: 10, Revenue: 20},
		{ProductID: "prod_1", Name: "Caneta", Quantity: 5, Revenue: 25},
	}, top)
}

func TestTopSelling_TiesKeepFirstAppearance(t *testing.T) {
	sales := []model.Sale{
		{Items: []model.SaleItem{line("b", "B", 1, 3), line("a", "A", 1, 3)}},
		{Items: []model.SaleItem{line("c", "C", 1, 3)}},
	}
	top := TopSelling(sales, 5)
	assert.Equal(t, "b", top[0].ProductID)
	assert.Equal(t, "a", top[1].ProductID)
	assert.Equal(t, "c", top[2].ProductID)
}
