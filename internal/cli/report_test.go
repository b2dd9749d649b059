package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bizdesk/internal/report"
)

func seedSales(h *harness) {
	h.login("admin")
	h.mustRun("product", "add", "--code", "A1", "--name", "Caneta", "--category", "Papelaria", "--cost", "10", "--price", "20", "--stock", "5")
	h.mustRun("product", "add", "--code", "B1", "--name", "Caderno", "--category", "Papelaria", "--cost", "4", "--price", "12", "--stock", "0")
	h.mustRun("sale", "create", "--client", "Ana", "--item", "A1:2", "--date", "2026-03-10")
	h.mustRun("expense", "add", "--description", "Renda", "--category", "Aluguel", "--value", "15", "--date", "2026-03-01")
}

func TestReport_Financial(t *testing.T) {
	h := newHarness(t)
	seedSales(h)

	var r report.FinancialReport
	decode(t, h.mustRun("--format", "json", "report", "financial", "--from", "March 1, 2026", "--to", "2026-03-31"), &r)
	assert.Equal(t, report.Period{Start: "2026-03-01", End: "2026-03-31"}, r.Period)
	assert.Equal(t, 40.0, r.TotalSales)
	assert.Equal(t, 20.0, r.GrossProfit)
	assert.Equal(t, 5.0, r.NetProfit)
	assert.Len(t, r.SalesByMonth, report.FinancialMonths)

	out := h.mustRun("report", "financial")
	assert.Contains(t, out, "=== Financial Report ===")
	assert.Contains(t, out, "all time")
	assert.Contains(t, out, "Aluguel")
}

func TestReport_Stock(t *testing.T) {
	h := newHarness(t)
	seedSales(h)

	var r report.StockReport
	decode(t, h.mustRun("--format", "json", "report", "stock"), &r)
	assert.Equal(t, 2, r.TotalProducts)
	assert.Equal(t, 3, r.TotalItems)
	assert.Equal(t, 2, r.LowStock)
	assert.Equal(t, 1, r.OutOfStock)

	out := h.mustRun("report", "stock")
	assert.Contains(t, out, "=== Low Stock ===")
	assert.Contains(t, out, "Caderno")
}

func TestReport_SalesAndProfit(t *testing.T) {
	h := newHarness(t)
	seedSales(h)

	var sales report.SalesReport
	decode(t, h.mustRun("--format", "json", "report", "sales"), &sales)
	assert.Equal(t, 1, sales.Count)
	assert.Equal(t, 40.0, sales.AverageTicket)
	require.Len(t, sales.TopProducts, 1)
	assert.Equal(t, "Caneta", sales.TopProducts[0].Name)

	var profit report.ProfitReport
	decode(t, h.mustRun("--format", "json", "report", "profit"), &profit)
	assert.Equal(t, 50.0, profit.Margin)
	assert.Len(t, profit.Months, report.ProfitMonths)
}

func TestReport_OutNeedsExportCapability(t *testing.T) {
	h := newHarness(t)
	seedSales(h)
	path := filepath.Join(t.TempDir(), "reports", "sales.json")

	h.login("operador")
	h.mustRun("report", "sales")
	_, err := h.run("report", "sales", "--out", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reports.export")

	h.login("gerente")
	out := h.mustRun("report", "sales", "--out", path)
	assert.Contains(t, out, "Wrote sales report")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var r report.SalesReport
	require.NoError(t, json.Unmarshal(data, &r))
	assert.Equal(t, 1, r.Count)
}

func TestReport_InvalidRange(t *testing.T) {
	h := newHarness(t)
	h.login("admin")

	_, err := h.run("report", "profit", "--from", "not a date")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--from")
}
