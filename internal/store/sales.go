package store

import (
	"fmt"
	"slices"

	"github.com/roach88/bizdesk/internal/format"
	"github.com/roach88/bizdesk/internal/model"
	"github.com/roach88/bizdesk/internal/report"
)

// DefaultTopSellingLimit is used when TopSellingProducts gets no limit.
const DefaultTopSellingLimit = 5

// Period names a trailing window for SalesByPeriod.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// AddSale records a sale whose totals the caller has already computed.
// The sale is prepended so Sales() lists the newest first. Stock of every
// referenced product that still exists is decremented, never below zero,
// and each line keeps the units it actually took.
// An empty Date means today and an empty UserID means the logged-in user.
func (s *Store) AddSale(in model.SaleInput) *model.Sale {
	now := s.clock.Now()
	sale := model.Sale{
		ID:        s.ids.NewID(PrefixSale),
		Client:    in.Client,
		Items:     slices.Clone(in.Items),
		Total:     in.Total,
		Cost:      in.Cost,
		Date:      in.Date,
		UserID:    in.UserID,
		CreatedAt: now,
	}
	if sale.Date == "" {
		sale.Date = format.DateISO(now)
	}
	if sale.UserID == "" && s.session != nil {
		sale.UserID = s.session.ID
	}

	s.takeStock(sale.Items)
	s.sales = slices.Insert(s.sales, 0, sale)
	s.commit(model.ActionCreate, model.ModuleSales,
		fmt.Sprintf("Venda realizada: %s - Total: %s", sale.Client, format.Currency(sale.Total)))
	out := cloneSale(sale)
	return &out
}

// CreateSale prices the requested lines from the live catalogue and
// records the sale. Name and price are snapshotted; the cost is the
// current product cost times quantity. Nothing changes if any line fails.
func (s *Store) CreateSale(req model.SaleRequest) (*model.Sale, error) {
	if len(req.Lines) == 0 {
		return nil, ErrEmptySale
	}

	requested := make(map[string]int)
	items := make([]model.SaleItem, 0, len(req.Lines))
	totals := make([]float64, 0, len(req.Lines))
	costs := make([]float64, 0, len(req.Lines))
	for i, line := range req.Lines {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("line %d: %w", i+1, ErrInvalidQuantity)
		}
		p := s.Product(line.ProductID)
		if p == nil {
			return nil, fmt.Errorf("line %d: %w: %s", i+1, ErrProductNotFound, line.ProductID)
		}
		requested[p.ID] += line.Quantity
		if requested[p.ID] > p.Stock {
			return nil, fmt.Errorf("line %d: %w: %s has %d, requested %d",
				i+1, ErrInsufficientStock, p.Name, p.Stock, requested[p.ID])
		}

		total := format.Mul(p.Price, line.Quantity)
		items = append(items, model.SaleItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  line.Quantity,
			Total:     total,
		})
		totals = append(totals, total)
		costs = append(costs, format.Mul(p.Cost, line.Quantity))
	}

	return s.AddSale(model.SaleInput{
		Client: req.Client,
		Items:  items,
		Total:  format.Sum(totals...),
		Cost:   format.Sum(costs...),
		Date:   req.Date,
		UserID: req.UserID,
	}), nil
}

// DeleteSale removes the sale with id and returns the units it took to
// the stock of every referenced product that still exists.
func (s *Store) DeleteSale(id string) bool {
	i := slices.IndexFunc(s.sales, func(sale model.Sale) bool { return sale.ID == id })
	if i < 0 {
		return false
	}
	sale := s.sales[i]
	s.returnStock(sale.Items)
	s.sales = slices.Delete(s.sales, i, i+1)
	s.commit(model.ActionDelete, model.ModuleSales,
		fmt.Sprintf("Venda excluída: %s - Total: %s", sale.Client, format.Currency(sale.Total)))
	return true
}

// takeStock removes each line's quantity from stock, floored at zero,
// and records on the line how much was removed. Lines pointing at deleted
// products take nothing.
func (s *Store) takeStock(items []model.SaleItem) {
	for n := range items {
		taken := 0
		if i := s.productIndex(items[n].ProductID); i >= 0 {
			p := &s.products[i]
			taken = min(items[n].Quantity, max(p.Stock, 0))
			p.Stock -= taken
			p.UpdatedAt = s.touch(p.UpdatedAt)
		}
		items[n].StockTaken = &taken
	}
}

// returnStock puts back what takeStock removed. Lines pointing at deleted
// products are skipped.
func (s *Store) returnStock(items []model.SaleItem) {
	for _, item := range items {
		i := s.productIndex(item.ProductID)
		if i < 0 {
			continue
		}
		units := item.Quantity
		if item.StockTaken != nil {
			units = *item.StockTaken
		}
		p := &s.products[i]
		p.Stock += units
		p.UpdatedAt = s.touch(p.UpdatedAt)
	}
}

// Sale returns a copy of the sale with id, or nil.
func (s *Store) Sale(id string) *model.Sale {
	for _, sale := range s.sales {
		if sale.ID == id {
			out := cloneSale(sale)
			return &out
		}
	}
	return nil
}

// Sales returns every sale, newest first.
func (s *Store) Sales() []model.Sale {
	out := make([]model.Sale, len(s.sales))
	for i, sale := range s.sales {
		out[i] = cloneSale(sale)
	}
	return out
}

// SearchSales matches q against client and id. An empty q returns every
// sale.
func (s *Store) SearchSales(q string) []model.Sale {
	if q == "" {
		return s.Sales()
	}
	var out []model.Sale
	for _, sale := range s.sales {
		if format.ContainsFold(q, sale.Client, sale.ID) {
			out = append(out, cloneSale(sale))
		}
	}
	return out
}

// FilterSalesByDate returns the sales dated within [start, end]. Empty
// bounds are open, so FilterSalesByDate("", "") equals Sales().
func (s *Store) FilterSalesByDate(start, end string) []model.Sale {
	return report.FilterSales(s.Sales(), start, end)
}

// SalesByPeriod returns the sales of today, the last seven days, the
// current month or the current year. Any other period returns every sale.
func (s *Store) SalesByPeriod(p Period) []model.Sale {
	now := s.clock.Now()
	var start string
	switch p {
	case PeriodToday:
		start = format.DateISO(now)
	case PeriodWeek:
		start = format.DateISO(now.AddDate(0, 0, -6))
	case PeriodMonth:
		start = format.DateISO(now.AddDate(0, 0, 1-now.Day()))
	case PeriodYear:
		start = fmt.Sprintf("%d-01-01", now.Year())
	default:
		return s.Sales()
	}
	return report.FilterSales(s.Sales(), start, "")
}

// TotalSales sums the totals of sales, or of every sale when sales is nil.
func (s *Store) TotalSales(sales []model.Sale) float64 {
	if sales == nil {
		sales = s.sales
	}
	return report.TotalSales(sales)
}

// TotalCost sums the costs of sales, or of every sale when sales is nil.
func (s *Store) TotalCost(sales []model.Sale) float64 {
	if sales == nil {
		sales = s.sales
	}
	return report.TotalCost(sales)
}

// TotalProfit is TotalSales minus TotalCost.
func (s *Store) TotalProfit(sales []model.Sale) float64 {
	if sales == nil {
		sales = s.sales
	}
	return report.TotalProfit(sales)
}

// TopSellingProducts ranks products by units sold across every sale.
// A non-positive limit means DefaultTopSellingLimit.
func (s *Store) TopSellingProducts(limit int) []report.ProductSales {
	if limit <= 0 {
		limit = DefaultTopSellingLimit
	}
	return report.TopSelling(s.sales, limit)
}

func cloneSale(sale model.Sale) model.Sale {
	sale.Items = slices.Clone(sale.Items)
	return sale
}
