package store

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/roach88/bizdesk/internal/format"
	"github.com/roach88/bizdesk/internal/model"
)

func (s *Store) newProduct(in model.ProductInput) model.Product {
	now := s.clock.Now()
	return model.Product{
		ID:          s.ids.NewID(PrefixProduct),
		Code:        in.Code,
		Name:        in.Name,
		Category:    in.Category,
		Cost:        in.Cost,
		Price:       in.Price,
		Stock:       in.Stock,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AddProduct appends a new product.
func (s *Store) AddProduct(in model.ProductInput) *model.Product {
	p := s.newProduct(in)
	s.products = append(s.products, p)
	s.commit(model.ActionCreate, model.ModuleProducts,
		fmt.Sprintf("Produto criado: %s (Código: %s)", p.Name, p.Code))
	return &p
}

// UpdateProduct merges patch into the product with id. The id and
// creation time never change and UpdatedAt always moves forward. Returns
// nil if id is unknown.
func (s *Store) UpdateProduct(id string, patch model.ProductPatch) *model.Product {
	i := s.productIndex(id)
	if i < 0 {
		return nil
	}
	p := &s.products[i]
	patch.Apply(p)
	p.UpdatedAt = s.touch(p.UpdatedAt)
	out := *p
	s.commit(model.ActionUpdate, model.ModuleProducts,
		fmt.Sprintf("Produto atualizado: %s (Código: %s)", out.Name, out.Code))
	return &out
}

// DeleteProduct removes the product with id. Sales referencing it keep
// their snapshots.
func (s *Store) DeleteProduct(id string) bool {
	i := s.productIndex(id)
	if i < 0 {
		return false
	}
	p := s.products[i]
	s.products = slices.Delete(s.products, i, i+1)
	s.commit(model.ActionDelete, model.ModuleProducts,
		fmt.Sprintf("Produto excluído: %s (Código: %s)", p.Name, p.Code))
	return true
}

// Product returns a copy of the product with id, or nil.
func (s *Store) Product(id string) *model.Product {
	i := s.productIndex(id)
	if i < 0 {
		return nil
	}
	p := s.products[i]
	return &p
}

// ProductByCode returns a copy of the product with code, or nil.
func (s *Store) ProductByCode(code string) *model.Product {
	for _, p := range s.products {
		if p.Code == code {
			return &p
		}
	}
	return nil
}

// Products returns every product in insertion order.
func (s *Store) Products() []model.Product {
	return slices.Clone(s.products)
}

// SearchProducts matches q against name, code and category ignoring case
// and accents. An empty q returns every product.
func (s *Store) SearchProducts(q string) []model.Product {
	if q == "" {
		return s.Products()
	}
	var out []model.Product
	for _, p := range s.products {
		if format.ContainsFold(q, p.Name, p.Code, p.Category) {
			out = append(out, p)
		}
	}
	return out
}

// LowStockProducts returns the products with stock strictly below
// threshold.
func (s *Store) LowStockProducts(threshold int) []model.Product {
	var out []model.Product
	for _, p := range s.products {
		if p.Stock < threshold {
			out = append(out, p)
		}
	}
	return out
}

// TotalStockValue is the cost of everything in stock.
func (s *Store) TotalStockValue() float64 {
	acc := decimal.Zero
	for _, p := range s.products {
		acc = acc.Add(decimal.NewFromFloat(p.Cost).Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	return acc.InexactFloat64()
}

func (s *Store) productIndex(id string) int {
	return slices.IndexFunc(s.products, func(p model.Product) bool { return p.ID == id })
}
