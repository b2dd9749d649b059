package model

// ProductInput carries the caller-supplied fields of a new product.
type ProductInput struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Cost        float64 `json:"cost"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Description string  `json:"description"`
}

// ProductPatch is a partial product update. Nil fields are left unchanged.
type ProductPatch struct {
	Code        *string  `json:"code,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Cost        *float64 `json:"cost,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// Apply merges the non-nil fields of the patch into p.
func (pp ProductPatch) Apply(p *Product) {
	if pp.Code != nil {
		p.Code = *pp.Code
	}
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Cost != nil {
		p.Cost = *pp.Cost
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Stock != nil {
		p.Stock = *pp.Stock
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
}

// Input returns the product's editable fields, used to validate a patched
// product as a whole.
func (p Product) Input() ProductInput {
	return ProductInput{
		Code:        p.Code,
		Name:        p.Name,
		Category:    p.Category,
		Cost:        p.Cost,
		Price:       p.Price,
		Stock:       p.Stock,
		Description: p.Description,
	}
}

// SaleInput is a fully computed sale handed to Store.AddSale.
type SaleInput struct {
	Client string     `json:"client"`
	Items  []SaleItem `json:"items"`
	Total  float64    `json:"total"`
	Cost   float64    `json:"cost"`
	Date   string     `json:"date"`
	UserID string     `json:"userId,omitempty"`
}

// SaleLine asks for Quantity units of a product.
type SaleLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// SaleRequest is what a point-of-sale screen submits. Date defaults to
// today and UserID to the logged-in user.
type SaleRequest struct {
	Client string     `json:"client"`
	Lines  []SaleLine `json:"items"`
	Date   string     `json:"date,omitempty"`
	UserID string     `json:"userId,omitempty"`
}

// ExpenseInput carries the fields of a new expense.
type ExpenseInput struct {
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Value       float64 `json:"value"`
	Date        string  `json:"date"`
	Notes       string  `json:"notes"`
}

// ExpensePatch is a partial expense update.
type ExpensePatch struct {
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Value       *float64 `json:"value,omitempty"`
	Date        *string  `json:"date,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

// Apply merges the non-nil fields of the patch into e.
func (ep ExpensePatch) Apply(e *Expense) {
	if ep.Description != nil {
		e.Description = *ep.Description
	}
	if ep.Category != nil {
		e.Category = *ep.Category
	}
	if ep.Value != nil {
		e.Value = *ep.Value
	}
	if ep.Date != nil {
		e.Date = *ep.Date
	}
	if ep.Notes != nil {
		e.Notes = *ep.Notes
	}
}

// UserInput carries the fields of a new user.
type UserInput struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	FullName string  `json:"fullName"`
	Email    string  `json:"email"`
	Profile  Profile `json:"profile"`
}

// UserPatch is a partial user update. An empty Password keeps the
// current one.
type UserPatch struct {
	Username *string  `json:"username,omitempty"`
	Password *string  `json:"password,omitempty"`
	FullName *string  `json:"fullName,omitempty"`
	Email    *string  `json:"email,omitempty"`
	Profile  *Profile `json:"profile,omitempty"`
	Active   *bool    `json:"active,omitempty"`
}

// Apply merges the patch into u.
func (up UserPatch) Apply(u *User) {
	if up.Username != nil {
		u.Username = *up.Username
	}
	if up.Password != nil && *up.Password != "" {
		u.Password = *up.Password
	}
	if up.FullName != nil {
		u.FullName = *up.FullName
	}
	if up.Email != nil {
		u.Email = *up.Email
	}
	if up.Profile != nil {
		u.Profile = *up.Profile
	}
	if up.Active != nil {
		u.Active = *up.Active
	}
}

// Input returns the user's editable fields.
func (u User) Input() UserInput {
	return UserInput{
		Username: u.Username,
		Password: u.Password,
		FullName: u.FullName,
		Email:    u.Email,
		Profile:  u.Profile,
	}
}

// SettingsPatch is a partial settings update. It is also the settings
// shape inside exports so an import can carry any subset of fields.
type SettingsPatch struct {
	CompanyName       *string  `json:"companyName,omitempty"`
	Currency          *string  `json:"currency,omitempty"`
	DateFormat        *string  `json:"dateFormat,omitempty"`
	LowStockThreshold *int     `json:"lowStockThreshold,omitempty"`
	TaxRate           *float64 `json:"taxRate,omitempty"`
	ReadOnlyMode      *bool    `json:"readOnlyMode,omitempty"`
}

// Apply merges the non-nil fields of the patch into s.
func (sp SettingsPatch) Apply(s *Settings) {
	if sp.CompanyName != nil {
		s.CompanyName = *sp.CompanyName
	}
	if sp.Currency != nil {
		s.Currency = *sp.Currency
	}
	if sp.DateFormat != nil {
		s.DateFormat = *sp.DateFormat
	}
	if sp.LowStockThreshold != nil {
		s.LowStockThreshold = *sp.LowStockThreshold
	}
	if sp.TaxRate != nil {
		s.TaxRate = *sp.TaxRate
	}
	if sp.ReadOnlyMode != nil {
		s.ReadOnlyMode = *sp.ReadOnlyMode
	}
}

// Patch returns a patch that sets every field of s.
func (s Settings) Patch() SettingsPatch {
	return SettingsPatch{
		CompanyName:       &s.CompanyName,
		Currency:          &s.Currency,
		DateFormat:        &s.DateFormat,
		LowStockThreshold: &s.LowStockThreshold,
		TaxRate:           &s.TaxRate,
		ReadOnlyMode:      &s.ReadOnlyMode,
	}
}
