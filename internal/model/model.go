package model

import "time"

// Profile is a user's role. It selects the permission matrix.
type Profile string

const (
	ProfileAdmin    Profile = "admin"
	ProfileManager  Profile = "manager"
	ProfileOperator Profile = "operator"
)

// Valid reports whether p is one of the three known roles.
func (p Profile) Valid() bool {
	switch p {
	case ProfileAdmin, ProfileManager, ProfileOperator:
		return true
	}
	return false
}

// Action classifies an audit log entry.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionLogin  Action = "login"
	ActionLogout Action = "logout"
	ActionSystem Action = "system"
)

// Module tags used in audit entries.
const (
	ModuleProducts = "produtos"
	ModuleSales    = "vendas"
	ModuleExpenses = "despesas"
	ModuleUsers    = "usuarios"
	ModuleSettings = "configuracoes"
	ModuleSystem   = "sistema"
)

// SystemUserName is recorded on audit entries made without a session.
const SystemUserName = "Sistema"

// Product is an inventory item. Price must exceed Cost and Stock is never
// negative; both rules are checked by callers before reaching the store.
type Product struct {
	ID          string    `json:"id" csv:"id"`
	Code        string    `json:"code" csv:"code"`
	Name        string    `json:"name" csv:"name"`
	Category    string    `json:"category" csv:"category"`
	Cost        float64   `json:"cost" csv:"cost"`
	Price       float64   `json:"price" csv:"price"`
	Stock       int       `json:"stock" csv:"stock"`
	Description string    `json:"description" csv:"description"`
	CreatedAt   time.Time `json:"createdAt" csv:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" csv:"updated_at"`
}

// SaleItem is one line of a sale. Name and Price are snapshots taken when
// the sale was made; ProductID is a non-owning reference used only to
// adjust stock and may point at a product that no longer exists.
type SaleItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
	// StockTaken is how many units the sale removed from stock. Nil on
	// lines recorded before it was tracked, which return Quantity.
	StockTaken *int `json:"stockTaken,omitempty"`
}

// Sale is a completed transaction. Total and Cost are fixed at creation.
type Sale struct {
	ID        string     `json:"id"`
	Client    string     `json:"client"`
	Items     []SaleItem `json:"items"`
	Total     float64    `json:"total"`
	Cost      float64    `json:"cost"`
	Date      string     `json:"date"`
	UserID    string     `json:"userId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Expense is an outgoing payment.
type Expense struct {
	ID          string    `json:"id" csv:"id"`
	Description string    `json:"description" csv:"description"`
	Category    string    `json:"category" csv:"category"`
	Value       float64   `json:"value" csv:"value"`
	Date        string    `json:"date" csv:"date"`
	Notes       string    `json:"notes" csv:"notes"`
	CreatedAt   time.Time `json:"createdAt" csv:"created_at"`
}

// User is an account able to log in. Username is unique ignoring case.
type User struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Password  string     `json:"password"`
	FullName  string     `json:"fullName"`
	Email     string     `json:"email"`
	Profile   Profile    `json:"profile"`
	Active    bool       `json:"active"`
	LastLogin *time.Time `json:"lastLogin"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// LogEntry is an audit record. UserID is empty for system actions.
type LogEntry struct {
	ID        string    `json:"id" csv:"id"`
	Timestamp time.Time `json:"timestamp" csv:"timestamp"`
	Action    Action    `json:"action" csv:"action"`
	Module    string    `json:"module" csv:"module"`
	Details   string    `json:"details" csv:"details"`
	UserID    string    `json:"userId,omitempty" csv:"user_id"`
	UserName  string    `json:"userName" csv:"user_name"`
}

// Settings is the singleton configuration record.
type Settings struct {
	CompanyName       string  `json:"companyName"`
	Currency          string  `json:"currency"`
	DateFormat        string  `json:"dateFormat"`
	LowStockThreshold int     `json:"lowStockThreshold"`
	TaxRate           float64 `json:"taxRate"`
	ReadOnlyMode      bool    `json:"readOnlyMode,omitempty"`
}

// DefaultLowStockThreshold is used when no threshold is configured.
const DefaultLowStockThreshold = 10

// DefaultSettings returns the settings a fresh installation starts with.
func DefaultSettings() Settings {
	return Settings{
		CompanyName:       "Minha Empresa",
		Currency:          "AOA",
		DateFormat:        "dd/mm/yyyy",
		LowStockThreshold: DefaultLowStockThreshold,
		TaxRate:           0,
	}
}
