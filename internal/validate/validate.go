// Package validate checks business rules before a command reaches the store.
//
// The store persists whatever it is given; callers run these checks first.
// Field-level rules live in an embedded CUE schema (schema.cue). Rules that
// need the current state, such as uniqueness of product codes and
// usernames, are checked in Go against a lookup interface.
package validate

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/roach88/bizdesk/internal/format"
	"github.com/roach88/bizdesk/internal/model"
)

//go:embed schema.cue
var schemaSource string

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether s looks like an e-mail address.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Date reports whether s is a YYYY-MM-DD calendar day.
func Date(s string) bool {
	return format.ValidDate(s)
}

// FieldError is a single failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error collects every rule a value failed.
type Error struct {
	Fields []FieldError `json:"fields"`
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		if f.Field == "" {
			parts[i] = f.Message
			continue
		}
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Error) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *Error) orNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// ProductLookup finds products by code.
type ProductLookup interface {
	ProductByCode(code string) *model.Product
}

// UserLookup finds users by username, ignoring case.
type UserLookup interface {
	UserByUsername(username string) *model.User
}

// Validator checks inputs against the compiled schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// New compiles the embedded schema.
func New() (*Validator, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile validation schema: %w", err)
	}
	return &Validator{ctx: ctx, schema: schema}, nil
}

// check unifies value with the named definition and converts any conflict
// into field errors.
func (v *Validator) check(definition string, value any) *Error {
	def := v.schema.LookupPath(cue.ParsePath(definition))
	unified := def.Unify(v.ctx.Encode(value))

	verr := &Error{}
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		for _, e := range cueerrors.Errors(err) {
			field := ""
			if path := e.Path(); len(path) > 0 {
				field = strings.Join(path, ".")
				field = strings.TrimPrefix(field, definition+".")
			}
			msg, args := e.Msg()
			verr.add(field, fmt.Sprintf(msg, args...))
		}
	}
	return verr
}

// Product checks a new or edited product. excludeID names the product being
// edited so it does not collide with its own code.
func (v *Validator) Product(in model.ProductInput, products ProductLookup, excludeID string) error {
	verr := v.check("#Product", in)
	if in.Price <= in.Cost {
		if !hasField(verr, "price") {
			verr.add("price", "price must be greater than cost")
		}
	}
	if products != nil && in.Code != "" {
		if existing := products.ProductByCode(in.Code); existing != nil && existing.ID != excludeID {
			verr.add("code", fmt.Sprintf("code %q is already in use", in.Code))
		}
	}
	return verr.orNil()
}

// Sale checks a sale request before it is handed to the store.
func (v *Validator) Sale(req model.SaleRequest) error {
	verr := v.check("#Sale", req)
	if req.Date != "" && !Date(req.Date) {
		verr.add("date", "date must be YYYY-MM-DD")
	}
	return verr.orNil()
}

// Expense checks a new or edited expense.
func (v *Validator) Expense(in model.ExpenseInput) error {
	return v.check("#Expense", in).orNil()
}

// User checks a new or edited user. A password is required only when
// creating. excludeID names the user being edited.
func (v *Validator) User(in model.UserInput, users UserLookup, excludeID string, creating bool) error {
	verr := v.check("#User", in)
	if creating && in.Password == "" {
		verr.add("password", "password is required for new users")
	}
	if users != nil && in.Username != "" {
		if existing := users.UserByUsername(in.Username); existing != nil && existing.ID != excludeID {
			verr.add("username", fmt.Sprintf("username %q is already in use", in.Username))
		}
	}
	return verr.orNil()
}

func hasField(e *Error, field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}
