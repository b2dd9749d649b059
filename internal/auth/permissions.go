// Package auth derives what a user may do from their profile.
//
// ForProfile is a pure function from the closed set of profiles to an
// immutable Permissions value. The presentation shell consults it to gate
// commands; the store itself does not enforce permissions.
package auth

import (
	"sort"

	"github.com/roach88/bizdesk/internal/model"
)

// CRUD covers the four record operations of a module.
type CRUD struct {
	View   bool `json:"view"`
	Create bool `json:"create"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

// ViewExport covers read-only modules that can also be exported.
type ViewExport struct {
	View   bool `json:"view"`
	Export bool `json:"export"`
}

// ViewEdit covers the settings module.
type ViewEdit struct {
	View bool `json:"view"`
	Edit bool `json:"edit"`
}

// Permissions is the full capability set of one profile.
type Permissions struct {
	Dashboard bool       `json:"dashboard"`
	Products  CRUD       `json:"products"`
	Sales     CRUD       `json:"sales"`
	Expenses  CRUD       `json:"expenses"`
	Reports   ViewExport `json:"reports"`
	Users     CRUD       `json:"users"`
	Logs      ViewExport `json:"logs"`
	Settings  ViewEdit   `json:"settings"`
}

var (
	all      = CRUD{View: true, Create: true, Edit: true, Delete: true}
	none     = CRUD{}
	viewOnly = CRUD{View: true}
)

// ForProfile returns the permission matrix of a profile. Unknown profiles
// get the fallback matrix, which is neither operator nor manager: it may
// create, edit and delete catalogue records and delete (but not edit) sales,
// with no access to users, logs or settings.
func ForProfile(p model.Profile) Permissions {
	switch p {
	case model.ProfileAdmin:
		return Permissions{
			Dashboard: true,
			Products:  all,
			Sales:     all,
			Expenses:  all,
			Reports:   ViewExport{View: true, Export: true},
			Users:     all,
			Logs:      ViewExport{View: true, Export: true},
			Settings:  ViewEdit{View: true, Edit: true},
		}
	case model.ProfileManager:
		return Permissions{
			Dashboard: true,
			Products:  all,
			Sales:     all,
			Expenses:  all,
			Reports:   ViewExport{View: true, Export: true},
			Users:     none,
			Logs:      ViewExport{View: true},
		}
	case model.ProfileOperator:
		return Permissions{
			Dashboard: true,
			Products:  viewOnly,
			Sales:     CRUD{View: true, Create: true},
			Expenses:  viewOnly,
			Reports:   ViewExport{View: true},
			Users:     none,
		}
	default:
		return Permissions{
			Dashboard: true,
			Products:  all,
			Sales:     CRUD{View: true, Create: true, Delete: true},
			Expenses:  all,
			Reports:   ViewExport{View: true, Export: true},
			Users:     none,
		}
	}
}

// Leaves flattens p into dotted capability names ("products.edit") plus
// "dashboard".
func (p Permissions) Leaves() map[string]bool {
	leaves := map[string]bool{"dashboard": p.Dashboard}
	crud := func(module string, c CRUD) {
		leaves[module+".view"] = c.View
		leaves[module+".create"] = c.Create
		leaves[module+".edit"] = c.Edit
		leaves[module+".delete"] = c.Delete
	}
	crud("products", p.Products)
	crud("sales", p.Sales)
	crud("expenses", p.Expenses)
	crud("users", p.Users)
	leaves["reports.view"] = p.Reports.View
	leaves["reports.export"] = p.Reports.Export
	leaves["logs.view"] = p.Logs.View
	leaves["logs.export"] = p.Logs.Export
	leaves["settings.view"] = p.Settings.View
	leaves["settings.edit"] = p.Settings.Edit
	return leaves
}

// Has reports whether the dotted capability is granted. Unknown names are
// never granted.
func (p Permissions) Has(capability string) bool {
	return p.Leaves()[capability]
}

// Capabilities lists every capability name in sorted order.
func Capabilities() []string {
	leaves := Permissions{}.Leaves()
	names := make([]string, 0, len(leaves))
	for name := range leaves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
