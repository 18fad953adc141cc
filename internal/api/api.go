// api — типизированный доступ к ресурсам REST-бэкенда поверх client.Client.
// Входные записи проверяются до отправки, ответы после декодирования.
package api

import (
	"github.com/dEnchanter/aprilwind-admin/internal/client"
	"github.com/dEnchanter/aprilwind-admin/internal/models"
)

// Пути ресурсов относительно BaseURL бэкенда.
const (
	PathStaff            = "staff"
	PathCustomers        = "customers"
	PathMaterials        = "materials"
	PathProducts         = "products"
	PathProductions      = "productions"
	PathMaterialRequests = "material-requests"
	PathInvoices         = "invoices"
)

// AuthPaths — пути auth-эндпойнтов; должны совпадать с client.Options.
type AuthPaths struct {
	Login  string
	Logout string
}

func (p *AuthPaths) defaults() {
	if p.Login == "" {
		p.Login = "auth/login"
	}

	if p.Logout == "" {
		p.Logout = "auth/logout"
	}
}

// API — набор ресурсов дашборда.
type API struct {
	Staff            *Resource[models.Staff, models.StaffInput]
	Customers        *Resource[models.Customer, models.CustomerInput]
	Materials        *Resource[models.Material, models.MaterialInput]
	Products         *Resource[models.Product, models.ProductInput]
	Productions      *Productions
	MaterialRequests *MaterialRequests
	Invoices         *Resource[models.Invoice, models.InvoiceInput]

	Auth      *Auth
	Dashboard *Dashboard
}

func New(c *client.Client, paths AuthPaths) *API {
	paths.defaults()

	a := &API{
		Staff:            NewResource[models.Staff, models.StaffInput](c, PathStaff),
		Customers:        NewResource[models.Customer, models.CustomerInput](c, PathCustomers),
		Materials:        NewResource[models.Material, models.MaterialInput](c, PathMaterials),
		Products:         NewResource[models.Product, models.ProductInput](c, PathProducts),
		Productions:      &Productions{Resource: NewResource[models.Production, models.ProductionInput](c, PathProductions)},
		MaterialRequests: &MaterialRequests{Resource: NewResource[models.MaterialRequest, models.MaterialRequestInput](c, PathMaterialRequests)},
		Invoices:         NewResource[models.Invoice, models.InvoiceInput](c, PathInvoices),
		Auth:             &Auth{c: c, paths: paths},
	}
	a.Dashboard = &Dashboard{api: a}

	return a
}
