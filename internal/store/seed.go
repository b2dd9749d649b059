package store

import "github.com/roach88/bizdesk/internal/model"

// DefaultCategories are offered for new products.
var DefaultCategories = []string{"Eletrônicos", "Roupas", "Alimentos", "Bebidas"}

var defaultUsers = []model.UserInput{
	{Username: "admin", Password: "admin", FullName: "Administrador do Sistema", Email: "admin@sistema.com", Profile: model.ProfileAdmin},
	{Username: "operador", Password: "operador", FullName: "Operador Padrão", Email: "operador@sistema.com", Profile: model.ProfileOperator},
	{Username: "gerente", Password: "gerente", FullName: "Gerente Regional", Email: "gerente@sistema.com", Profile: model.ProfileManager},
}

var sampleProducts = []model.ProductInput{
	{Code: "ELEC001", Name: "Smartphone X200", Category: "Eletrônicos", Cost: 800, Price: 1499, Stock: 25, Description: "Smartphone de última geração com tela AMOLED"},
	{Code: "ELEC002", Name: "Notebook Pro 15", Category: "Eletrônicos", Cost: 2500, Price: 4299, Stock: 12, Description: "Notebook profissional com processador i7"},
	{Code: "ROUP001", Name: "Camiseta Básica", Category: "Roupas", Cost: 15, Price: 49.90, Stock: 100, Description: "Camiseta 100% algodão diversas cores"},
	{Code: "ALIM001", Name: "Café Especial 500g", Category: "Alimentos", Cost: 25, Price: 59.90, Stock: 50, Description: "Café torrado e moído premium"},
	{Code: "BEB001", Name: "Água Mineral 500ml", Category: "Bebidas", Cost: 1.50, Price: 3.50, Stock: 200, Description: "Água mineral sem gás"},
}

// seedDefaults creates the default accounts when there are none and the
// sample catalogue when it is empty and enabled. Each seeding step logs
// one system entry.
func (s *Store) seedDefaults() {
	if len(s.users) == 0 {
		for _, in := range defaultUsers {
			s.users = append(s.users, s.newUser(in))
		}
		s.appendLog(model.ActionSystem, model.ModuleSystem, "Usuários padrão criados durante a inicialização", "", "")
	}
	if len(s.products) == 0 && s.sampleData {
		for _, in := range sampleProducts {
			s.products = append(s.products, s.newProduct(in))
		}
		s.appendLog(model.ActionSystem, model.ModuleSystem, "Produtos de exemplo criados durante a inicialização", "", "")
	}
}
