// Package models provides the data structures used throughout the application.
package models

// Category is a spending category from the fixed taxonomy. The set is
// closed: categorization always lands on one of these values.
type Category string

const (
	CategoryFoodDelivery  Category = "food_delivery"
	CategoryGroceries     Category = "groceries"
	CategoryRestaurants   Category = "restaurants"
	CategoryFuel          Category = "fuel"
	CategoryTransport     Category = "transport"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryUtilities     Category = "utilities"
	CategoryHealth        Category = "health"
	CategoryServices      Category = "services"
	CategoryOthers        Category = "others"
)

// AllCategories lists every category in taxonomy order. The order matters:
// categorization rules are evaluated first-match-wins in this order.
var AllCategories = []Category{
	CategoryFoodDelivery,
	CategoryGroceries,
	CategoryRestaurants,
	CategoryFuel,
	CategoryTransport,
	CategoryShopping,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryHealth,
	CategoryServices,
	CategoryOthers,
}

// IsValid reports whether c belongs to the taxonomy.
func (c Category) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// categoryLabels maps categories to the Portuguese labels shown in answers.
var categoryLabels = map[Category]string{
	CategoryFoodDelivery:  "Delivery",
	CategoryGroceries:     "Mercado",
	CategoryRestaurants:   "Restaurantes",
	CategoryFuel:          "Combustível",
	CategoryTransport:     "Transporte",
	CategoryShopping:      "Compras",
	CategoryEntertainment: "Entretenimento",
	CategoryUtilities:     "Contas",
	CategoryHealth:        "Saúde",
	CategoryServices:      "Serviços",
	CategoryOthers:        "Outros",
}

// Label returns the Portuguese display label for the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}
