package normalizer

import (
	"hsouza/julius/internal/models"
	"hsouza/julius/internal/store"
)

// defaultCategoryRules is the built-in categorization table, used when no
// rules file is configured. Order is significant: rules are evaluated
// top-down and the first keyword hit wins, so the more specific
// categories come first (uber eats must land on delivery, not transport).
var defaultCategoryRules = []store.CategoryRule{
	{
		Category: models.CategoryFoodDelivery,
		Keywords: []string{"ifood", "uber eats", "rappi", "aiqfome", "delivery"},
	},
	{
		Category: models.CategoryGroceries,
		Keywords: []string{
			"supermercado", "mercado", "carrefour", "pao de acucar",
			"atacadao", "assai", "hortifruti", "sacolao", "padaria",
		},
	},
	{
		Category: models.CategoryRestaurants,
		Keywords: []string{
			"restaurante", "pizzaria", "lanchonete", "churrascaria",
			"hamburgueria", "cafeteria",
		},
	},
	{
		Category: models.CategoryFuel,
		Keywords: []string{
			"posto", "shell", "ipiranga", "petrobras", "combustivel",
			"gasolina", "etanol",
		},
	},
	{
		Category: models.CategoryTransport,
		Keywords: []string{
			"uber", "99app", "taxi", "metro", "onibus", "estacionamento",
			"pedagio",
		},
	},
	{
		Category: models.CategoryShopping,
		Keywords: []string{
			"shopping", "loja", "magazine", "americanas", "amazon",
			"mercadolivre", "shein", "aliexpress",
		},
	},
	{
		Category: models.CategoryEntertainment,
		Keywords: []string{
			"netflix", "spotify", "cinema", "teatro", "show", "steam",
			"playstation", "xbox", "disney",
		},
	},
	{
		Category: models.CategoryUtilities,
		Keywords: []string{
			"energia", "luz", "agua", "telefone", "internet", "celular",
			"claro", "vivo", "tim",
		},
	},
	{
		Category: models.CategoryHealth,
		Keywords: []string{
			"farmacia", "drogaria", "medico", "hospital", "consulta",
			"exame", "laboratorio", "dentista",
		},
	},
	{
		Category: models.CategoryServices,
		Keywords: []string{
			"cartorio", "correios", "seguro", "assinatura", "mensalidade",
			"academia",
		},
	},
}

// defaultMerchantRules maps description patterns to canonical merchant
// names. Evaluated in order against the normalized description, so
// "uber eats" must come before "uber".
var defaultMerchantRules = []store.MerchantRule{
	{Pattern: "ifood", Name: "iFood"},
	{Pattern: "uber eats", Name: "Uber Eats"},
	{Pattern: "uber", Name: "Uber"},
	{Pattern: "rappi", Name: "Rappi"},
	{Pattern: "posto shell", Name: "Shell"},
	{Pattern: "shell", Name: "Shell"},
	{Pattern: "ipiranga", Name: "Ipiranga"},
	{Pattern: "99app", Name: "99"},
	{Pattern: "netflix", Name: "Netflix"},
	{Pattern: "spotify", Name: "Spotify"},
	{Pattern: "amazon", Name: "Amazon"},
	{Pattern: "carrefour", Name: "Carrefour"},
	{Pattern: "americanas", Name: "Americanas"},
	{Pattern: "mercadolivre", Name: "Mercado Livre"},
}
