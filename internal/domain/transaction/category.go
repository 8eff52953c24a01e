package transaction

import "strings"

type Category struct {
	ID           int64  `json:"id"`
	ProviderName string `json:"providerName"`
	CaixaHubName string `json:"caixaHubName"`
}

// CategoryMapping maps provider category codes to CaixaHub categories.
// Key: provider category code (e.g., "01000000")
// Value: Category with ProviderName (what the aggregation API returns)
// and CaixaHubName (what the dashboard shows)
var CategoryMapping = map[string]Category{
	"01000000": {
		ProviderName: "Renda",
		CaixaHubName: "Receita Operacional",
	},
	"01010000": {
		ProviderName: "Salário",
		CaixaHubName: "Folha de Pagamento",
	},
	"01030000": {
		ProviderName: "Atividades de empreendedorismo",
		CaixaHubName: "Receita de Vendas",
	},
	"01050000": {
		ProviderName: "Renda não-recorrente",
		CaixaHubName: "Receita não-recorrente",
	},
	"02000000": {
		ProviderName: "Empréstimos e financiamento",
		CaixaHubName: "Empréstimos",
	},
	"02010000": {
		ProviderName: "Atraso no pagamento e custos de cheque especial",
		CaixaHubName: "Juros e Multas",
	},
	"02020000": {
		ProviderName: "Juros cobrados",
		CaixaHubName: "Juros e Multas",
	},
	"02030000": {
		ProviderName: "Financiamento",
		CaixaHubName: "Empréstimos",
	},
	"02999998": {
		ProviderName: "Aluguéis",
		CaixaHubName: "Aluguel",
	},
	"03000000": {
		ProviderName: "Investimentos",
		CaixaHubName: "Investimentos",
	},
	"03020000": {
		ProviderName: "Renda fixa",
		CaixaHubName: "Rendimentos",
	},
	"04000000": {
		ProviderName: "Transferência mesma titularidade",
		CaixaHubName: "Transferências Internas",
	},
	"05000000": {
		ProviderName: "Impostos",
		CaixaHubName: "Impostos e Tributos",
	},
	"05010000": {
		ProviderName: "Imposto de renda",
		CaixaHubName: "Impostos e Tributos",
	},
	"06000000": {
		ProviderName: "Serviços",
		CaixaHubName: "Fornecedores e Serviços",
	},
	"06010000": {
		ProviderName: "Telecomunicações",
		CaixaHubName: "Telefonia e Internet",
	},
	"06020000": {
		ProviderName: "Educação",
		CaixaHubName: "Treinamento",
	},
	"07000000": {
		ProviderName: "Compras",
		CaixaHubName: "Compras e Insumos",
	},
	"08000000": {
		ProviderName: "Contas de consumo",
		CaixaHubName: "Contas de Consumo",
	},
	"08010000": {
		ProviderName: "Energia elétrica",
		CaixaHubName: "Contas de Consumo",
	},
	"08020000": {
		ProviderName: "Água e esgoto",
		CaixaHubName: "Contas de Consumo",
	},
	"09000000": {
		ProviderName: "Taxas bancárias",
		CaixaHubName: "Tarifas Bancárias",
	},
	"99999999": {
		ProviderName: "Outros",
		CaixaHubName: "Outros",
	},
}

// GetCategoryKey returns the category code (Key) from ProviderName or code
// If category is already a code (exists as key), returns it as-is
// If category is a ProviderName, performs reverse lookup to find the Key
// Returns nil if no mapping is found
func GetCategoryKey(category *string) *string {
	if category == nil || *category == "" {
		return nil
	}

	if _, ok := CategoryMapping[*category]; ok {
		return category
	}

	for key, cat := range CategoryMapping {
		if cat.ProviderName == *category {
			k := key
			return &k
		}
	}

	return nil
}

// Keyword hints for description-based category suggestions. Checked in
// order; the first match wins.
var suggestionKeywords = []struct {
	keyword  string
	category string
}{
	{"fornecedor", "Fornecedores e Serviços"},
	{"darf", "Impostos e Tributos"},
	{"imposto", "Impostos e Tributos"},
	{"tributo", "Impostos e Tributos"},
	{"salario", "Folha de Pagamento"},
	{"salário", "Folha de Pagamento"},
	{"folha", "Folha de Pagamento"},
	{"aluguel", "Aluguel"},
	{"energia", "Contas de Consumo"},
	{"agua", "Contas de Consumo"},
	{"água", "Contas de Consumo"},
	{"telefone", "Telefonia e Internet"},
	{"internet", "Telefonia e Internet"},
	{"tarifa", "Tarifas Bancárias"},
	{"juros", "Juros e Multas"},
	{"emprestimo", "Empréstimos"},
	{"empréstimo", "Empréstimos"},
	{"venda", "Receita de Vendas"},
	{"compra", "Compras e Insumos"},
}

// suggestCategory matches the transaction description against known
// keywords. Unrecognized descriptions fall back to "Outros".
func suggestCategory(description string) string {
	desc := strings.ToLower(description)
	for _, hint := range suggestionKeywords {
		if strings.Contains(desc, hint.keyword) {
			return hint.category
		}
	}
	return "Outros"
}

// TranslateCategory translates a provider category (code or name) to the
// CaixaHub category name. Falls back to the original value when no
// mapping exists, so unknown provider categories still display.
func TranslateCategory(category *string) *string {
	if category == nil || *category == "" {
		return nil
	}

	if cat, ok := CategoryMapping[*category]; ok {
		name := cat.CaixaHubName
		return &name
	}

	for _, cat := range CategoryMapping {
		if cat.ProviderName == *category {
			name := cat.CaixaHubName
			return &name
		}
	}

	return category
}
