package usage

import "fmt"

// Alert is the user-facing message shown when usage approaches or reaches
// a plan limit.
type Alert struct {
	Kind        string `json:"kind"`
	Severity    string `json:"severity"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ActionLabel string `json:"actionLabel"`
}

type alertText struct {
	title       string
	description string // fmt template receiving current, limit or remaining
	actionLabel string
}

// Static message table keyed by resource kind; each kind carries one text
// for the near-limit band and one for the at-limit state.
var alertTexts = map[string]struct {
	near    alertText
	atLimit alertText
}{
	KindTransactions: {
		near: alertText{
			title:       "Limite de transações próximo",
			description: "Você usou %d de %d transações do seu plano. Restam %d.",
			actionLabel: "Fazer upgrade",
		},
		atLimit: alertText{
			title:       "Limite de transações atingido",
			description: "Você atingiu o limite de %d transações do seu plano. Novas transações não serão importadas.",
			actionLabel: "Fazer upgrade",
		},
	},
	KindBankAccounts: {
		near: alertText{
			title:       "Limite de contas próximo",
			description: "Você conectou %d de %d contas bancárias. Restam %d.",
			actionLabel: "Ver planos",
		},
		atLimit: alertText{
			title:       "Limite de contas atingido",
			description: "Você atingiu o limite de %d contas bancárias do seu plano. Desconecte uma conta ou faça upgrade.",
			actionLabel: "Ver planos",
		},
	},
	KindAIRequests: {
		near: alertText{
			title:       "Limite de IA próximo",
			description: "Você usou %d de %d análises de IA neste ciclo. Restam %d.",
			actionLabel: "Fazer upgrade",
		},
		atLimit: alertText{
			title:       "Limite de IA atingido",
			description: "Você atingiu o limite de %d análises de IA do seu plano. O recurso volta no próximo ciclo.",
			actionLabel: "Fazer upgrade",
		},
	},
}

// AlertFor evaluates usage for a resource kind and selects the matching
// alert text. It returns nil when no alert should be shown: below the
// near-limit threshold or for an unknown kind.
func AlertFor(kind string, current, limit int64) *Alert {
	eval := Evaluate(current, limit)
	return eval.Alert(kind)
}

// Alert selects the alert text for an already-computed evaluation.
func (e Evaluation) Alert(kind string) *Alert {
	if !e.IsNearLimit {
		return nil
	}
	texts, ok := alertTexts[kind]
	if !ok {
		return nil
	}

	var text alertText
	if e.IsAtLimit {
		text = texts.atLimit
	} else {
		text = texts.near
	}

	var description string
	if e.IsAtLimit {
		description = fmt.Sprintf(text.description, e.Limit)
	} else {
		description = fmt.Sprintf(text.description, e.Current, e.Limit, e.Remaining)
	}

	return &Alert{
		Kind:        kind,
		Severity:    e.Severity(),
		Title:       text.title,
		Description: description,
		ActionLabel: text.actionLabel,
	}
}

// ValidKind reports whether kind is one of the metered resource kinds.
func ValidKind(kind string) bool {
	_, ok := alertTexts[kind]
	return ok
}
