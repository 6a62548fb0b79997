package services

import (
	"strings"

	"github.com/plcoutant/compta_engine/internal/core/domain"
	"github.com/plcoutant/compta_engine/internal/core/taxonomy"
)

// textOverride redirects the debit or credit side of a kind rule when one of
// its keywords appears in the document text. Empty account fields keep the
// rule's default for that side.
type textOverride struct {
	keywords []string
	debit    string
	credit   string
}

// kindRule is the fixed classification rule of one document kind: default
// accounts, journal code, and an ordered list of text overrides evaluated
// first-match-wins.
type kindRule struct {
	journal   domain.JournalCode
	debit     string
	credit    string
	overrides []textOverride
}

// Classifier selects debit/credit accounts and a journal code for a source
// document. Kind-specific rules are tried first; the generic/adjustment kind
// (and any kind without a rule) falls back to the taxonomy keyword scan.
// Classification never fails: unmatched text lands on the default accounts
// with Matched=false.
type Classifier struct {
	tax   *taxonomy.Taxonomy
	rules map[domain.DocumentKind]kindRule
}

// NewClassifier builds a classifier over the given taxonomy. The rule table
// is closed: one entry per handled kind, built once at construction.
func NewClassifier(tax *taxonomy.Taxonomy) *Classifier {
	assetOverrides := []textOverride{
		{keywords: []string{"ordinateur", "informatique", "logiciel", "serveur"}, debit: taxonomy.AccountComputerEquipment},
		{keywords: []string{"vehicule", "véhicule", "voiture", "camion"}, debit: taxonomy.AccountVehicles},
		{keywords: []string{"mobilier", "meuble"}, debit: taxonomy.AccountFurniture},
	}

	purchaseOverrides := append(append([]textOverride{}, assetOverrides...),
		textOverride{keywords: []string{"loyer", "location"}, debit: taxonomy.AccountRent},
		textOverride{keywords: []string{"assurance"}, debit: taxonomy.AccountInsurance},
		textOverride{keywords: []string{"honoraire", "avocat", "comptable", "notaire"}, debit: taxonomy.AccountFees},
		textOverride{keywords: []string{"telephone", "téléphone", "internet", "telecom", "télécom"}, debit: taxonomy.AccountTelecom},
		textOverride{keywords: []string{"entretien", "reparation", "réparation", "maintenance"}, debit: taxonomy.AccountMaintenance},
		textOverride{keywords: []string{"publicite", "publicité", "annonce"}, debit: taxonomy.AccountAdvertising},
	)

	// Supplier credit notes mirror purchases with the sides swapped, so the
	// same keywords redirect the credit leg.
	supplierCreditOverrides := make([]textOverride, len(purchaseOverrides))
	for i, o := range purchaseOverrides {
		supplierCreditOverrides[i] = textOverride{keywords: o.keywords, credit: o.debit}
	}

	rules := map[domain.DocumentKind]kindRule{
		domain.PurchaseInvoice: {
			journal:   domain.JournalPurchases,
			debit:     taxonomy.AccountPurchasedGoods,
			credit:    taxonomy.AccountTradePayables,
			overrides: purchaseOverrides,
		},
		domain.SupplierCreditNote: {
			journal:   domain.JournalPurchases,
			debit:     taxonomy.AccountTradePayables,
			credit:    taxonomy.AccountPurchasedGoods,
			overrides: supplierCreditOverrides,
		},
		domain.SalesInvoice: {
			journal: domain.JournalSales,
			debit:   taxonomy.AccountTradeReceivables,
			credit:  taxonomy.AccountGoodsSold,
			overrides: []textOverride{
				{keywords: []string{"prestation", "service", "conseil", "formation"}, credit: taxonomy.AccountServicesSold},
			},
		},
		domain.CustomerCreditNote: {
			journal: domain.JournalSales,
			debit:   taxonomy.AccountGoodsSold,
			credit:  taxonomy.AccountTradeReceivables,
			overrides: []textOverride{
				{keywords: []string{"prestation", "service", "conseil", "formation"}, debit: taxonomy.AccountServicesSold},
			},
		},
		domain.ExpenseNote: {
			journal: domain.JournalMiscellaneous,
			debit:   taxonomy.AccountTravel,
			credit:  taxonomy.AccountPersonnel,
			overrides: []textOverride{
				{keywords: []string{"restaurant", "repas", "reception", "réception", "invitation"}, debit: taxonomy.AccountReceptions},
				{keywords: []string{"telephone", "téléphone", "internet"}, debit: taxonomy.AccountTelecom},
			},
		},
		domain.BankLine: {
			journal: domain.JournalBank,
			debit:   taxonomy.AccountMiscExpense,
			credit:  taxonomy.AccountBank,
			overrides: []textOverride{
				{keywords: []string{"frais bancaire", "agios", "commission", "abonnement bancaire"}, debit: taxonomy.AccountBankFees},
				{keywords: []string{"remise", "encaissement", "virement client"}, debit: taxonomy.AccountBank, credit: taxonomy.AccountTradeReceivables},
				{keywords: []string{"salaire", "paie"}, debit: taxonomy.AccountPersonnel},
				{keywords: []string{"fournisseur"}, debit: taxonomy.AccountTradePayables},
			},
		},
		domain.PayrollSlip: {
			journal: domain.JournalMiscellaneous,
			debit:   taxonomy.AccountSalaries,
			credit:  taxonomy.AccountPersonnel,
			overrides: []textOverride{
				{keywords: []string{"urssaf", "cotisation", "charges sociales"}, debit: taxonomy.AccountSocialCharges, credit: taxonomy.AccountSocialBodies},
			},
		},
		domain.VATReturn: {
			journal: domain.JournalMiscellaneous,
			debit:   taxonomy.AccountVATCollected,
			credit:  taxonomy.AccountVATDue,
		},
		domain.Depreciation: {
			journal: domain.JournalMiscellaneous,
			debit:   taxonomy.AccountDepreciationExp,
			credit:  taxonomy.AccountAccumDepreciation,
		},
		domain.Provision: {
			journal: domain.JournalMiscellaneous,
			debit:   taxonomy.AccountProvisionExp,
			credit:  taxonomy.AccountProvisions,
		},
	}

	return &Classifier{tax: tax, rules: rules}
}

// Classify returns the account pair and journal code for a document. The
// result is deterministic for identical inputs.
func (c *Classifier) Classify(kind domain.DocumentKind, label, description string) domain.Classification {
	text := strings.ToLower(strings.TrimSpace(label + " " + description))

	if rule, ok := c.rules[kind]; ok {
		result := domain.Classification{
			DebitAccount:  rule.debit,
			CreditAccount: rule.credit,
			JournalCode:   rule.journal,
			Matched:       true,
		}
		for _, override := range rule.overrides {
			keyword, hit := firstKeyword(text, override.keywords)
			if !hit {
				continue
			}
			if override.debit != "" {
				result.DebitAccount = override.debit
			}
			if override.credit != "" {
				result.CreditAccount = override.credit
			}
			result.MatchedKeyword = keyword
			break
		}
		return result
	}

	return c.classifyByKeywords(text)
}

// classifyByKeywords scans the taxonomy categories in their fixed order and
// returns the first whose keyword appears in the text. No hit falls through
// to the miscellaneous expense / bank default with Matched=false.
func (c *Classifier) classifyByKeywords(text string) domain.Classification {
	for _, category := range c.tax.Categories() {
		keyword, hit := firstKeyword(text, category.Keywords)
		if !hit {
			continue
		}
		return domain.Classification{
			DebitAccount:   category.DebitAccount,
			CreditAccount:  category.CreditAccount,
			JournalCode:    domain.JournalMiscellaneous,
			Matched:        true,
			MatchedKeyword: keyword,
		}
	}

	return domain.Classification{
		DebitAccount:  taxonomy.AccountMiscExpense,
		CreditAccount: taxonomy.AccountBank,
		JournalCode:   domain.JournalMiscellaneous,
		Matched:       false,
	}
}

// firstKeyword returns the first keyword of the list contained in text.
func firstKeyword(text string, keywords []string) (string, bool) {
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(text, keyword) {
			return keyword, true
		}
	}
	return "", false
}
