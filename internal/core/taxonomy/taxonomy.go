// Package taxonomy holds the static chart-of-accounts table and the keyword
// lists used by the classifier fallback. The table is built once at process
// start and never mutated afterwards.
package taxonomy

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/plcoutant/compta_engine/internal/core/domain"
)

// Canonical account codes for the concepts the engine needs directly.
// French PCG numbering.
const (
	AccountPurchasedGoods    = "607"   // Achats de marchandises
	AccountRent              = "6132"  // Locations immobilières
	AccountMaintenance       = "615"   // Entretien et réparations
	AccountInsurance         = "616"   // Primes d'assurances
	AccountFees              = "6226"  // Honoraires
	AccountAdvertising       = "6231"  // Annonces et insertions
	AccountTravel            = "6251"  // Voyages et déplacements
	AccountReceptions        = "6257"  // Réceptions
	AccountTelecom           = "626"   // Frais postaux et télécommunications
	AccountBankFees          = "627"   // Services bancaires
	AccountSalaries          = "641"   // Rémunérations du personnel
	AccountSocialCharges     = "645"   // Charges de sécurité sociale
	AccountMiscExpense       = "658"   // Charges diverses de gestion courante
	AccountDepreciationExp   = "6811"  // Dotations aux amortissements
	AccountProvisionExp      = "6815"  // Dotations aux provisions
	AccountServicesSold      = "706"   // Prestations de services
	AccountGoodsSold         = "707"   // Ventes de marchandises
	AccountVehicles          = "2182"  // Matériel de transport
	AccountComputerEquipment = "2183"  // Matériel informatique
	AccountFurniture         = "2184"  // Mobilier
	AccountAccumDepreciation = "2818"  // Amortissements des immobilisations corporelles
	AccountProvisions        = "1511"  // Provisions pour risques
	AccountTradePayables     = "401"   // Fournisseurs
	AccountAssetSuppliers    = "404"   // Fournisseurs d'immobilisations
	AccountTradeReceivables  = "411"   // Clients
	AccountPersonnel         = "421"   // Personnel - rémunérations dues
	AccountSocialBodies      = "431"   // Sécurité sociale
	AccountVATDue            = "44551" // TVA à décaisser
	AccountVATDeductible     = "44566" // TVA déductible
	AccountVATCollected      = "44571" // TVA collectée
	AccountBank              = "512"   // Banque
	AccountCash              = "530"   // Caisse
	AccountCapital           = "101"   // Capital
)

// KeywordCategory binds a semantic category to its fallback accounts and the
// trigger keywords scanned by the classifier. Categories are evaluated in
// slice order; the first keyword hit wins.
type KeywordCategory struct {
	Name          string   `yaml:"name"`
	DebitAccount  string   `yaml:"debitAccount"`
	CreditAccount string   `yaml:"creditAccount"`
	Keywords      []string `yaml:"keywords"`
}

// Taxonomy is the immutable account reference table handed to the classifier
// at construction time.
type Taxonomy struct {
	accounts   map[string]domain.LedgerAccount
	categories []KeywordCategory
}

// Default builds the built-in taxonomy.
func Default() *Taxonomy {
	accounts := []domain.LedgerAccount{
		{AccountCode: AccountCapital, Label: "Capital", Category: domain.CategoryEquity},
		{AccountCode: AccountProvisions, Label: "Provisions pour risques", Category: domain.CategoryLiability},
		{AccountCode: AccountVehicles, Label: "Matériel de transport", Category: domain.CategoryAsset},
		{AccountCode: AccountComputerEquipment, Label: "Matériel informatique", Category: domain.CategoryAsset},
		{AccountCode: AccountFurniture, Label: "Mobilier", Category: domain.CategoryAsset},
		{AccountCode: AccountAccumDepreciation, Label: "Amortissements des immobilisations corporelles", Category: domain.CategoryAsset},
		{AccountCode: AccountTradePayables, Label: "Fournisseurs", Category: domain.CategoryLiability},
		{AccountCode: AccountAssetSuppliers, Label: "Fournisseurs d'immobilisations", Category: domain.CategoryLiability},
		{AccountCode: AccountTradeReceivables, Label: "Clients", Category: domain.CategoryAsset},
		{AccountCode: AccountPersonnel, Label: "Personnel - rémunérations dues", Category: domain.CategoryLiability},
		{AccountCode: AccountSocialBodies, Label: "Sécurité sociale et organismes sociaux", Category: domain.CategoryLiability},
		{AccountCode: AccountVATDue, Label: "TVA à décaisser", Category: domain.CategoryTax},
		{AccountCode: AccountVATDeductible, Label: "TVA déductible sur autres biens et services", Category: domain.CategoryTax},
		{AccountCode: AccountVATCollected, Label: "TVA collectée", Category: domain.CategoryTax},
		{AccountCode: AccountBank, Label: "Banque", Category: domain.CategoryAsset},
		{AccountCode: AccountCash, Label: "Caisse", Category: domain.CategoryAsset},
		{AccountCode: AccountPurchasedGoods, Label: "Achats de marchandises", Category: domain.CategoryExpense},
		{AccountCode: AccountRent, Label: "Locations immobilières", Category: domain.CategoryExpense},
		{AccountCode: AccountMaintenance, Label: "Entretien et réparations", Category: domain.CategoryExpense},
		{AccountCode: AccountInsurance, Label: "Primes d'assurances", Category: domain.CategoryExpense},
		{AccountCode: AccountFees, Label: "Honoraires", Category: domain.CategoryExpense},
		{AccountCode: AccountAdvertising, Label: "Annonces et insertions", Category: domain.CategoryExpense},
		{AccountCode: AccountTravel, Label: "Voyages et déplacements", Category: domain.CategoryExpense},
		{AccountCode: AccountReceptions, Label: "Réceptions", Category: domain.CategoryExpense},
		{AccountCode: AccountTelecom, Label: "Frais postaux et télécommunications", Category: domain.CategoryExpense},
		{AccountCode: AccountBankFees, Label: "Services bancaires", Category: domain.CategoryExpense},
		{AccountCode: AccountSalaries, Label: "Rémunérations du personnel", Category: domain.CategoryExpense},
		{AccountCode: AccountSocialCharges, Label: "Charges de sécurité sociale", Category: domain.CategoryExpense},
		{AccountCode: AccountMiscExpense, Label: "Charges diverses de gestion courante", Category: domain.CategoryExpense},
		{AccountCode: AccountDepreciationExp, Label: "Dotations aux amortissements", Category: domain.CategoryExpense},
		{AccountCode: AccountProvisionExp, Label: "Dotations aux provisions", Category: domain.CategoryExpense},
		{AccountCode: AccountServicesSold, Label: "Prestations de services", Category: domain.CategoryIncome},
		{AccountCode: AccountGoodsSold, Label: "Ventes de marchandises", Category: domain.CategoryIncome},
	}

	byCode := make(map[string]domain.LedgerAccount, len(accounts))
	for _, acc := range accounts {
		byCode[acc.AccountCode] = acc
	}

	// The category order is fixed: the classifier fallback scans it top to
	// bottom and stops at the first keyword hit.
	categories := []KeywordCategory{
		{
			Name:          "purchases",
			DebitAccount:  AccountPurchasedGoods,
			CreditAccount: AccountTradePayables,
			Keywords:      []string{"achat", "marchandise", "fourniture", "matiere premiere", "matière première"},
		},
		{
			Name:          "external_services",
			DebitAccount:  AccountFees,
			CreditAccount: AccountTradePayables,
			Keywords: []string{
				"loyer", "location", "assurance", "honoraire", "avocat",
				"comptable", "publicite", "publicité", "entretien",
				"reparation", "réparation", "telephone", "téléphone", "internet",
			},
		},
		{
			Name:          "payroll",
			DebitAccount:  AccountSalaries,
			CreditAccount: AccountPersonnel,
			Keywords:      []string{"salaire", "paie", "remuneration", "rémunération", "urssaf", "cotisation"},
		},
		{
			Name:          "sales",
			DebitAccount:  AccountTradeReceivables,
			CreditAccount: AccountGoodsSold,
			Keywords:      []string{"vente", "client", "prestation", "facturation"},
		},
		{
			Name:          "taxes",
			DebitAccount:  AccountVATDeductible,
			CreditAccount: AccountVATDue,
			Keywords:      []string{"tva", "impot", "impôt", "taxe"},
		},
		{
			Name:          "fixed_assets",
			DebitAccount:  AccountComputerEquipment,
			CreditAccount: AccountAssetSuppliers,
			Keywords:      []string{"ordinateur", "informatique", "vehicule", "véhicule", "mobilier", "immobilisation"},
		},
		{
			Name:          "third_parties",
			DebitAccount:  AccountTradePayables,
			CreditAccount: AccountBank,
			Keywords:      []string{"fournisseur", "dette", "creance", "créance", "remboursement"},
		},
		{
			Name:          "treasury",
			DebitAccount:  AccountBank,
			CreditAccount: AccountCash,
			Keywords:      []string{"banque", "virement", "remise", "especes", "espèces", "caisse", "retrait"},
		},
	}

	return &Taxonomy{accounts: byCode, categories: categories}
}

// keywordFile mirrors the structure of the optional override YAML.
type keywordFile struct {
	Categories []KeywordCategory `yaml:"categories"`
}

// WithKeywordFile returns a copy of the taxonomy whose keyword categories are
// overridden (by name) or extended from the given YAML file. Account codes
// referenced by the file must exist in the chart of accounts.
func (t *Taxonomy) WithKeywordFile(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
	}

	var file keywordFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy file: %w", err)
	}

	merged := make([]KeywordCategory, len(t.categories))
	copy(merged, t.categories)

	for _, override := range file.Categories {
		if override.DebitAccount != "" {
			if _, ok := t.accounts[override.DebitAccount]; !ok {
				return nil, fmt.Errorf("taxonomy file references unknown debit account %s", override.DebitAccount)
			}
		}
		if override.CreditAccount != "" {
			if _, ok := t.accounts[override.CreditAccount]; !ok {
				return nil, fmt.Errorf("taxonomy file references unknown credit account %s", override.CreditAccount)
			}
		}

		replaced := false
		for i := range merged {
			if merged[i].Name != override.Name {
				continue
			}
			if len(override.Keywords) > 0 {
				merged[i].Keywords = override.Keywords
			}
			if override.DebitAccount != "" {
				merged[i].DebitAccount = override.DebitAccount
			}
			if override.CreditAccount != "" {
				merged[i].CreditAccount = override.CreditAccount
			}
			replaced = true
			break
		}
		if !replaced {
			if override.DebitAccount == "" || override.CreditAccount == "" {
				return nil, fmt.Errorf("new taxonomy category %q must name debit and credit accounts", override.Name)
			}
			merged = append(merged, override)
		}
	}

	return &Taxonomy{accounts: t.accounts, categories: merged}, nil
}

// Account looks up one chart-of-accounts entry by code.
func (t *Taxonomy) Account(code string) (domain.LedgerAccount, bool) {
	acc, ok := t.accounts[code]
	return acc, ok
}

// Accounts returns the full chart of accounts sorted by code.
func (t *Taxonomy) Accounts() []domain.LedgerAccount {
	out := make([]domain.LedgerAccount, 0, len(t.accounts))
	for _, acc := range t.accounts {
		out = append(out, acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountCode < out[j].AccountCode })
	return out
}

// Categories returns the ordered keyword categories used by the classifier
// fallback. Callers must not mutate the returned slice.
func (t *Taxonomy) Categories() []KeywordCategory {
	return t.categories
}
