package categorizer

// Rule maps a lower-cased description fragment to a subcategory label.
// Rules are evaluated in declaration order and the first hit wins, so
// slice order is load-bearing: several descriptions match more than
// one keyword.
type Rule struct {
	Keyword     string `yaml:"keyword"`
	Subcategory string `yaml:"subcategory"`
}

// Differences that require a correcting accounting entry.
func defaultPermanentRules() []Rule {
	return []Rule{
		{"comision", "Comisiones"},
		{"impuesto", "Impuestos y percepciones"},
		{"imp.", "Impuestos y percepciones"},
		{"percep", "Impuestos y percepciones"},
		{"debito automatico", "Débito automático"},
		{"debito autom", "Débito automático"},
		{"sueldo", "Sueldos y cargas sociales"},
		{"carga social", "Sueldos y cargas sociales"},
		{"rechazo", "Cheques rechazados"},
		{"devuelto", "Cheques rechazados"},
		{"anulacion", "Anulaciones"},
		{"ley 25413", "Impuestos y percepciones"},
		{"ing. bruto", "Impuestos y percepciones"},
		{"ingresos brutos", "Impuestos y percepciones"},
	}
}

// Differences expected to clear on their own, no entry needed.
func defaultTemporalRules() []Rule {
	return []Rule{
		{"acreditacion", "Acreditaciones en tránsito"},
		{"transferencia", "Transferencias transitorias"},
		{"transito", "Depósitos en tránsito"},
		{"tránsito", "Depósitos en tránsito"},
		{"en tránsito", "Depósitos en tránsito"},
		{"en transito", "Depósitos en tránsito"},
		{"prisma", "Acreditaciones tarjetas"},
		{"tarjeta", "Acreditaciones tarjetas"},
	}
}

// Default subcategories applied when no keyword matches.
const (
	SubcategoryDepositsInTransit = "Depósitos en tránsito"
	SubcategoryOmittedNotes      = "Notas de débito/crédito omitidas"
)
