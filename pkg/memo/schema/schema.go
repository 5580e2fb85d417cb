package schema

// The extraction schema is closed: the extractor only ever reports fields
// declared here, and anything else an LLM invents is dropped before it can
// reach the fact store.

// Confidence is a categorical judgment, not a numeric score. Keeping it
// categorical keeps the regeneration policy trivially testable.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Rank orders confidence tiers. Unknown strings rank below low.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceLow:
		return 1
	case ConfidenceMedium:
		return 2
	case ConfidenceHigh:
		return 3
	default:
		return 0
	}
}

// Normalize maps arbitrary extractor output onto a valid tier.
func Normalize(raw string) Confidence {
	switch Confidence(raw) {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return Confidence(raw)
	default:
		return ConfidenceLow
	}
}

// FieldKind is the closed set of value shapes a fact can take.
type FieldKind string

const (
	KindDate   FieldKind = "date"
	KindMoney  FieldKind = "money"
	KindEntity FieldKind = "entity"
	KindText   FieldKind = "text"
)

// Field describes one extractable datum about the transaction.
type Field struct {
	Name        string
	Kind        FieldKind
	Description string
}

// Value is an extracted field value with its confidence tier.
type Value struct {
	Value      string     `json:"value"`
	Confidence Confidence `json:"confidence"`
}

// FactMap is the sparse field -> value mapping the extractor produces and
// the session accumulates.
type FactMap map[string]Value

// Fields returns the closed extraction schema for business combination
// memos. Order is stable and used wherever deterministic iteration matters.
func Fields() []Field {
	return []Field{
		{Name: "acquisition_date", Kind: KindDate, Description: "When the acquisition occurred (specific date)"},
		{Name: "acquirer", Kind: KindEntity, Description: "The entity acquiring control"},
		{Name: "acquiree", Kind: KindEntity, Description: "The entity being acquired"},
		{Name: "consideration", Kind: KindMoney, Description: "Details about payment (amount, type of consideration)"},
		{Name: "goodwill", Kind: KindMoney, Description: "Value of goodwill recognized"},
		{Name: "fair_value", Kind: KindMoney, Description: "Fair values of assets or liabilities"},
		{Name: "identifiable_assets", Kind: KindText, Description: "Details about specific assets identified"},
		{Name: "liabilities", Kind: KindText, Description: "Details about specific liabilities assumed"},
	}
}

// FieldNames returns the schema field names in declaration order.
func FieldNames() []string {
	fields := Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// IsKnownField reports whether name belongs to the closed schema.
func IsKnownField(name string) bool {
	for _, f := range Fields() {
		if f.Name == name {
			return true
		}
	}
	return false
}

// sectionFields maps a section spec id to the schema fields relevant to it.
// Static configuration: the synthesizer consults this to decide which
// accumulated facts take precedence inside a section.
var sectionFields = map[string][]string{
	"overview":           {"acquirer", "acquiree", "acquisition_date"},
	"acquirer_id":        {"acquirer", "acquiree"},
	"acquisition_date":   {"acquisition_date"},
	"consideration":      {"consideration", "fair_value"},
	"assets_liabilities": {"identifiable_assets", "liabilities", "fair_value"},
	"goodwill":           {"goodwill", "consideration", "fair_value"},
	"disclosures":        {"acquisition_date", "consideration", "goodwill"},
}

// SectionFields returns the schema field names relevant to a section, in a
// stable order. Unknown sections get no fields.
func SectionFields(sectionID string) []string {
	return sectionFields[sectionID]
}
