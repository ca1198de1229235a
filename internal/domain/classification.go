package domain

// Category is the coarse severity tier returned by classification.
type Category string

const (
	CategoryHigh     Category = "HIGH"
	CategoryModerate Category = "MODERATE"
	CategoryLow      Category = "LOW"
)

// Subtype is the root-cause dimension returned by classification.
type Subtype string

const (
	SubtypeBiology     Subtype = "BIOLOGY"
	SubtypeEnvironment Subtype = "ENVIRONMENT"
	SubtypeConsistency Subtype = "CONSISTENCY"
	SubtypeEmotional   Subtype = "EMOTIONAL"
	SubtypeCognitive   Subtype = "COGNITIVE"
)

func Categories() []Category {
	return []Category{CategoryHigh, CategoryModerate, CategoryLow}
}

func Subtypes() []Subtype {
	return []Subtype{SubtypeBiology, SubtypeEnvironment, SubtypeConsistency, SubtypeEmotional, SubtypeCognitive}
}

func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

func (s Subtype) Valid() bool {
	for _, known := range Subtypes() {
		if s == known {
			return true
		}
	}
	return false
}

// Classification is one (category, subtype) pair.
type Classification struct {
	Category Category `json:"category"`
	Subtype  Subtype  `json:"subtype"`
}

// DefaultClassification is substituted whenever classification fails.
var DefaultClassification = Classification{Category: CategoryModerate, Subtype: SubtypeConsistency}

// Valid reports whether both halves belong to the closed sets.
func (c Classification) Valid() bool {
	return c.Category.Valid() && c.Subtype.Valid()
}
