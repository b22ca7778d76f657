package morph

import "fmt"

// Category is the lexical category used to pick a presentation treatment.
type Category int

const (
	Other Category = iota
	Noun
	ProperNoun
	SuruVerb
	NounSuffix
	Keiyoudoushi
	Pronoun
	AdjectiveIDictForm
	AdjectiveIConjForm
	NegationDictForm
	NegationConjForm
	Adverb
	AdverbificationParticle
	AdjectivisationParticle
	ContinuativeParticle
	ContinuativeAuxiliary
	Verb
	AuxiliaryVerb
	AttributiveParticle
	Particle
	CaseParticle
	ConnectingParticle
	Sign
)

var categoryNames = [...]string{
	Other:                   "Other",
	Noun:                    "Noun",
	ProperNoun:              "ProperNoun",
	SuruVerb:                "SuruVerb",
	NounSuffix:              "NounSuffix",
	Keiyoudoushi:            "Keiyoudoushi",
	Pronoun:                 "Pronoun",
	AdjectiveIDictForm:      "AdjectiveIDictForm",
	AdjectiveIConjForm:      "AdjectiveIConjForm",
	NegationDictForm:        "NegationDictForm",
	NegationConjForm:        "NegationConjForm",
	Adverb:                  "Adverb",
	AdverbificationParticle: "AdverbificationParticle",
	AdjectivisationParticle: "AdjectivisationParticle",
	ContinuativeParticle:    "ContinuativeParticle",
	ContinuativeAuxiliary:   "ContinuativeAuxiliary",
	Verb:                    "Verb",
	AuxiliaryVerb:           "AuxiliaryVerb",
	AttributiveParticle:     "AttributiveParticle",
	Particle:                "Particle",
	CaseParticle:            "CaseParticle",
	ConnectingParticle:      "ConnectingParticle",
	Sign:                    "Sign",
}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, len(categoryNames))
	for i := range categoryNames {
		out[i] = Category(i)
	}
	return out
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory returns the category with the given name.
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return Other, fmt.Errorf("unknown lexical category: %q", name)
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(categoryNames) {
		return nil, fmt.Errorf("invalid lexical category: %d", int(c))
	}
	return []byte(categoryNames[c]), nil
}

// UnmarshalText decodes a category name.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
