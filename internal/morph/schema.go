package morph

import (
	"fmt"
	"strings"
)

// Tags is the grammatical detail tuple returned by the analyzer.
type Tags []string

// NoValue is the placeholder analyzers use for an empty field.
const NoValue = "*"

// Schema describes the arity and field layout of a dictionary's tag tuple.
type Schema struct {
	Name  string
	Arity int

	SurfaceField int
	LemmaField   int
	ReadingField int
	CTypeField   int
	CFormField   int

	Rules Table
}

var schemas = []*Schema{IPADIC, UniDic}

// SchemaFor selects the schema from the tuple length, or nil when the length
// matches no known dictionary.
func SchemaFor(tags Tags) *Schema {
	for _, s := range schemas {
		if len(tags) == s.Arity {
			return s
		}
	}
	return nil
}

// SchemaByName looks a schema up by its name ("ipadic" or "unidic").
func SchemaByName(name string) (*Schema, error) {
	for _, s := range schemas {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("unknown dictionary schema: %q", name)
}

// field returns tags[i] with NoValue mapped to "".
func (s *Schema) field(tags Tags, i int) string {
	if i < 0 || i >= len(tags) || tags[i] == NoValue {
		return ""
	}
	return tags[i]
}

// PartOfSpeech joins the leading part-of-speech levels, stopping at the first
// empty one, e.g. "名詞-普通名詞-一般".
func (s *Schema) PartOfSpeech(tags Tags) string {
	parts := make([]string, 0, 4)
	for i := 0; i < 4 && i < len(tags); i++ {
		if tags[i] == NoValue {
			break
		}
		parts = append(parts, tags[i])
	}
	return strings.Join(parts, "-")
}

// Categorize evaluates the schema's rule table.
func (s *Schema) Categorize(tags Tags) Category {
	return s.Rules.Categorize(tags)
}

// Categorize classifies a tag tuple. The schema is chosen once from the tuple
// length; unknown lengths are Other.
func Categorize(tags Tags) Category {
	s := SchemaFor(tags)
	if s == nil {
		return Other
	}
	return s.Categorize(tags)
}
