package morph

// Field matches one position of a tag tuple against a set of accepted values.
type Field struct {
	Index  int
	Values []string
}

// Matches reports whether tags[f.Index] is one of f.Values.
func (f Field) Matches(tags Tags) bool {
	if f.Index < 0 || f.Index >= len(tags) {
		return false
	}
	for _, v := range f.Values {
		if tags[f.Index] == v {
			return true
		}
	}
	return false
}

// Rule pairs field predicates with the category they imply. Positions not
// named by any field are wildcards.
type Rule struct {
	Fields   []Field
	Category Category
}

// Matches reports whether every field predicate holds.
func (r Rule) Matches(tags Tags) bool {
	for _, f := range r.Fields {
		if !f.Matches(tags) {
			return false
		}
	}
	return true
}

// Table is an ordered rule list; the first matching rule wins.
type Table []Rule

// Categorize returns the category of the first rule matching tags, or Other.
func (t Table) Categorize(tags Tags) Category {
	for _, r := range t {
		if r.Matches(tags) {
			return r.Category
		}
	}
	return Other
}

func rule(c Category, fields ...Field) Rule {
	return Rule{Fields: fields, Category: c}
}

func at(index int, values ...string) Field {
	return Field{Index: index, Values: values}
}
