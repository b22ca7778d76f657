// Package morph models the output of a Japanese morphological analyzer and
// classifies it into a small closed set of lexical categories.
//
// An analyzer returns, per morpheme, a tuple of grammatical detail tags whose
// arity and field meaning depend on the dictionary it was built with. Two
// schemas are supported: IPADIC (9 fields) and UniDic (17 fields). The schema
// is selected once from the tuple length; each schema owns an ordered rule
// table that Categorize evaluates top to bottom, first match wins. Tuples
// matching no rule, and tuples of any other length, are Other.
package morph
