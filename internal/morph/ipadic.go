package morph

// IPADIC field positions.
const (
	ipaPOS     = 0 // 品詞
	ipaPOS1    = 1 // 品詞細分類1
	ipaCType   = 4 // 活用型
	ipaCForm   = 5 // 活用形
	ipaBase    = 6 // 原形
	ipaReading = 7 // 読み
	ipaArity   = 9
)

var ipadicRules = Table{
	rule(Verb, at(ipaPOS, "動詞")),

	// 一般, 数 and 副詞可能 nouns fall through to Noun
	rule(Keiyoudoushi, at(ipaPOS, "名詞"), at(ipaPOS1, "形容動詞語幹")),
	rule(ProperNoun, at(ipaPOS, "名詞"), at(ipaPOS1, "固有名詞")),
	rule(SuruVerb, at(ipaPOS, "名詞"), at(ipaPOS1, "サ変接続")),
	rule(NounSuffix, at(ipaPOS, "名詞"), at(ipaPOS1, "接尾")),
	rule(Pronoun, at(ipaPOS, "名詞"), at(ipaPOS1, "代名詞")),
	rule(Noun, at(ipaPOS, "名詞")),

	// ない is an adjective in IPADIC; 連用タ接続 is the geminated (促音便) form
	rule(NegationDictForm, at(ipaPOS, "形容詞"), at(ipaCForm, "基本形"), at(ipaBase, "ない")),
	rule(NegationConjForm, at(ipaPOS, "形容詞"), at(ipaCForm, "連用テ接続", "連用タ接続"), at(ipaBase, "ない")),
	rule(AdjectiveIDictForm, at(ipaPOS, "形容詞"), at(ipaCForm, "基本形")),
	rule(AdjectiveIConjForm, at(ipaPOS, "形容詞")),

	rule(AttributiveParticle, at(ipaPOS, "助動詞"), at(ipaCForm, "体言接続")),
	rule(ContinuativeAuxiliary, at(ipaPOS, "助動詞"), at(ipaCForm, "連用形", "連用テ接続")),
	rule(AuxiliaryVerb, at(ipaPOS, "助動詞")),

	rule(AdverbificationParticle, at(ipaPOS, "助詞"), at(ipaPOS1, "副詞化")),
	rule(AdjectivisationParticle, at(ipaPOS, "助詞"), at(ipaPOS1, "連体化")),
	rule(ContinuativeParticle, at(ipaPOS, "助詞"), at(ipaPOS1, "接続助詞"), at(ipaBase, "て", "で")),
	rule(CaseParticle, at(ipaPOS, "助詞"), at(ipaPOS1, "格助詞")),
	rule(ConnectingParticle, at(ipaPOS, "助詞"), at(ipaPOS1, "係助詞")),
	rule(Particle, at(ipaPOS, "助詞")),

	rule(Adverb, at(ipaPOS, "副詞")),
	rule(Sign, at(ipaPOS, "記号"), at(ipaPOS1, "句点", "読点")),
}

// IPADIC is the 9-field MeCab IPA dictionary schema:
// [品詞, 細分類1, 細分類2, 細分類3, 活用型, 活用形, 原形, 読み, 発音].
// It carries no surface field; the base form stands in when the analyzer
// does not report the surface separately.
var IPADIC = &Schema{
	Name:         "ipadic",
	Arity:        ipaArity,
	SurfaceField: ipaBase,
	LemmaField:   ipaBase,
	ReadingField: ipaReading,
	CTypeField:   ipaCType,
	CFormField:   ipaCForm,
	Rules:        ipadicRules,
}
