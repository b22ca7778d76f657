package morph

// UniDic field positions, see
// https://hayashibe.jp/tr/mecab/dictionary/unidic/field
const (
	udPOS1  = 0 // 品詞大分類
	udPOS2  = 1 // 品詞中分類
	udPOS3  = 2 // 品詞小分類
	udCType = 4 // 活用型
	udCForm = 5 // 活用形
	udLForm = 6 // 語彙素読み
	udLemma = 7 // 語彙素表記
	udOrth  = 8 // 書字形出現形
	udArity = 17
)

var unidicRules = Table{
	rule(Verb, at(udPOS1, "動詞")),

	rule(ProperNoun, at(udPOS1, "名詞"), at(udPOS2, "固有名詞")),
	rule(SuruVerb, at(udPOS1, "名詞"), at(udPOS2, "普通名詞"), at(udPOS3, "サ変可能")),
	rule(Noun, at(udPOS1, "名詞")),
	rule(Pronoun, at(udPOS1, "代名詞")),
	rule(NounSuffix, at(udPOS1, "接尾辞"), at(udPOS2, "名詞的")),
	rule(Keiyoudoushi, at(udPOS1, "形状詞")),

	// な of きれいな, に of きれいに, で of きれいで
	rule(AttributiveParticle, at(udPOS1, "助動詞"), at(udCForm, "連体形-一般"), at(udOrth, "な")),
	rule(AdverbificationParticle, at(udPOS1, "助動詞"), at(udOrth, "に")),
	rule(ContinuativeAuxiliary, at(udPOS1, "助動詞"), at(udCForm, "連用形-一般")),
	rule(AuxiliaryVerb, at(udPOS1, "助動詞")),

	rule(ContinuativeParticle, at(udPOS1, "助詞"), at(udPOS2, "接続助詞"), at(udOrth, "て", "で")),
	rule(CaseParticle, at(udPOS1, "助詞"), at(udPOS2, "格助詞")),
	rule(ConnectingParticle, at(udPOS1, "助詞"), at(udPOS2, "係助詞")),
	rule(Particle, at(udPOS1, "助詞")),

	rule(NegationDictForm, at(udPOS1, "形容詞"), at(udPOS2, "非自立可能"),
		at(udCForm, "終止形-一般", "連体形-一般"), at(udLemma, "無い")),
	rule(NegationConjForm, at(udPOS1, "形容詞"), at(udPOS2, "非自立可能"),
		at(udCForm, "連用形-一般", "連用形-促音便"), at(udLemma, "無い")),
	rule(AdjectiveIDictForm, at(udPOS1, "形容詞"), at(udCForm, "終止形-一般", "連体形-一般")),
	rule(AdjectiveIConjForm, at(udPOS1, "形容詞"), at(udCForm, "連用形-一般", "連用形-促音便")),

	rule(Adverb, at(udPOS1, "副詞")),
	rule(Sign, at(udPOS1, "補助記号"), at(udPOS2, "句点", "読点")),
}

// UniDic is the 17-field UniDic schema. The surface (書字形出現形) is field 8.
var UniDic = &Schema{
	Name:         "unidic",
	Arity:        udArity,
	SurfaceField: udOrth,
	LemmaField:   udLemma,
	ReadingField: udLForm,
	CTypeField:   udCType,
	CFormField:   udCForm,
	Rules:        unidicRules,
}
