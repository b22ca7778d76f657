package morph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ipa builds a 9-field IPADIC tuple, padding with "*".
func ipa(fields ...string) Tags {
	return pad(ipaArity, fields)
}

// uni builds a 17-field UniDic tuple, padding with "*".
func uni(fields ...string) Tags {
	return pad(udArity, fields)
}

func pad(n int, fields []string) Tags {
	tags := make(Tags, n)
	for i := range tags {
		tags[i] = NoValue
		if i < len(fields) {
			tags[i] = fields[i]
		}
	}
	return tags
}

func TestCategorize_IPADIC(t *testing.T) {
	tests := []struct {
		name string
		tags Tags
		want Category
	}{
		{"降る", Tags{"動詞", "自立", "*", "*", "五段・ラ行", "基本形", "降る", "フル", "フル"}, Verb},
		{"きれい", Tags{"名詞", "形容動詞語幹", "*", "*", "*", "*", "きれい", "キレイ", "キレイ"}, Keiyoudoushi},
		{"に", Tags{"助詞", "格助詞", "*", "*", "*", "*", "に", "ニ", "ニ"}, CaseParticle},
		{"。", Tags{"記号", "句点", "*", "*", "*", "*", "。", "。", "。"}, Sign},
		{"、", ipa("記号", "読点", "*", "*", "*", "*", "、", "、", "、"), Sign},
		{"「", ipa("記号", "括弧開", "*", "*", "*", "*", "「", "「", "「"), Other},
		{"雨", ipa("名詞", "一般", "*", "*", "*", "*", "雨", "アメ", "アメ"), Noun},
		{"三", ipa("名詞", "数", "*", "*", "*", "*", "三", "サン", "サン"), Noun},
		{"それぞれ", ipa("名詞", "副詞可能", "*", "*", "*", "*", "それぞれ"), Noun},
		{"さん", ipa("名詞", "接尾", "人名", "*", "*", "*", "さん"), NounSuffix},
		{"東京", ipa("名詞", "固有名詞", "地域", "一般", "*", "*", "東京"), ProperNoun},
		{"勉強", ipa("名詞", "サ変接続", "*", "*", "*", "*", "勉強"), SuruVerb},
		{"私", ipa("名詞", "代名詞", "一般", "*", "*", "*", "私"), Pronoun},
		{"高い", ipa("形容詞", "自立", "*", "*", "形容詞・アウオ段", "基本形", "高い"), AdjectiveIDictForm},
		{"高く", ipa("形容詞", "自立", "*", "*", "形容詞・アウオ段", "連用テ接続", "高い"), AdjectiveIConjForm},
		{"高かっ", ipa("形容詞", "自立", "*", "*", "形容詞・アウオ段", "連用タ接続", "高い"), AdjectiveIConjForm},
		{"ない", ipa("形容詞", "自立", "*", "*", "形容詞・アウオ段", "基本形", "ない"), NegationDictForm},
		{"なかっ", ipa("形容詞", "自立", "*", "*", "形容詞・アウオ段", "連用タ接続", "ない"), NegationConjForm},
		{"な", ipa("助動詞", "*", "*", "*", "特殊・ダ", "体言接続", "だ"), AttributiveParticle},
		{"で", ipa("助動詞", "*", "*", "*", "特殊・ダ", "連用形", "だ"), ContinuativeAuxiliary},
		{"た", ipa("助動詞", "*", "*", "*", "特殊・タ", "基本形", "た"), AuxiliaryVerb},
		{"に (副詞化)", ipa("助詞", "副詞化", "*", "*", "*", "*", "に"), AdverbificationParticle},
		{"の", ipa("助詞", "連体化", "*", "*", "*", "*", "の"), AdjectivisationParticle},
		{"て", ipa("助詞", "接続助詞", "*", "*", "*", "*", "て"), ContinuativeParticle},
		{"が (接続)", ipa("助詞", "接続助詞", "*", "*", "*", "*", "が"), Particle},
		{"は", ipa("助詞", "係助詞", "*", "*", "*", "*", "は"), ConnectingParticle},
		{"まで", ipa("助詞", "副助詞", "*", "*", "*", "*", "まで"), Particle},
		{"大抵", ipa("副詞", "一般", "*", "*", "*", "*", "大抵"), Adverb},
		{"お", ipa("接頭詞", "名詞接続", "*", "*", "*", "*", "お"), Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.tags))
		})
	}
}

func TestCategorize_UniDic(t *testing.T) {
	tests := []struct {
		name string
		tags Tags
		want Category
	}{
		{"降る", uni("動詞", "一般", "*", "*", "五段-ラ行", "終止形-一般", "フル", "降る", "降る"), Verb},
		{"ため", uni("名詞", "普通名詞", "副詞可能", "*", "*", "*", "タメ", "為", "ため"), Noun},
		{"勉強", uni("名詞", "普通名詞", "サ変可能", "*", "*", "*", "ベンキョウ", "勉強", "勉強"), SuruVerb},
		{"東京", uni("名詞", "固有名詞", "地名", "一般", "*", "*", "トウキョウ", "東京", "東京"), ProperNoun},
		{"私", uni("代名詞", "*", "*", "*", "*", "*", "ワタクシ", "私", "私"), Pronoun},
		{"さん", uni("接尾辞", "名詞的", "一般", "*", "*", "*", "サン", "さん", "さん"), NounSuffix},
		{"きれい", uni("形状詞", "一般", "*", "*", "*", "*", "キレイ", "綺麗", "きれい"), Keiyoudoushi},
		{"な", uni("助動詞", "*", "*", "*", "助動詞-ダ", "連体形-一般", "ダ", "だ", "な"), AttributiveParticle},
		{"に", uni("助動詞", "*", "*", "*", "助動詞-ダ", "連用形-ニ", "ダ", "だ", "に"), AdverbificationParticle},
		{"で", uni("助動詞", "*", "*", "*", "助動詞-ダ", "連用形-一般", "ダ", "だ", "で"), ContinuativeAuxiliary},
		{"まし", uni("助動詞", "*", "*", "*", "助動詞-マス", "連用形-一般", "マス", "ます", "まし"), ContinuativeAuxiliary},
		{"た", uni("助動詞", "*", "*", "*", "助動詞-タ", "終止形-一般", "タ", "た", "た"), AuxiliaryVerb},
		{"て", uni("助詞", "接続助詞", "*", "*", "*", "*", "テ", "て", "て"), ContinuativeParticle},
		{"に (格)", uni("助詞", "格助詞", "*", "*", "*", "*", "ニ", "に", "に"), CaseParticle},
		{"は", uni("助詞", "係助詞", "*", "*", "*", "*", "ハ", "は", "は"), ConnectingParticle},
		{"か", uni("助詞", "終助詞", "*", "*", "*", "*", "カ", "か", "か"), Particle},
		{"ない", uni("形容詞", "非自立可能", "*", "*", "形容詞", "終止形-一般", "ナイ", "無い", "ない"), NegationDictForm},
		{"なく", uni("形容詞", "非自立可能", "*", "*", "形容詞", "連用形-一般", "ナイ", "無い", "なく"), NegationConjForm},
		{"なかっ", uni("形容詞", "非自立可能", "*", "*", "形容詞", "連用形-促音便", "ナイ", "無い", "なかっ"), NegationConjForm},
		{"難しい", uni("形容詞", "一般", "*", "*", "形容詞", "終止形-一般", "ムズカシイ", "難しい", "難しい"), AdjectiveIDictForm},
		{"難しく", uni("形容詞", "一般", "*", "*", "形容詞", "連用形-一般", "ムズカシイ", "難しい", "難しく"), AdjectiveIConjForm},
		{"難しかっ", uni("形容詞", "一般", "*", "*", "形容詞", "連用形-促音便", "ムズカシイ", "難しい", "難しかっ"), AdjectiveIConjForm},
		{"難しけれ", uni("形容詞", "一般", "*", "*", "形容詞", "仮定形-一般", "ムズカシイ", "難しい", "難しけれ"), Other},
		{"大抵", uni("副詞", "*", "*", "*", "*", "*", "タイテイ", "大抵", "大抵"), Adverb},
		{"。", uni("補助記号", "句点", "*", "*", "*", "*", "", "。", "。"), Sign},
		{"新", uni("接頭辞", "*", "*", "*", "*", "*", "シン", "新", "新"), Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.tags))
		})
	}
}

func TestCategorize_UnknownArity(t *testing.T) {
	assert.Equal(t, Other, Categorize(nil))
	assert.Equal(t, Other, Categorize(Tags{"UNK"}))
	assert.Equal(t, Other, Categorize(Tags{"動詞", "自立", "*", "*", "*", "*", "*"}))
}

func TestCategorize_Deterministic(t *testing.T) {
	tags := uni("助動詞", "*", "*", "*", "助動詞-ダ", "連体形-一般", "ダ", "だ", "な")
	first := Categorize(tags)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Categorize(append(Tags(nil), tags...)))
	}
}

func TestSchemaFor(t *testing.T) {
	assert.Same(t, IPADIC, SchemaFor(ipa("名詞")))
	assert.Same(t, UniDic, SchemaFor(uni("名詞")))
	assert.Nil(t, SchemaFor(Tags{"名詞"}))

	s, err := SchemaByName("UniDic")
	assert.NoError(t, err)
	assert.Same(t, UniDic, s)

	_, err = SchemaByName("jumandic")
	assert.Error(t, err)
}

func TestRules_FirstMatchWins(t *testing.T) {
	table := Table{
		rule(Verb, at(0, "x")),
		rule(Noun, at(0, "x"), at(1, "y")),
	}
	assert.Equal(t, Verb, table.Categorize(Tags{"x", "y"}))
	assert.Equal(t, Other, table.Categorize(Tags{"z", "y"}))
}

func TestField_OutOfRange(t *testing.T) {
	assert.False(t, at(5, "x").Matches(Tags{"x"}))
	assert.False(t, at(-1, "x").Matches(Tags{"x"}))
}
