package palette

import (
	"image/color"
	"testing"

	"github.com/ironsheep/kanjisabi/internal/morph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#ff0000", want: color.NRGBA{R: 255, A: 255}},
		{in: "00ff0080", want: color.NRGBA{G: 255, A: 128}},
		{in: " #32ff00ff ", want: color.NRGBA{R: 0x32, G: 255, A: 255}},
		{in: "#fff", wantErr: true},
		{in: "#gg0000", wantErr: true},
		{in: "#ff0000zz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseHex(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.NRGBA())
		})
	}
}

func TestColor_HexRoundTrip(t *testing.T) {
	c, err := ParseHex("#000024c0")
	require.NoError(t, err)
	assert.Equal(t, "#000024c0", c.Hex())
}

func TestDefault(t *testing.T) {
	p := Default()
	assert.Equal(t, color.NRGBA{R: 0x32, G: 0xff, B: 0x00, A: 0xff}, p.Hint.NRGBA())
	assert.Equal(t, uint8(0xc0), p.HintBackground.Alpha)

	for _, c := range morph.Categories() {
		assert.NotZero(t, p.Category(c).Alpha, c.String())
	}
	assert.NotEqual(t, p.Category(morph.Verb).NRGBA(), p.Category(morph.Noun).NRGBA())
}

func TestNew_Overrides(t *testing.T) {
	p, err := New(map[string]string{
		CaptureKey: "#112233",
		"Verb":     "#ff000080",
	})
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff}, p.Capture.NRGBA())
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0x80}, p.Category(morph.Verb).NRGBA())

	_, err = New(map[string]string{"Prefix": "#ffffff"})
	assert.Error(t, err)

	_, err = New(map[string]string{HintKey: "blue"})
	assert.Error(t, err)
}
