package docx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLengthConversions(t *testing.T) {
	assert.Equal(t, Length(914400), Inches(1))
	assert.Equal(t, Length(360000), Cm(1))
	assert.Equal(t, Length(36000), Mm(1))
	assert.Equal(t, Length(12700), Pt(1))
	assert.Equal(t, Length(914400), Twips(1440))
	assert.Equal(t, Length(42), Emu(42))

	l := Inches(2)
	assert.InDelta(t, 2.0, l.Inches(), 1e-9)
	assert.InDelta(t, 5.08, l.Cm(), 1e-9)
	assert.InDelta(t, 50.8, l.Mm(), 1e-9)
	assert.InDelta(t, 144.0, l.Pt(), 1e-9)
	assert.Equal(t, int64(2880), l.Twips())
	assert.Equal(t, int64(1828800), l.Emu())
	assert.Equal(t, "1828800emu", l.String())
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		input   string
		want    Length
		wantErr bool
	}{
		{"2in", Inches(2), false},
		{"1.5in", Inches(1.5), false},
		{"5cm", Cm(5), false},
		{"12mm", Mm(12), false},
		{"72pt", Pt(72), false},
		{"1440twip", Twips(1440), false},
		{"100emu", 100, false},
		{"914400", 914400, false},
		{" 3 CM ", Cm(3), false},
		{"", 0, true},
		{"2ft", 0, true},
		{"abcin", 0, true},
		{"-1in", 0, true},
		{"-5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLength(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
