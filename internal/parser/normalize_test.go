package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trustlabel/internal/parser"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"05/03/24", "2024-03-05"},
		{"5-3-2024", "2024-03-05"},
		{"15/12/2023", "2023-12-15"},
		{"2024-03-05", "2024-03-05"},
		{"March 5", "March 5"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parser.NormalizeDate(tt.in))
		})
	}
}

func TestNormalizeUnit(t *testing.T) {
	p := parser.New()

	tests := map[string]string{
		"mg/kg": "ppm",
		"μg/kg": "ppb",
		"ug/kg": "ppb",
		"UFC/g": "CFU/g",
		"ufc/g": "CFU/g",
		"NMP/g": "MPN/g",
		"kcal":  "kcal",
		"":      "",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, p.NormalizeUnit(in))
		})
	}
}

func TestNormalizeUnit_Idempotent(t *testing.T) {
	p := parser.New()
	for _, u := range []string{"mg/kg", "μg/kg", "UFC/g", "NMP/g", "Col/g", "mg/L", "g/100g", "furlongs"} {
		once := p.NormalizeUnit(u)
		assert.Equal(t, once, p.NormalizeUnit(once), "unit %q", u)
	}
}

func TestNormalizeText_ComposesAccents(t *testing.T) {
	decomposed := "Cha\u0301dmio"
	assert.Equal(t, "Ch\u00e1dmio", parser.NormalizeText(decomposed))
}
