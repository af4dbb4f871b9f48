package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "apres-demain", Fold("Après-Demain"))
	assert.Equal(t, "canide", Fold("CANIDÉ"))
	assert.Equal(t, "aujourd'hui", Fold("Aujourd'hui"))
	assert.Equal(t, "offnungszeiten", Fold("Öffnungszeiten"))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"C'est ouvert demain ?", "c est ouvert demain"},
		{"  Quel est le PRIX ?!  ", "quel est le prix"},
		{"aujourd’hui", "aujourd hui"},
		{"7€/adulte", "7 adulte"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestContainsPhrase(t *testing.T) {
	text := Normalize("Est-ce que le chien peut venir demain ?")
	assert.True(t, ContainsPhrase(text, "chien"))
	assert.True(t, ContainsPhrase(text, "peut venir"))
	assert.False(t, ContainsPhrase(text, "chat"))
	assert.False(t, ContainsPhrase(Normalize("chateau"), "chat"))
	assert.False(t, ContainsPhrase(text, ""))
}

func TestContainsPrefix(t *testing.T) {
	text := Normalize("Les animaux sont-ils admis ?")
	assert.True(t, ContainsPrefix(text, "anima"))
	assert.True(t, ContainsPrefix(text, "les"))
	assert.False(t, ContainsPrefix(text, "nimaux"))
	assert.False(t, ContainsPrefix(text, ""))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"3", 3, true},
		{"12", 12, true},
		{"deux", 2, true},
		{"une", 1, true},
		{"three", 3, true},
		{"1er", 1, true},
		{"premier", 1, true},
		{"-4", 0, false},
		{"beaucoup", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, ok := ParseNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, n)
			}
		})
	}
}
