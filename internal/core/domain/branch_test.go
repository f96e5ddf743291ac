package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveBranch_KnownTokens(t *testing.T) {
	tests := []struct {
		filename string
		expected Branch
	}{
		{"Ventas_Quito_2024.csv", Branch{LocalID: 1, Name: "Quito"}},
		{"Ventas_Ambato_2024.csv", Branch{LocalID: 2, Name: "Ambato"}},
		{"Ventas_Latacunga_2024.csv", Branch{LocalID: 3, Name: "Latacunga"}},
		{"Ventas_Cuenca_2024.csv", Branch{LocalID: 4, Name: "Cuenca"}},
		{"Quito.xlsx", Branch{LocalID: 1, Name: "Quito"}},
		{"reporteCuencaenero.csv", Branch{LocalID: 4, Name: "Cuenca"}},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveBranch(tt.filename))
		})
	}
}

func TestResolveBranch_FallsBackToUnknown(t *testing.T) {
	for _, name := range []string{
		"",
		"Ventas_Guayaquil_2024.csv",
		"ventas_quito_2024.csv", // case-sensitive
		"QUITO.csv",
		"Ambat.csv",
	} {
		t.Run(name, func(t *testing.T) {
			b := ResolveBranch(name)
			assert.Equal(t, UnknownBranch, b)
			assert.Equal(t, 0, b.LocalID)
			assert.Equal(t, "Unknown", b.Name)
		})
	}
}

func TestResolveBranch_FirstMatchWins(t *testing.T) {
	// Quito precedes Cuenca in the mapping regardless of position in the name.
	assert.Equal(t, 1, ResolveBranch("Cuenca_y_Quito.csv").LocalID)
	assert.Equal(t, 2, ResolveBranch("Latacunga_Ambato.csv").LocalID)
}

func TestKnownBranches(t *testing.T) {
	branches := KnownBranches()

	assert.Len(t, branches, 4)
	for i, b := range branches {
		assert.Equal(t, i+1, b.LocalID)
		assert.Equal(t, b, ResolveBranch("x_"+b.Name+"_y.csv"))
	}
}
