package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseSpaces(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Ana Maria", CollapseSpaces("  Ana   Maria \t"))
	assert.Equal(t, "", CollapseSpaces("   "))
}

func TestFoldKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, FoldKey("ANA  maria"), FoldKey(" Ana Maria"))
	assert.NotEqual(t, FoldKey("Ana"), FoldKey("Bruno"))
}

func TestStripAccents(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Saida 1", StripAccents("Saída 1"))
	assert.Equal(t, "Joao Conceicao", StripAccents("João Conceição"))
}

func TestNormalizeHeader(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Saída 1":        "saida1",
		"saida_1":        "saida1",
		"SAIDA-1":        "saida1",
		"Turnos.ENTRADA": "turnos.entrada",
		" Nome ":         "nome",
	}
	for input, want := range tests {
		assert.Equal(t, want, NormalizeHeader(input), "header %q", input)
	}
}
