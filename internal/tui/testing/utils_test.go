package testing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "R$ 1.800,00", StripANSI("\x1b[1;38;5;42mR$ 1.800,00\x1b[0m"))
	assert.Equal(t, "plain", StripANSI("plain"))
}

func TestPlain(t *testing.T) {
	assert.Equal(t, "Página 1 de 2", Plain("  \x1b[2mPágina\x1b[0m   1\n de 2 "))
}

func TestContainsInOrder(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected []string
		want     bool
	}{
		{"in order", "Faturamento Histórico Agenda", []string{"Faturamento", "Agenda"}, true},
		{"out of order", "Faturamento Histórico Agenda", []string{"Agenda", "Faturamento"}, false},
		{"missing", "Faturamento", []string{"Agenda"}, false},
		{"nothing expected", "x", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsInOrder(tt.output, tt.expected...))
		})
	}
}
