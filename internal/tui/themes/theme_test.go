package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/odonto-flow/internal/model"
)

func TestGetTheme(t *testing.T) {
	tests := []struct {
		name string
		want Theme
	}{
		{"default", Default},
		{"catppuccin-mocha", CatppuccinMocha},
		{"unknown", Default},
		{"", Default},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want.Primary, GetTheme(tt.name).Primary)
		})
	}
}

func TestStatusStyle(t *testing.T) {
	theme := Default

	assert.Equal(t, theme.StatusSuccess.GetForeground(), theme.StatusStyle(model.StatusConcluida).GetForeground())
	assert.Equal(t, theme.StatusError.GetForeground(), theme.StatusStyle(model.StatusCancelada).GetForeground())
	assert.Equal(t, theme.StatusInfo.GetForeground(), theme.StatusStyle(model.StatusAgendada).GetForeground())
	assert.Equal(t, theme.StatusPending.GetForeground(), theme.StatusStyle(model.Status("OUTRO")).GetForeground())
}
