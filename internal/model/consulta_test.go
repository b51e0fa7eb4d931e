package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsulta_Amount(t *testing.T) {
	price := decimal.NullDecimal{Decimal: decimal.NewFromInt(120), Valid: true}

	tests := []struct {
		name     string
		consulta Consulta
		want     string
	}{
		{
			name: "charged amount wins",
			consulta: Consulta{
				ValorCobrado: decimal.NullDecimal{Decimal: decimal.NewFromInt(200), Valid: true},
				TipoConsulta: &TipoConsulta{Nome: "Limpeza", Preco: price},
			},
			want: "200",
		},
		{
			name:     "falls back to type price",
			consulta: Consulta{TipoConsulta: &TipoConsulta{Nome: "Limpeza", Preco: price}},
			want:     "120",
		},
		{
			name: "zero charged amount falls back to type price",
			consulta: Consulta{
				ValorCobrado: decimal.NullDecimal{Decimal: decimal.Zero, Valid: true},
				TipoConsulta: &TipoConsulta{Nome: "Limpeza", Preco: price},
			},
			want: "120",
		},
		{
			name:     "type without price",
			consulta: Consulta{TipoConsulta: &TipoConsulta{Nome: "Avaliação"}},
			want:     "0",
		},
		{
			name:     "nothing at all",
			consulta: Consulta{},
			want:     "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.consulta.Amount().String())
		})
	}
}

func TestConsulta_EffectiveDate(t *testing.T) {
	scheduled := &Slot{Data: NewDate(2024, 1, 1), HoraInicio: "09:00:00"}
	completed := &Timestamp{Time: time.Date(2024, 1, 5, 14, 30, 0, 0, time.UTC)}

	t.Run("completion date wins", func(t *testing.T) {
		c := Consulta{AgendaDisponivel: scheduled, DataConclusao: completed}
		d, ok := c.EffectiveDate()
		require.True(t, ok)
		assert.Equal(t, "2024-01-05", d.ISO())
		assert.Equal(t, completed.Time, c.EffectiveTime())
	})

	t.Run("scheduled date otherwise", func(t *testing.T) {
		c := Consulta{AgendaDisponivel: scheduled}
		d, ok := c.EffectiveDate()
		require.True(t, ok)
		assert.Equal(t, "2024-01-01", d.ISO())
		assert.Equal(t, "09:00", c.StartTime())
	})

	t.Run("missing both", func(t *testing.T) {
		c := Consulta{}
		_, ok := c.EffectiveDate()
		assert.False(t, ok)
		assert.True(t, c.EffectiveTime().IsZero())
		assert.Empty(t, c.PatientName())
		assert.Empty(t, c.TypeName())
	})
}

func TestConsulta_UnmarshalJSON(t *testing.T) {
	payload := `[
		{
			"id": 7,
			"status": "CONCLUIDA",
			"valorCobrado": 150.5,
			"dataConclusao": "2024-03-02T10:15:00",
			"paciente": {"id": 3, "nome": "Maria Souza"},
			"tipoConsulta": {"id": 1, "nome": "Limpeza", "preco": 120},
			"agendaDisponivel": {"data": "2024-03-02", "horaInicio": "10:00:00", "horaFim": "10:30:00"}
		},
		{
			"id": 8,
			"status": "AGENDADA",
			"valorCobrado": null,
			"dataConclusao": null,
			"paciente": null,
			"tipoConsulta": null,
			"agendaDisponivel": null
		}
	]`

	var consultas []Consulta
	require.NoError(t, json.Unmarshal([]byte(payload), &consultas))
	require.Len(t, consultas, 2)

	first := consultas[0]
	assert.Equal(t, int64(7), first.ID)
	assert.Equal(t, StatusConcluida, first.Status)
	assert.Equal(t, "150.5", first.Amount().String())
	assert.Equal(t, "Maria Souza", first.PatientName())
	assert.Equal(t, "Limpeza", first.TypeName())
	assert.Equal(t, "02/03/2024", first.AgendaDisponivel.Data.Label())
	assert.Equal(t, "10:30", first.AgendaDisponivel.End())

	second := consultas[1]
	assert.False(t, second.ValorCobrado.Valid)
	assert.Nil(t, second.DataConclusao)
	assert.Equal(t, "0", second.Amount().String())
}

func TestStatus_Label(t *testing.T) {
	assert.Equal(t, "Agendada", StatusAgendada.Label())
	assert.Equal(t, "Concluída", StatusConcluida.Label())
	assert.Equal(t, "Cancelada", StatusCancelada.Label())
	assert.Equal(t, "Desconhecido", Status("OUTRO").Label())
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2024-01-05T10:30:00Z", want: time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC)},
		{in: "2024-01-05T10:30:00", want: time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC)},
		{in: "2024-01-05T10:30:00.123", want: time.Date(2024, 1, 5, 10, 30, 0, 123000000, time.UTC)},
		{in: "2024-01-05", want: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{in: "05/01/2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 2, 29)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-02-29"`, string(data))

	var missing Date
	data, err = json.Marshal(missing)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}
