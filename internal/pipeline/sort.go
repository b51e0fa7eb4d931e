package pipeline

import (
	"sort"

	"github.com/Veraticus/odonto-flow/internal/model"
)

// SortByRecency returns a copy ordered most recent first. Ties keep their
// input order and consultations without any date sort last.
func SortByRecency(consultas []model.Consulta) []model.Consulta {
	out := make([]model.Consulta, len(consultas))
	copy(out, consultas)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EffectiveTime().After(out[j].EffectiveTime())
	})
	return out
}

// SortSlots returns a copy of slots ordered by date and start time.
func SortSlots(slots []model.Slot) []model.Slot {
	out := make([]model.Slot, len(slots))
	copy(out, slots)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Data.Equal(out[j].Data.Time) {
			return out[i].Data.Before(out[j].Data.Time)
		}
		return out[i].Start() < out[j].Start()
	})
	return out
}
