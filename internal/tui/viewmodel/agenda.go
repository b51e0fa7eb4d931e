package viewmodel

import (
	"strconv"
	"time"

	"github.com/Veraticus/odonto-flow/internal/model"
	"github.com/Veraticus/odonto-flow/internal/pipeline"
)

// SlotDay groups the open slots of one day.
type SlotDay struct {
	Date  model.Date
	Slots []model.Slot
}

// AgendaView is the derived state of the agenda page.
type AgendaView struct {
	Now   time.Time
	Slots []model.Slot
	Days  []SlotDay
	Stats pipeline.SlotStats
	Page  pipeline.PageState
}

// NewAgendaView derives the page from the released slots at now.
func NewAgendaView(slots []model.Slot, now time.Time, pageSize int) AgendaView {
	v := AgendaView{Now: now, Page: pipeline.NewPageState(pageSize, 0)}
	return v.WithSnapshot(slots)
}

// WithSnapshot swaps in freshly loaded slots.
func (v AgendaView) WithSnapshot(slots []model.Slot) AgendaView {
	v.Slots = pipeline.SortSlots(slots)
	v.Stats = pipeline.SummarizeSlots(v.Slots, v.Now)

	v.Days = nil
	for _, s := range v.Slots {
		if n := len(v.Days); n > 0 && v.Days[n-1].Date.Equal(s.Data.Time) {
			v.Days[n-1].Slots = append(v.Days[n-1].Slots, s)
			continue
		}
		v.Days = append(v.Days, SlotDay{Date: s.Data, Slots: []model.Slot{s}})
	}

	v.Page = v.Page.WithTotal(len(v.Days))
	return v
}

// NextPage advances one page of days.
func (v AgendaView) NextPage() AgendaView {
	v.Page = v.Page.Next()
	return v
}

// PreviousPage moves back one page of days.
func (v AgendaView) PreviousPage() AgendaView {
	v.Page = v.Page.Previous()
	return v
}

// VisibleDays returns the days on the current page.
func (v AgendaView) VisibleDays() []SlotDay {
	return pipeline.Slice(v.Days, v.Page)
}

// Cards returns the summary tiles.
func (v AgendaView) Cards() []Card {
	return []Card{
		{Title: "Horários Disponíveis", Value: strconv.Itoa(v.Stats.Total)},
		{Title: "Hoje", Value: strconv.Itoa(v.Stats.Today)},
		{Title: "Próximos 7 dias", Value: strconv.Itoa(v.Stats.NextSevenDays)},
		{Title: "Dias com Agenda", Value: strconv.Itoa(v.Stats.Days)},
	}
}
