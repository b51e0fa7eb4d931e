package pipeline

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/odonto-flow/internal/model"
)

// NoTypeLabel groups consultations without a type.
const NoTypeLabel = "Sem tipo"

// DayTotal is the billed amount for one effective day.
type DayTotal struct {
	Amount decimal.Decimal
	Date   string
	Label  string
}

// TypeTotal is the billed amount and count for one consultation type.
type TypeTotal struct {
	Amount decimal.Decimal
	Type   string
	Count  int
}

// Summary holds the billing statistics for a filtered list.
type Summary struct {
	Total  decimal.Decimal
	Mean   decimal.Decimal
	Max    decimal.Decimal
	Min    decimal.Decimal
	ByDay  []DayTotal
	ByType []TypeTotal
	Count  int
}

// Aggregate reduces consultations to totals and grouped sums.
func Aggregate(consultas []model.Consulta) Summary {
	s := Summary{
		Total: decimal.Zero,
		Mean:  decimal.Zero,
		Max:   decimal.Zero,
		Min:   decimal.Zero,
		Count: len(consultas),
	}

	byDay := make(map[string]*DayTotal)
	byType := make(map[string]*TypeTotal)
	havePositive := false

	for _, c := range consultas {
		amount := c.Amount()
		s.Total = s.Total.Add(amount)

		if amount.IsPositive() {
			if !havePositive || amount.GreaterThan(s.Max) {
				s.Max = amount
			}
			if !havePositive || amount.LessThan(s.Min) {
				s.Min = amount
			}
			havePositive = true
		}

		if d, ok := c.EffectiveDate(); ok {
			key := d.ISO()
			acc, found := byDay[key]
			if !found {
				acc = &DayTotal{Date: key, Label: d.Label(), Amount: decimal.Zero}
				byDay[key] = acc
			}
			acc.Amount = acc.Amount.Add(amount)
		}

		label := c.TypeName()
		if label == "" {
			label = NoTypeLabel
		}
		acc, found := byType[label]
		if !found {
			acc = &TypeTotal{Type: label, Amount: decimal.Zero}
			byType[label] = acc
		}
		acc.Count++
		acc.Amount = acc.Amount.Add(amount)
	}

	if s.Count > 0 {
		s.Mean = s.Total.Div(decimal.NewFromInt(int64(s.Count)))
	}

	s.ByDay = make([]DayTotal, 0, len(byDay))
	for _, d := range byDay {
		s.ByDay = append(s.ByDay, *d)
	}
	sort.Slice(s.ByDay, func(i, j int) bool {
		return s.ByDay[i].Date < s.ByDay[j].Date
	})

	s.ByType = make([]TypeTotal, 0, len(byType))
	for _, t := range byType {
		s.ByType = append(s.ByType, *t)
	}
	sort.Slice(s.ByType, func(i, j int) bool {
		if cmp := s.ByType[i].Amount.Cmp(s.ByType[j].Amount); cmp != 0 {
			return cmp > 0
		}
		return s.ByType[i].Type < s.ByType[j].Type
	})

	return s
}

// HistoryStats are the cards shown above the history table.
type HistoryStats struct {
	Revenue   decimal.Decimal
	Total     int
	Completed int
	Cancelled int
}

// SummarizeHistory counts finished consultations. Revenue only includes
// completed ones.
func SummarizeHistory(consultas []model.Consulta) HistoryStats {
	stats := HistoryStats{Total: len(consultas), Revenue: decimal.Zero}
	for _, c := range consultas {
		switch c.Status {
		case model.StatusConcluida:
			stats.Completed++
			stats.Revenue = stats.Revenue.Add(c.Amount())
		case model.StatusCancelada:
			stats.Cancelled++
		}
	}
	return stats
}

// SlotStats are the cards shown above the open-slot listing.
type SlotStats struct {
	Total         int
	Today         int
	NextSevenDays int
	Days          int
}

// SummarizeSlots counts open slots relative to now.
func SummarizeSlots(slots []model.Slot, now time.Time) SlotStats {
	today := model.DateOf(now)
	days := make(map[string]struct{})
	stats := SlotStats{Total: len(slots)}

	for _, slot := range slots {
		if slot.Data.IsZero() {
			continue
		}
		days[slot.Data.ISO()] = struct{}{}

		if slot.Data.Equal(today.Time) {
			stats.Today++
		}
		diff := math.Ceil(slot.Data.Sub(now).Hours() / 24)
		if diff >= 0 && diff <= 7 {
			stats.NextSevenDays++
		}
	}
	stats.Days = len(days)
	return stats
}
