package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidForm wraps every schedule form validation failure.
var ErrInvalidForm = errors.New("invalid schedule")

// Form converts a stored schedule back into its editable form.
func (e Escala) Form() EscalaForm {
	return EscalaForm{
		DiaSemana:        e.DiaSemana,
		HoraInicio:       clockLabel(e.HoraInicio),
		HoraFim:          clockLabel(e.HoraFim),
		IntervaloMinutos: e.IntervaloMinutos,
	}
}

// SlotTimes expands the form into HH:MM start times. A slot is only emitted
// when it ends at or before HoraFim.
func (f EscalaForm) SlotTimes() ([]string, error) {
	start, err := time.Parse("15:04", clockLabel(f.HoraInicio))
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", f.HoraInicio, err)
	}
	end, err := time.Parse("15:04", clockLabel(f.HoraFim))
	if err != nil {
		return nil, fmt.Errorf("invalid end time %q: %w", f.HoraFim, err)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("end time %s must be after start time %s", f.HoraFim, f.HoraInicio)
	}
	if f.IntervaloMinutos <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %d", f.IntervaloMinutos)
	}

	step := time.Duration(f.IntervaloMinutos) * time.Minute
	var times []string
	for t := start; !t.Add(step).After(end); t = t.Add(step) {
		times = append(times, t.Format("15:04"))
	}
	return times, nil
}

// PreviewSlots lays the schedules over every day in r, producing the slots
// the server would release for that period.
func PreviewSlots(forms []EscalaForm, r AgendaRange) ([]Slot, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	byDay := make(map[time.Weekday][]EscalaForm, len(forms))
	for _, f := range forms {
		wd, ok := f.DiaSemana.Weekday()
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", f.DiaSemana)
		}
		byDay[wd] = append(byDay[wd], f)
	}

	var slots []Slot
	for day := r.DataInicio.Time; !day.After(r.DataFim.Time); day = day.AddDate(0, 0, 1) {
		for _, f := range byDay[day.Weekday()] {
			times, err := f.SlotTimes()
			if err != nil {
				return nil, err
			}
			step := time.Duration(f.IntervaloMinutos) * time.Minute
			for _, t := range times {
				startClock, _ := time.Parse("15:04", t)
				slots = append(slots, Slot{
					Data:       DateOf(day),
					HoraInicio: t,
					HoraFim:    startClock.Add(step).Format("15:04"),
					Disponivel: true,
				})
			}
		}
	}
	return slots, nil
}

var formValidator = validator.New()

// Validate checks the form's field rules and that the shift fits at least
// one slot. Field failures are reported one per line.
func (f EscalaForm) Validate() error {
	if err := formValidator.Struct(f); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return fmt.Errorf("%w: %s", ErrInvalidForm, strings.Join(msgs, "; "))
	}

	times, err := f.SlotTimes()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}
	if len(times) == 0 {
		return fmt.Errorf("%w: interval of %d minutes does not fit between %s and %s",
			ErrInvalidForm, f.IntervaloMinutos, f.HoraInicio, f.HoraFim)
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return field + " must be one of " + fe.Param()
	case "datetime":
		return field + " must be a time in HH:MM format"
	case "gte":
		return field + " must be greater than or equal to " + fe.Param()
	case "lte":
		return field + " must be less than or equal to " + fe.Param()
	default:
		return field + " is invalid"
	}
}
