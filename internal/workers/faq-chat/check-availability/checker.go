// Package checkavailability answers whether the site is open on a given date
// according to the knowledge base schedule.
package checkavailability

import (
	"fmt"

	"archibald/internal/models"
)

const unspecifiedMessage = "Date non spécifiée. Veuillez indiquer une date pour vérifier les horaires."

// Check resolves the status for date. A zero date is reported as
// unspecified. Exceptional openings win over regular windows; among regular
// windows the first match in schedule order wins.
func Check(date models.Date, schedule []models.ScheduleEntry) Result {
	if date.IsZero() {
		return Result{Status: StatusUnspecified}
	}

	for _, entry := range schedule {
		if entry.Kind != models.ScheduleExceptional {
			continue
		}
		for _, ex := range entry.Exceptional {
			if ex.Date == date {
				return Result{Status: StatusExceptional, Date: date, Hours: ex.Hours, LastEntry: ex.LastEntry}
			}
		}
	}

	for _, entry := range schedule {
		if entry.Kind != models.ScheduleRegular || entry.Regular == nil {
			continue
		}
		if entry.Regular.OpenOn(date) {
			return Result{Status: StatusOpen, Date: date, Hours: entry.Regular.Hours, LastEntry: entry.Regular.LastEntry}
		}
	}

	return Result{Status: StatusClosed, Date: date}
}

// Message renders the result as a French sentence.
func (r Result) Message() string {
	switch r.Status {
	case StatusUnspecified:
		return unspecifiedMessage
	case StatusExceptional:
		return fmt.Sprintf("Ouverture exceptionnelle le %s : %s%s.", r.label(), r.Hours, r.lastEntry())
	case StatusOpen:
		return fmt.Sprintf("Ouvert le %s : %s%s.", r.label(), r.Hours, r.lastEntry())
	default:
		return fmt.Sprintf("Fermé le %s.", r.label())
	}
}

func (r Result) label() string {
	return models.FrenchWeekday(r.Date.Weekday()) + " " + r.Date.French()
}

func (r Result) lastEntry() string {
	if r.LastEntry == "" {
		return ""
	}
	return " (dernière montée à " + r.LastEntry + ")"
}
