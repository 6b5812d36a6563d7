package main

import (
	"fmt"
	"time"

	"github.com/go-telegram/bot/models"
)

var monthNames = [12]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

var weekdayNames = [7]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

// calendarMarkup builds the multi-select date picker for one month: a
// navigation row, a weekday header, the week rows and a done row. Selected
// dates are marked with a checkmark. month is 0-based. Deterministic, no
// side effects.
func calendarMarkup(selectedDates []string, year, month int) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton

	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "<<", CallbackData: fmt.Sprintf("PREV_MONTH_%d_%d", year, month)},
		{Text: fmt.Sprintf("%s %d", monthNames[month], year), CallbackData: "IGNORE"},
		{Text: ">>", CallbackData: fmt.Sprintf("NEXT_MONTH_%d_%d", year, month)},
	})

	header := make([]models.InlineKeyboardButton, 0, 7)
	for _, day := range weekdayNames {
		header = append(header, models.InlineKeyboardButton{Text: day, CallbackData: "IGNORE"})
	}
	rows = append(rows, header)

	firstDay := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	// rotate Sunday=0 to Monday=0
	startingDay := (int(firstDay.Weekday()) + 6) % 7
	daysInMonth := time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()

	blank := models.InlineKeyboardButton{Text: " ", CallbackData: "IGNORE"}

	date := 1
	for weekIndex := 0; weekIndex < 6; weekIndex++ {
		week := make([]models.InlineKeyboardButton, 0, 7)
		for dayIndex := 0; dayIndex < 7; dayIndex++ {
			if (weekIndex == 0 && dayIndex < startingDay) || date > daysInMonth {
				week = append(week, blank)
				continue
			}

			dateString := fmt.Sprintf("%d-%02d-%02d", year, month+1, date)
			text := fmt.Sprintf("%d", date)
			if contains(selectedDates, dateString) {
				text = fmt.Sprintf("✅ %d", date)
			}
			week = append(week, models.InlineKeyboardButton{
				Text:         text,
				CallbackData: "SELECT_DATE_" + dateString,
			})
			date++
		}

		rows = append(rows, week)
		if date > daysInMonth {
			break
		}
	}

	rows = append(rows, []models.InlineKeyboardButton{
		{Text: msgDoneButton, CallbackData: "DONE"},
	})

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// prevYearMonth steps the calendar view one month back. month is 0-based.
func prevYearMonth(year, month int) (int, int) {
	if month == 0 {
		return year - 1, 11
	}
	return year, month - 1
}

// nextYearMonth steps the calendar view one month forward. month is 0-based.
func nextYearMonth(year, month int) (int, int) {
	if month == 11 {
		return year + 1, 0
	}
	return year, month + 1
}
