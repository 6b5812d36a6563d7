package main

import (
	"regexp"
	"strconv"
	"time"
)

type actionKind int

const (
	actionNone actionKind = iota
	actionIgnore
	actionStartSearch
	actionAirportFrom
	actionAirportTo
	actionSelectDate
	actionPrevMonth
	actionNextMonth
	actionDone
)

// action is a structured selection event with its payload already parsed
// and validated. Invalid callback data never reaches the state machine.
type action struct {
	kind        actionKind
	airportCode string
	date        string // YYYY-MM-DD
	year        int
	month       int // 0 = January .. 11 = December
}

var (
	reAirportFrom = regexp.MustCompile(`^SELECT_FROM_([A-Z]{3})$`)
	reAirportTo   = regexp.MustCompile(`^SELECT_TO_([A-Z]{3})$`)
	reSelectDate  = regexp.MustCompile(`^SELECT_DATE_(\d{4}-\d{2}-\d{2})$`)
	rePrevMonth   = regexp.MustCompile(`^PREV_MONTH_(\d{4})_(\d{1,2})$`)
	reNextMonth   = regexp.MustCompile(`^NEXT_MONTH_(\d{4})_(\d{1,2})$`)
)

func parseAction(data string) (action, bool) {
	switch data {
	case "START_SEARCH":
		return action{kind: actionStartSearch}, true
	case "DONE":
		return action{kind: actionDone}, true
	case "IGNORE":
		return action{kind: actionIgnore}, true
	}

	if m := reAirportFrom.FindStringSubmatch(data); m != nil {
		return action{kind: actionAirportFrom, airportCode: m[1]}, true
	}
	if m := reAirportTo.FindStringSubmatch(data); m != nil {
		return action{kind: actionAirportTo, airportCode: m[1]}, true
	}
	if m := reSelectDate.FindStringSubmatch(data); m != nil {
		if _, err := time.Parse("2006-01-02", m[1]); err != nil {
			return action{}, false
		}
		return action{kind: actionSelectDate, date: m[1]}, true
	}
	if m := rePrevMonth.FindStringSubmatch(data); m != nil {
		return parseMonthAction(actionPrevMonth, m[1], m[2])
	}
	if m := reNextMonth.FindStringSubmatch(data); m != nil {
		return parseMonthAction(actionNextMonth, m[1], m[2])
	}

	return action{}, false
}

func parseMonthAction(kind actionKind, yearStr, monthStr string) (action, bool) {
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return action{}, false
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 0 || month > 11 {
		return action{}, false
	}
	return action{kind: kind, year: year, month: month}, true
}
