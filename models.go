package main

// Position of a chat inside the search conversation. The zero value is a
// fresh session that has not started a search yet.
type step string

const (
	stepNone            step = ""
	stepFromCity        step = "from_city"
	stepFromAirportPick step = "from_airport_selection"
	stepToCity          step = "to_city"
	stepToAirportPick   step = "to_airport_selection"
	stepSelectDate      step = "select_date"
	stepCompleted       step = "completed"
)

type Airport struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Flight is one priced offer from the fare API.
type Flight struct {
	Price        int    `json:"price"`
	Airline      string `json:"airline"`
	FlightNumber string `json:"flight_number"`
	DepartureAt  string `json:"departure_at"`
	ReturnAt     string `json:"return_at,omitempty"`
}

// Session is the per-chat conversation state, stored as json in badger.
type Session struct {
	Step step `json:"step,omitempty"`

	FromCity string `json:"fromCity,omitempty"`
	ToCity   string `json:"toCity,omitempty"`

	// resolver candidates offered to the user. FromAirport/ToAirport may
	// only be set to a code from the matching list
	AirportsFrom []Airport `json:"airportsFrom,omitempty"`
	AirportsTo   []Airport `json:"airportsTo,omitempty"`

	FromAirport string `json:"fromAirport,omitempty"`
	ToAirport   string `json:"toAirport,omitempty"`

	// toggled dates in YYYY-MM-DD, insertion order, no duplicates
	SelectedDates []string `json:"selectedDates,omitempty"`

	CalendarYear  int `json:"calendarYear"`
	CalendarMonth int `json:"calendarMonth"` // 0 = January .. 11 = December
}

func findAirport(airports []Airport, name string) (Airport, bool) {
	for _, a := range airports {
		if a.Name == name {
			return a, true
		}
	}
	return Airport{}, false
}

func findAirportByCode(airports []Airport, code string) (Airport, bool) {
	for _, a := range airports {
		if a.Code == code {
			return a, true
		}
	}
	return Airport{}, false
}
