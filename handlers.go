package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type airportResolver interface {
	Resolve(ctx context.Context, city string) ([]Airport, error)
}

type fareTracker interface {
	Track(ctx context.Context, origin, dest, date string) string
}

// App wires the conversation state machine to its collaborators. Transport
// glue lives in telegram.go; everything here works on sessions and replies.
type App struct {
	store    *SessionStore
	airports airportResolver
	fares    fareTracker
	log      *zap.Logger
}

func newApp(store *SessionStore, airports airportResolver, fares fareTracker, log *zap.Logger) *App {
	return &App{store: store, airports: airports, fares: fares, log: log}
}

// reply is one outbound message decided by the state machine. When edit is
// set the existing calendar message is updated in place instead of sending.
type reply struct {
	text   string
	markup models.ReplyMarkup
	edit   *models.InlineKeyboardMarkup
}

func textReply(text string) reply {
	return reply{text: text}
}

// ProcessText runs one free-text event through the state machine. Events
// without a chat id are handled against a throwaway session and never
// persisted.
func (a *App) ProcessText(ctx context.Context, chatID int64, text string) []reply {
	if chatID == 0 {
		a.log.Warn("text event without chat id, skipping session tracking")
		session := defaultSession()
		return a.applyText(ctx, &session, text)
	}

	a.store.Lock(chatID)
	defer a.store.Unlock(chatID)

	session := a.store.Get(chatID)
	replies := a.applyText(ctx, &session, text)
	if err := a.store.Put(chatID, session); err != nil {
		a.log.Error("could not persist session", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	return replies
}

// ProcessAction runs one structured selection event through the state
// machine, with the same per-chat serialization as ProcessText.
func (a *App) ProcessAction(ctx context.Context, chatID int64, act action) []reply {
	if chatID == 0 {
		a.log.Warn("selection event without chat id, skipping session tracking")
		session := defaultSession()
		return a.applyAction(ctx, &session, act)
	}

	a.store.Lock(chatID)
	defer a.store.Unlock(chatID)

	session := a.store.Get(chatID)
	replies := a.applyAction(ctx, &session, act)
	if err := a.store.Put(chatID, session); err != nil {
		a.log.Error("could not persist session", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	return replies
}

func (a *App) applyText(ctx context.Context, session *Session, text string) []reply {
	switch session.Step {
	case stepFromCity:
		return a.cityStep(ctx, session, text, true)

	case stepFromAirportPick:
		airport, ok := findAirport(session.AirportsFrom, strings.TrimSpace(text))
		if !ok {
			return []reply{textReply(msgPickFromList)}
		}
		return a.chooseFromAirport(session, airport)

	case stepToCity:
		return a.cityStep(ctx, session, text, false)

	case stepToAirportPick:
		airport, ok := findAirport(session.AirportsTo, strings.TrimSpace(text))
		if !ok {
			return []reply{textReply(msgPickFromList)}
		}
		return a.chooseToAirport(session, airport)

	case stepSelectDate:
		return []reply{textReply(msgUseCalendar)}

	default:
		return []reply{textReply(msgFollowInstructions)}
	}
}

// cityStep resolves a typed city name into airport candidates and offers
// them as a keyboard. Resolver failure and an empty result both keep the
// step unchanged.
func (a *App) cityStep(ctx context.Context, session *Session, text string, from bool) []reply {
	city := strings.TrimSpace(text)
	if city == "" {
		if from {
			return []reply{textReply(msgEmptyFromCity)}
		}
		return []reply{textReply(msgEmptyToCity)}
	}

	airports, err := a.airports.Resolve(ctx, city)
	if err != nil {
		a.log.Error("airport resolver failed", zap.String("city", city), zap.Error(err))
		return []reply{textReply(msgResolverFailed)}
	}
	if len(airports) == 0 {
		a.log.Warn("no airports found", zap.String("city", city))
		return []reply{textReply(msgNoAirports)}
	}

	if from {
		session.FromCity = city
		session.AirportsFrom = airports
		session.Step = stepFromAirportPick
		return []reply{{text: msgPickFromAirport, markup: airportKeyboard(airports)}}
	}
	session.ToCity = city
	session.AirportsTo = airports
	session.Step = stepToAirportPick
	return []reply{{text: msgPickToAirport, markup: airportKeyboard(airports)}}
}

func (a *App) chooseFromAirport(session *Session, airport Airport) []reply {
	session.FromAirport = airport.Code
	session.Step = stepToCity
	return []reply{{text: msgEnterToCity, markup: removeKeyboard()}}
}

func (a *App) chooseToAirport(session *Session, airport Airport) []reply {
	session.ToAirport = airport.Code
	session.Step = stepSelectDate
	return []reply{
		{text: msgPickDates, markup: removeKeyboard()},
		{text: msgShowCalendar, markup: calendarMarkup(session.SelectedDates, session.CalendarYear, session.CalendarMonth)},
	}
}

func (a *App) applyAction(ctx context.Context, session *Session, act action) []reply {
	switch act.kind {
	case actionStartSearch:
		session.Step = stepFromCity
		return []reply{textReply(msgEnterFromCity)}

	case actionAirportFrom:
		if session.Step != stepFromAirportPick {
			return []reply{textReply(msgFollowInstructions)}
		}
		// only codes from this session's own candidate list are trusted
		airport, ok := findAirportByCode(session.AirportsFrom, act.airportCode)
		if !ok {
			return []reply{textReply(msgPickFromList)}
		}
		return a.chooseFromAirport(session, airport)

	case actionAirportTo:
		if session.Step != stepToAirportPick {
			return []reply{textReply(msgFollowInstructions)}
		}
		airport, ok := findAirportByCode(session.AirportsTo, act.airportCode)
		if !ok {
			return []reply{textReply(msgPickFromList)}
		}
		return a.chooseToAirport(session, airport)

	case actionSelectDate:
		if session.Step != stepSelectDate {
			return []reply{textReply(msgFollowInstructions)}
		}
		if contains(session.SelectedDates, act.date) {
			a.log.Debug("date toggled off", zap.String("date", act.date))
			session.SelectedDates = remove(session.SelectedDates, act.date)
		} else {
			a.log.Debug("date toggled on", zap.String("date", act.date))
			session.SelectedDates = append(session.SelectedDates, act.date)
		}
		return []reply{{edit: calendarMarkup(session.SelectedDates, session.CalendarYear, session.CalendarMonth)}}

	case actionPrevMonth:
		if session.Step != stepSelectDate {
			return []reply{textReply(msgFollowInstructions)}
		}
		session.CalendarYear, session.CalendarMonth = prevYearMonth(act.year, act.month)
		return []reply{{edit: calendarMarkup(session.SelectedDates, session.CalendarYear, session.CalendarMonth)}}

	case actionNextMonth:
		if session.Step != stepSelectDate {
			return []reply{textReply(msgFollowInstructions)}
		}
		session.CalendarYear, session.CalendarMonth = nextYearMonth(act.year, act.month)
		return []reply{{edit: calendarMarkup(session.SelectedDates, session.CalendarYear, session.CalendarMonth)}}

	case actionDone:
		if session.Step != stepSelectDate {
			return []reply{textReply(msgFollowInstructions)}
		}
		return a.done(ctx, session)

	default:
		return nil
	}
}

// done runs the fare lookups, one per selected date in selection order,
// then resets the date picker for the next search. Each lookup surfaces
// whatever text the tracker returns, including degraded-service messages.
func (a *App) done(ctx context.Context, session *Session) []reply {
	if len(session.SelectedDates) == 0 {
		return []reply{textReply(msgNoDatesChosen)}
	}
	if session.FromAirport == "" || session.ToAirport == "" {
		a.log.Error("done pressed without airports in session")
		return []reply{textReply(msgMissingAirports)}
	}

	var replies []reply
	for _, date := range session.SelectedDates {
		result := a.fares.Track(ctx, session.FromAirport, session.ToAirport, date)
		replies = append(replies, textReply(fmt.Sprintf(msgResultsFor, date, result)))
	}

	now := time.Now()
	session.Step = stepCompleted
	session.SelectedDates = nil
	session.CalendarYear = now.Year()
	session.CalendarMonth = int(now.Month()) - 1

	return replies
}

func airportKeyboard(airports []Airport) models.ReplyMarkup {
	rows := make([][]models.KeyboardButton, 0, len(airports))
	for _, airport := range airports {
		rows = append(rows, []models.KeyboardButton{{Text: airport.Name}})
	}
	return &models.ReplyKeyboardMarkup{
		Keyboard:        rows,
		OneTimeKeyboard: true,
		ResizeKeyboard:  true,
	}
}

func removeKeyboard() models.ReplyMarkup {
	return &models.ReplyKeyboardRemove{RemoveKeyboard: true}
}
