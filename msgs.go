package main

// User-facing reply text. Kept in one place so the wording stays consistent
// across handlers and tests.
const (
	msgWelcome = "Привет! Я бот для отслеживания цен на авиабилеты. Нажмите кнопку ниже, чтобы начать поиск."

	msgStartButton = "Начать поиск"
	msgDoneButton  = "Готово"

	msgEnterFromCity = "Введите город отправления:"
	msgEnterToCity   = "Введите город прибытия:"

	msgEmptyFromCity = "Пожалуйста, введите город отправления."
	msgEmptyToCity   = "Пожалуйста, введите город прибытия."

	msgNoAirports     = "Аэропорты не найдены. Попробуйте ввести другой город."
	msgResolverFailed = "Произошла ошибка при поиске аэропортов. Пожалуйста, попробуйте снова позже."

	msgPickFromAirport = "Выберите аэропорт отправления:"
	msgPickToAirport   = "Выберите аэропорт прибытия:"
	msgPickFromList    = "Пожалуйста, выберите аэропорт из предложенных вариантов."

	msgPickDates    = "Теперь выберите дату вылета:"
	msgShowCalendar = "Пожалуйста, выберите даты:"
	msgUseCalendar  = "Пожалуйста, выберите даты, используя предоставленный календарь."

	msgNoDatesChosen   = "Вы не выбрали ни одной даты. Пожалуйста, выберите хотя бы одну дату."
	msgMissingAirports = "Информация об аэропортах отправления и прибытия отсутствует. Пожалуйста, начните поиск заново."

	msgCalendarEditFailed = "Не удалось обновить календарь. Пожалуйста, попробуйте снова."
	msgFollowInstructions = "Пожалуйста, следуйте инструкциям бота."

	msgNoFares    = "Не удалось найти билеты на указанное направление."
	msgFareFailed = "Не удалось получить данные о билетах. Попробуйте позже."

	// msgResultsFor is formatted with (date, tracker summary)
	msgResultsFor = "Результаты поиска на %s:\n%s"
)
