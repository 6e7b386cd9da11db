package config

type WorkerKeyStruct struct {
	CalendarEventsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	CalendarEventsQueue: "calendar_events_queue",
}
