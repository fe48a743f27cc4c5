package event

const registrationEvents = "user_registration_events"

type RegistrationEvent struct {
	Uid int64 `json:"uid"`
}
