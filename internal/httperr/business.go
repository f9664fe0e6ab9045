package httperr

import "errors"

// BusinessError is a domain rule violation the client can recover from.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the code of a BusinessError, or "" for other errors.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// businessMessages are the user-facing texts for known business codes.
var businessMessages = map[string]string{
	"no_capacity":          "No capacity available for the selected time window",
	"invalid_state":        "The booking cannot change to the requested status",
	"parlour_not_found":    "Parlour not found",
	"parlour_inactive":     "Parlour is not accepting bookings",
	"booking_not_found":    "Booking not found",
	"service_not_found":    "One or more selected services were not found",
	"invalid_date_or_time": "Date must be YYYY-MM-DD and time must be HH:mm",
	"invalid_service_type": "Service type must be in-salon or at-home",
	"invalid_duration":     "Selected services have no usable duration",
}

// BusinessMessage maps a business code to its user-facing message.
func BusinessMessage(code string) string {
	if msg, ok := businessMessages[code]; ok {
		return msg
	}
	return "Request could not be processed"
}
