package model

// Slots offered by the booking form. The API accepts any non-empty value.
var (
	BookableTimeSlots = []string{
		"11:00", "12:00", "13:00", "14:00",
		"18:00", "19:00", "20:00", "21:00",
	}

	GuestOptions = []string{"1", "2", "3", "4", "5", "6", GuestsOverflow}
)

const GuestsOverflow = "7+"

func IsBookableTimeSlot(slot string) bool {
	for _, s := range BookableTimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}
