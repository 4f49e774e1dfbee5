package booking

import "time"

// Business hours: hourly arrival slots, first 08:00, last 16:00.
var daySlots = []string{
	"08:00", "09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00",
}

const dateLayout = "2006-01-02"

// AvailableSlots returns the bookable time slots for a calendar date. Dates in
// the past have none; for today, slots whose hour has already passed are
// dropped.
func (s *DefaultBookingFlowService) AvailableSlots(date string) ([]string, error) {
	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return nil, NewValidationError("date", "must be formatted YYYY-MM-DD")
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return []string{}, nil
	}
	if !day.Equal(today) {
		slots := make([]string, len(daySlots))
		copy(slots, daySlots)
		return slots, nil
	}

	var slots []string
	for _, slot := range daySlots {
		t, err := time.ParseInLocation(dateLayout+" 15:04", date+" "+slot, time.Local)
		if err != nil {
			continue
		}
		if t.After(now) {
			slots = append(slots, slot)
		}
	}
	if slots == nil {
		slots = []string{}
	}
	return slots, nil
}

func validSlot(slots []string, timeOfDay string) bool {
	for _, s := range slots {
		if s == timeOfDay {
			return true
		}
	}
	return false
}
