package models

// Frequency is the recurring cadence of a booking.
type Frequency string

const (
	FrequencyOneTime  Frequency = "one-time"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiWeekly Frequency = "bi-weekly"
	FrequencyMonthly  Frequency = "monthly"
)

// ValidFrequency reports whether f is one of the four supported cadences.
func ValidFrequency(f Frequency) bool {
	switch f {
	case FrequencyOneTime, FrequencyWeekly, FrequencyBiWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// BookingDraft holds the in-progress wizard state for one session.
// It has no server identity until submission; it lives in the draft cache only.
type BookingDraft struct {
	SessionID           string    `json:"sessionId"`
	ServiceID           string    `json:"serviceId,omitempty"`
	ServiceSlug         string    `json:"serviceSlug,omitempty"`
	ServiceName         string    `json:"serviceName,omitempty"`
	Bedrooms            int       `json:"bedrooms"`
	Bathrooms           int       `json:"bathrooms"`
	DetailsSet          bool      `json:"detailsSet,omitempty"`
	ExtraIDs            []string  `json:"extraIds,omitempty"`
	Date                string    `json:"date,omitempty"` // "YYYY-MM-DD"
	Time                string    `json:"time,omitempty"` // "HH:MM"
	Frequency           Frequency `json:"frequency,omitempty"`
	Location            string    `json:"location,omitempty"`
	CleanerID           string    `json:"cleanerId,omitempty"`
	SpecialInstructions string    `json:"specialInstructions,omitempty"`
	Email               string    `json:"email,omitempty"`
	Pricing             *Quote    `json:"pricing,omitempty"`
}

// HasService reports whether a service has been chosen.
func (d *BookingDraft) HasService() bool {
	return d != nil && d.ServiceID != ""
}

// HasDetails reports whether the room/extras step has been completed.
// Zero rooms and no extras is a valid submission, so completion is
// tracked explicitly rather than inferred from field values.
func (d *BookingDraft) HasDetails() bool {
	return d.HasService() && d.DetailsSet
}

// HasSchedule reports whether date, time and location have been set.
func (d *BookingDraft) HasSchedule() bool {
	return d.HasDetails() && d.Date != "" && d.Time != "" && d.Location != ""
}

// IsEmpty reports whether the draft carries no user input at all.
func (d *BookingDraft) IsEmpty() bool {
	return d == nil || d.ServiceID == ""
}
