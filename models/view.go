package models

// BookingView is what the confirmation page renders. A durable view mirrors a
// persisted booking; a provisional view is reconstructed from the still-present
// draft when the durable record is not yet readable, carries no persisted id,
// and is flagged so the UI can mark it unmistakably.
type BookingView struct {
	Provisional         bool          `json:"provisional"`
	BookingID           string        `json:"bookingId,omitempty"`
	Reference           string        `json:"reference,omitempty"`
	PaymentReference    string        `json:"paymentReference"`
	ServiceID           string        `json:"serviceId"`
	ServiceName         string        `json:"serviceName"`
	CleanerID           string        `json:"cleanerId,omitempty"`
	Date                string        `json:"date"`
	Time                string        `json:"time"`
	Frequency           Frequency     `json:"frequency"`
	Location            string        `json:"location"`
	Bedrooms            int           `json:"bedrooms"`
	Bathrooms           int           `json:"bathrooms"`
	ExtraIDs            []string      `json:"extraIds,omitempty"`
	SpecialInstructions string        `json:"specialInstructions,omitempty"`
	Pricing             Quote         `json:"pricing"`
	Status              BookingStatus `json:"status,omitempty"`
}

// ViewFromBooking builds a durable confirmation view.
func ViewFromBooking(b *Booking) *BookingView {
	return &BookingView{
		Provisional:         false,
		BookingID:           b.ID,
		Reference:           b.Reference,
		PaymentReference:    b.PaymentReference,
		ServiceID:           b.ServiceID,
		ServiceName:         b.ServiceName,
		CleanerID:           b.CleanerID,
		Date:                b.Date,
		Time:                b.Time,
		Frequency:           b.Frequency,
		Location:            b.Location,
		Bedrooms:            b.Bedrooms,
		Bathrooms:           b.Bathrooms,
		ExtraIDs:            b.ExtraIDs,
		SpecialInstructions: b.SpecialInstructions,
		Pricing:             b.Pricing,
		Status:              b.Status,
	}
}

// ViewFromDraft builds a provisional view from a surviving draft and its last
// computed quote.
func ViewFromDraft(d *BookingDraft, paymentReference string) *BookingView {
	v := &BookingView{
		Provisional:         true,
		PaymentReference:    paymentReference,
		ServiceID:           d.ServiceID,
		ServiceName:         d.ServiceName,
		CleanerID:           d.CleanerID,
		Date:                d.Date,
		Time:                d.Time,
		Frequency:           d.Frequency,
		Location:            d.Location,
		Bedrooms:            d.Bedrooms,
		Bathrooms:           d.Bathrooms,
		ExtraIDs:            d.ExtraIDs,
		SpecialInstructions: d.SpecialInstructions,
	}
	if d.Pricing != nil {
		v.Pricing = *d.Pricing
	}
	return v
}
