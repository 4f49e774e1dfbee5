package models

import "time"

// BookingStatus is the lifecycle state of a durable booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is the durable record created once a draft is submitted.
// Status starts at pending and advances to confirmed once payment is verified;
// completed and cancelled are terminal and set by staff flows.
type Booking struct {
	ID                  string        `bson:"id" json:"id"`
	Reference           string        `bson:"reference" json:"reference"`
	PaymentReference    string        `bson:"paymentReference" json:"paymentReference"`
	ServiceID           string        `bson:"serviceId" json:"serviceId"`
	ServiceName         string        `bson:"serviceName" json:"serviceName"`
	CleanerID           string        `bson:"cleanerId,omitempty" json:"cleanerId,omitempty"`
	Date                string        `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time                string        `bson:"time" json:"time"` // "HH:MM"
	Frequency           Frequency     `bson:"frequency" json:"frequency"`
	Location            string        `bson:"location" json:"location"`
	Bedrooms            int           `bson:"bedrooms" json:"bedrooms"`
	Bathrooms           int           `bson:"bathrooms" json:"bathrooms"`
	ExtraIDs            []string      `bson:"extraIds,omitempty" json:"extraIds,omitempty"`
	SpecialInstructions string        `bson:"specialInstructions,omitempty" json:"specialInstructions,omitempty"`
	Email               string        `bson:"email,omitempty" json:"email,omitempty"`
	Pricing             Quote         `bson:"pricing" json:"pricing"`
	Status              BookingStatus `bson:"status" json:"status"`
	CreatedAt           time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time     `bson:"updatedAt" json:"updatedAt"`
}
