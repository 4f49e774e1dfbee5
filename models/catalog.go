package models

// Service is a bookable cleaning service with its pricing rates.
type Service struct {
	ID             string  `bson:"id" json:"id"`
	Slug           string  `bson:"slug" json:"slug"`
	Name           string  `bson:"name" json:"name"`
	Description    string  `bson:"description,omitempty" json:"description,omitempty"`
	BasePrice      float64 `bson:"basePrice" json:"basePrice"`
	BedroomPrice   float64 `bson:"bedroomPrice" json:"bedroomPrice"`
	BathroomPrice  float64 `bson:"bathroomPrice" json:"bathroomPrice"`
	ServiceFeeRate float64 `bson:"serviceFeeRate" json:"serviceFeeRate"`
	Active         bool    `bson:"active" json:"active"`
}

// Extra is an optional add-on (oven, windows, fridge, ...) with a flat price.
// An empty ServiceIDs list means the extra is available for every service.
type Extra struct {
	ID         string   `bson:"id" json:"id"`
	Name       string   `bson:"name" json:"name"`
	Price      float64  `bson:"price" json:"price"`
	ServiceIDs []string `bson:"serviceIds,omitempty" json:"serviceIds,omitempty"`
	Active     bool     `bson:"active" json:"active"`
}

// AvailableForService reports whether the extra can be added to the given service.
func (e *Extra) AvailableForService(serviceID string) bool {
	if len(e.ServiceIDs) == 0 {
		return true
	}
	for _, id := range e.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// Cleaner is the public profile of a cleaner a customer may request.
type Cleaner struct {
	ID     string  `bson:"id" json:"id"`
	Name   string  `bson:"name" json:"name"`
	Photo  string  `bson:"photo,omitempty" json:"photo,omitempty"`
	Rating float64 `bson:"rating,omitempty" json:"rating,omitempty"`
	Active bool    `bson:"active" json:"active"`
}
