package models

// Quote is the derived price breakdown for a draft. It is recomputed on every
// price-affecting mutation and embedded as a snapshot in the booking at
// submission; it is never persisted on its own.
type Quote struct {
	ServicePrice            float64 `bson:"servicePrice" json:"servicePrice"`
	ExtrasTotal             float64 `bson:"extrasTotal" json:"extrasTotal"`
	Subtotal                float64 `bson:"subtotal" json:"subtotal"`
	FrequencyDiscountRate   float64 `bson:"frequencyDiscountRate" json:"frequencyDiscountRate"`
	FrequencyDiscountAmount float64 `bson:"frequencyDiscountAmount" json:"frequencyDiscountAmount"`
	PromoCode               string  `bson:"promoCode,omitempty" json:"promoCode,omitempty"`
	PromoDiscountAmount     float64 `bson:"promoDiscountAmount" json:"promoDiscountAmount"`
	ServiceFeeRate          float64 `bson:"serviceFeeRate" json:"serviceFeeRate"`
	ServiceFeeAmount        float64 `bson:"serviceFeeAmount" json:"serviceFeeAmount"`
	Total                   float64 `bson:"total" json:"total"`
}
