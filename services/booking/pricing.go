package booking

import (
	"math"

	"go.uber.org/zap"

	"sparklean/models"
)

// frequencyDiscountRates is the fixed cadence discount table. The four rates
// are a tested contract; promoting them to configuration must preserve these
// defaults.
var frequencyDiscountRates = map[models.Frequency]float64{
	models.FrequencyOneTime:  0.00,
	models.FrequencyWeekly:   0.15,
	models.FrequencyBiWeekly: 0.10,
	models.FrequencyMonthly:  0.05,
}

// FrequencyDiscountRate returns the discount rate for a cadence; unknown
// cadences price as one-time.
func FrequencyDiscountRate(f models.Frequency) float64 {
	return frequencyDiscountRates[f]
}

// ComputeQuote derives the price breakdown for a draft from the resolved
// catalog entries and the session's active promo claim (nil when none).
//
// The computation order is fixed: base+rooms, extras, frequency discount,
// promo discount (off the after-frequency amount, capped so the pre-fee amount
// never goes negative), then the service fee. Intermediate values keep full
// precision; the total is rounded half-up to 2 decimals once at the end.
// Identical inputs always produce identical quotes; the only time-dependent
// part of the promo lifecycle (expiry) is resolved before the claim reaches
// this function.
func ComputeQuote(svc *models.Service, extras map[string]models.Extra, draft *models.BookingDraft, claim *models.PromoClaim) *models.Quote {
	servicePrice := svc.BasePrice +
		float64(draft.Bedrooms)*svc.BedroomPrice +
		float64(draft.Bathrooms)*svc.BathroomPrice

	extrasTotal := 0.0
	for _, id := range draft.ExtraIDs {
		extra, ok := extras[id]
		if !ok {
			// A selected extra vanished from the catalog. Price it at zero for
			// display; submission re-validates and blocks on this.
			zap.L().Warn("pricing: extra missing from catalog, contributing zero",
				zap.String("extraId", id),
				zap.String("serviceId", svc.ID))
			continue
		}
		extrasTotal += extra.Price
	}

	subtotal := servicePrice + extrasTotal

	freqRate := FrequencyDiscountRate(draft.Frequency)
	freqDiscount := subtotal * freqRate
	afterFrequency := subtotal - freqDiscount

	promoDiscount := 0.0
	promoCode := ""
	if claim != nil && claim.AppliesToService(draft.ServiceSlug) {
		switch claim.DiscountType {
		case models.DiscountPercent:
			promoDiscount = afterFrequency * claim.DiscountValue / 100
		case models.DiscountFixed:
			promoDiscount = claim.DiscountValue
		}
		if promoDiscount > afterFrequency {
			promoDiscount = afterFrequency
		}
		promoCode = claim.Code
	}
	afterPromo := afterFrequency - promoDiscount

	serviceFee := afterPromo * svc.ServiceFeeRate
	total := roundHalfUp(afterPromo + serviceFee)

	return &models.Quote{
		ServicePrice:            servicePrice,
		ExtrasTotal:             extrasTotal,
		Subtotal:                subtotal,
		FrequencyDiscountRate:   freqRate,
		FrequencyDiscountAmount: freqDiscount,
		PromoCode:               promoCode,
		PromoDiscountAmount:     promoDiscount,
		ServiceFeeRate:          svc.ServiceFeeRate,
		ServiceFeeAmount:        serviceFee,
		Total:                   total,
	}
}

// roundHalfUp rounds to 2 decimal places, halves rounding up.
// All quote amounts are non-negative.
func roundHalfUp(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
