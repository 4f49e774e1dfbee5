package booking

import (
	"math"
	"testing"
	"time"

	"sparklean/models"
)

func standardHomeClean() *models.Service {
	return &models.Service{
		ID:             "svc-standard",
		Slug:           "standard-clean",
		Name:           "Standard Home Clean",
		BasePrice:      350,
		BedroomPrice:   50,
		BathroomPrice:  40,
		ServiceFeeRate: 0.10,
		Active:         true,
	}
}

func insideFridgeExtra() models.Extra {
	return models.Extra{
		ID:         "extra-fridge",
		Name:       "Inside Fridge",
		Price:      150,
		ServiceIDs: []string{"svc-standard"},
		Active:     true,
	}
}

func weeklyDraft() *models.BookingDraft {
	return &models.BookingDraft{
		SessionID:   "sess-1",
		ServiceID:   "svc-standard",
		ServiceSlug: "standard-clean",
		ServiceName: "Standard Home Clean",
		Bedrooms:    2,
		Bathrooms:   1,
		ExtraIDs:    []string{"extra-fridge"},
		Frequency:   models.FrequencyWeekly,
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeQuoteWithoutPromo(t *testing.T) {
	extras := map[string]models.Extra{"extra-fridge": insideFridgeExtra()}
	q := ComputeQuote(standardHomeClean(), extras, weeklyDraft(), nil)

	if !approxEqual(q.ServicePrice, 490) {
		t.Errorf("ServicePrice = %v, want 490", q.ServicePrice)
	}
	if !approxEqual(q.ExtrasTotal, 150) {
		t.Errorf("ExtrasTotal = %v, want 150", q.ExtrasTotal)
	}
	if !approxEqual(q.Subtotal, 640) {
		t.Errorf("Subtotal = %v, want 640", q.Subtotal)
	}
	if !approxEqual(q.FrequencyDiscountAmount, 96) {
		t.Errorf("FrequencyDiscountAmount = %v, want 96", q.FrequencyDiscountAmount)
	}
	if q.PromoDiscountAmount != 0 {
		t.Errorf("PromoDiscountAmount = %v, want 0", q.PromoDiscountAmount)
	}
	if !approxEqual(q.ServiceFeeAmount, 54.40) {
		t.Errorf("ServiceFeeAmount = %v, want 54.40", q.ServiceFeeAmount)
	}
	if q.Total != 598.40 {
		t.Errorf("Total = %v, want 598.40", q.Total)
	}
}

func TestComputeQuoteWithPercentPromo(t *testing.T) {
	extras := map[string]models.Extra{"extra-fridge": insideFridgeExtra()}
	claim := &models.PromoClaim{
		ID:            "claim-1",
		Code:          "SAVE10",
		AppliesTo:     models.PromoScopeAny,
		DiscountType:  models.DiscountPercent,
		DiscountValue: 10,
		SessionID:     "sess-1",
		Status:        models.ClaimActive,
		ExpiresAt:     time.Now().Add(time.Hour),
	}

	q := ComputeQuote(standardHomeClean(), extras, weeklyDraft(), claim)

	if !approxEqual(q.PromoDiscountAmount, 54.40) {
		t.Errorf("PromoDiscountAmount = %v, want 54.40", q.PromoDiscountAmount)
	}
	if !approxEqual(q.ServiceFeeAmount, 48.96) {
		t.Errorf("ServiceFeeAmount = %v, want 48.96", q.ServiceFeeAmount)
	}
	if q.Total != 538.56 {
		t.Errorf("Total = %v, want 538.56", q.Total)
	}
	if q.PromoCode != "SAVE10" {
		t.Errorf("PromoCode = %q, want SAVE10", q.PromoCode)
	}
}

func TestComputeQuoteFixedPromoIsCapped(t *testing.T) {
	svc := &models.Service{ID: "svc-mini", Slug: "mini", BasePrice: 100, ServiceFeeRate: 0.10}
	draft := &models.BookingDraft{
		SessionID:   "sess-2",
		ServiceID:   "svc-mini",
		ServiceSlug: "mini",
		Frequency:   models.FrequencyOneTime,
	}
	claim := &models.PromoClaim{
		ID:            "claim-2",
		Code:          "BIGOFF",
		AppliesTo:     models.PromoScopeAny,
		DiscountType:  models.DiscountFixed,
		DiscountValue: 500,
		Status:        models.ClaimActive,
	}

	q := ComputeQuote(svc, nil, draft, claim)

	if !approxEqual(q.PromoDiscountAmount, 100) {
		t.Errorf("PromoDiscountAmount = %v, want capped at 100", q.PromoDiscountAmount)
	}
	if q.Total != 0 {
		t.Errorf("Total = %v, want 0", q.Total)
	}
}

func TestComputeQuoteScopedPromoIgnoredForOtherService(t *testing.T) {
	extras := map[string]models.Extra{"extra-fridge": insideFridgeExtra()}
	claim := &models.PromoClaim{
		ID:            "claim-3",
		Code:          "DEEPONLY",
		AppliesTo:     "deep-clean",
		DiscountType:  models.DiscountPercent,
		DiscountValue: 50,
		Status:        models.ClaimActive,
	}

	q := ComputeQuote(standardHomeClean(), extras, weeklyDraft(), claim)

	if q.PromoDiscountAmount != 0 {
		t.Errorf("PromoDiscountAmount = %v, want 0 for out-of-scope promo", q.PromoDiscountAmount)
	}
	if q.PromoCode != "" {
		t.Errorf("PromoCode = %q, want empty for out-of-scope promo", q.PromoCode)
	}
	if q.Total != 598.40 {
		t.Errorf("Total = %v, want 598.40", q.Total)
	}
}

func TestComputeQuoteUnknownExtraContributesZero(t *testing.T) {
	draft := weeklyDraft()
	draft.ExtraIDs = append(draft.ExtraIDs, "extra-ghost")
	extras := map[string]models.Extra{"extra-fridge": insideFridgeExtra()}

	q := ComputeQuote(standardHomeClean(), extras, draft, nil)

	if !approxEqual(q.ExtrasTotal, 150) {
		t.Errorf("ExtrasTotal = %v, want 150 with the missing extra at zero", q.ExtrasTotal)
	}
	if q.Total != 598.40 {
		t.Errorf("Total = %v, want 598.40", q.Total)
	}
}

func TestComputeQuoteDeterministic(t *testing.T) {
	extras := map[string]models.Extra{"extra-fridge": insideFridgeExtra()}
	first := ComputeQuote(standardHomeClean(), extras, weeklyDraft(), nil)
	for i := 0; i < 50; i++ {
		q := ComputeQuote(standardHomeClean(), extras, weeklyDraft(), nil)
		if *q != *first {
			t.Fatalf("quote %d differs: %+v vs %+v", i, q, first)
		}
	}
}

func TestFrequencyDiscountRates(t *testing.T) {
	cases := []struct {
		freq models.Frequency
		rate float64
	}{
		{models.FrequencyOneTime, 0},
		{models.FrequencyWeekly, 0.15},
		{models.FrequencyBiWeekly, 0.10},
		{models.FrequencyMonthly, 0.05},
		{models.Frequency("quarterly"), 0},
	}
	for _, tc := range cases {
		if got := FrequencyDiscountRate(tc.freq); got != tc.rate {
			t.Errorf("FrequencyDiscountRate(%q) = %v, want %v", tc.freq, got, tc.rate)
		}
	}
}

func TestRoundHalfUp(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{598.396, 598.40},
		{598.394, 598.39},
		{100, 100},
		{0, 0},
	}
	for _, tc := range cases {
		if got := roundHalfUp(tc.in); got != tc.want {
			t.Errorf("roundHalfUp(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
