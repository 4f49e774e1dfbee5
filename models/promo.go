package models

import "time"

// DiscountType distinguishes percentage promos from fixed-amount promos.
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

// ClaimStatus is the lifecycle state of a promo claim.
type ClaimStatus string

const (
	ClaimActive   ClaimStatus = "active"
	ClaimExpired  ClaimStatus = "expired"
	ClaimRevoked  ClaimStatus = "revoked"
	ClaimRedeemed ClaimStatus = "redeemed"
)

// PromoScopeAny marks a promo code usable with any service.
const PromoScopeAny = "any"

// PromoCode is the catalog definition of a discount code.
type PromoCode struct {
	Code          string       `bson:"code" json:"code"`
	AppliesTo     string       `bson:"appliesTo" json:"appliesTo"` // service slug or "any"
	DiscountType  DiscountType `bson:"discountType" json:"discountType"`
	DiscountValue float64      `bson:"discountValue" json:"discountValue"`
	Active        bool         `bson:"active" json:"active"`
	CreatedAt     time.Time    `bson:"createdAt" json:"createdAt"`
}

// PromoClaim is a provisional grant of a code to one browsing session.
// At most one active claim may exist per (sessionId, code) pair.
type PromoClaim struct {
	ID            string       `bson:"id" json:"id"`
	Code          string       `bson:"code" json:"code"`
	AppliesTo     string       `bson:"appliesTo" json:"appliesTo"`
	DiscountType  DiscountType `bson:"discountType" json:"discountType"`
	DiscountValue float64      `bson:"discountValue" json:"discountValue"`
	SessionID     string       `bson:"sessionId" json:"sessionId"`
	Email         string       `bson:"email,omitempty" json:"email,omitempty"`
	ClaimedAt     time.Time    `bson:"claimedAt" json:"claimedAt"`
	ExpiresAt     time.Time    `bson:"expiresAt" json:"expiresAt"`
	Status        ClaimStatus  `bson:"status" json:"status"`
	RevokeReason  string       `bson:"revokeReason,omitempty" json:"revokeReason,omitempty"`
}

// EffectiveStatus evaluates expiry lazily: a stored-active claim whose window
// has passed is treated as expired regardless of what the record still says.
func (c *PromoClaim) EffectiveStatus(now time.Time) ClaimStatus {
	if c.Status == ClaimActive && !now.Before(c.ExpiresAt) {
		return ClaimExpired
	}
	return c.Status
}

// AppliesToService reports whether the claim's scope covers the given service slug.
func (c *PromoClaim) AppliesToService(slug string) bool {
	return c.AppliesTo == PromoScopeAny || c.AppliesTo == slug
}

// PromoRedemption durably ties a spent claim to the booking that consumed it.
type PromoRedemption struct {
	BookingID     string       `bson:"bookingId" json:"bookingId"`
	ClaimID       string       `bson:"claimId" json:"claimId"`
	Code          string       `bson:"code" json:"code"`
	DiscountType  DiscountType `bson:"discountType" json:"discountType"`
	DiscountValue float64      `bson:"discountValue" json:"discountValue"`
	RedeemedAt    time.Time    `bson:"redeemedAt" json:"redeemedAt"`
}
