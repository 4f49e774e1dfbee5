package booking

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"sparklean/models"
)

// StartSession creates a fresh, empty draft for a new wizard entry.
func (s *DefaultBookingFlowService) StartSession(ctx context.Context) (*models.BookingDraft, error) {
	draft, err := s.Drafts.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start booking session: %w", err)
	}
	zap.L().Info("booking session started", zap.String("sessionId", draft.SessionID))
	return draft, nil
}

// GetDraft returns the session's draft as-is.
func (s *DefaultBookingFlowService) GetDraft(ctx context.Context, sessionID string) (*models.BookingDraft, error) {
	return s.Drafts.Load(ctx, sessionID)
}

// SetService chooses the service. Extras that are not valid for the new
// service are pruned so the draft never goes forward-inconsistent.
func (s *DefaultBookingFlowService) SetService(ctx context.Context, sessionID, serviceID string) (*models.BookingDraft, error) {
	draft, err := s.Drafts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	svc, err := s.Catalog.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	draft.ServiceID = svc.ID
	draft.ServiceSlug = svc.Slug
	draft.ServiceName = svc.Name

	if len(draft.ExtraIDs) > 0 {
		kept := draft.ExtraIDs[:0]
		for _, id := range draft.ExtraIDs {
			extra, err := s.Catalog.GetExtra(ctx, id)
			if err == nil && extra.AvailableForService(svc.ID) {
				kept = append(kept, id)
			}
		}
		draft.ExtraIDs = kept
	}

	return s.recomputeAndSave(ctx, draft)
}

// SetDetails records rooms and extras for the details step.
func (s *DefaultBookingFlowService) SetDetails(ctx context.Context, sessionID string, bedrooms, bathrooms int, extraIDs []string) (*models.BookingDraft, error) {
	draft, err := s.Drafts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := requireStep(draft, StepDetails); err != nil {
		return nil, err
	}

	if bedrooms < 0 || bedrooms > maxRooms {
		return nil, NewValidationError("bedrooms", fmt.Sprintf("must be between 0 and %d", maxRooms))
	}
	if bathrooms < 0 || bathrooms > maxRooms {
		return nil, NewValidationError("bathrooms", fmt.Sprintf("must be between 0 and %d", maxRooms))
	}

	seen := make(map[string]bool, len(extraIDs))
	deduped := make([]string, 0, len(extraIDs))
	for _, id := range extraIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		extra, err := s.Catalog.GetExtra(ctx, id)
		if err != nil {
			return nil, NewValidationError("extraIds", fmt.Sprintf("unknown extra %q", id))
		}
		if !extra.AvailableForService(draft.ServiceID) {
			return nil, NewValidationError("extraIds", fmt.Sprintf("extra %q is not available for this service", id))
		}
		deduped = append(deduped, id)
	}

	draft.Bedrooms = bedrooms
	draft.Bathrooms = bathrooms
	draft.ExtraIDs = deduped
	draft.DetailsSet = true

	return s.recomputeAndSave(ctx, draft)
}

// SetSchedule records date, arrival slot, cadence and address.
func (s *DefaultBookingFlowService) SetSchedule(ctx context.Context, sessionID, date, timeOfDay string, frequency models.Frequency, location string) (*models.BookingDraft, error) {
	draft, err := s.Drafts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := requireStep(draft, StepSchedule); err != nil {
		return nil, err
	}

	if frequency == "" {
		frequency = models.FrequencyOneTime
	}
	if !models.ValidFrequency(frequency) {
		return nil, NewValidationError("frequency", fmt.Sprintf("unknown frequency %q", frequency))
	}

	location = strings.TrimSpace(location)
	if location == "" {
		return nil, NewValidationError("location", "must not be empty")
	}
	if len(location) > maxLocationLength {
		return nil, NewValidationError("location", "is too long")
	}

	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return nil, NewValidationError("date", "must be formatted YYYY-MM-DD")
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return nil, NewValidationError("date", "must not be in the past")
	}

	slots, err := s.AvailableSlots(date)
	if err != nil {
		return nil, err
	}
	if !validSlot(slots, timeOfDay) {
		return nil, NewValidationError("time", fmt.Sprintf("%q is not an available slot for %s", timeOfDay, date))
	}

	draft.Date = date
	draft.Time = timeOfDay
	draft.Frequency = frequency
	draft.Location = location

	return s.recomputeAndSave(ctx, draft)
}

// SetCleaner records a requested cleaner. Optional; never affects the price.
func (s *DefaultBookingFlowService) SetCleaner(ctx context.Context, sessionID, cleanerID string) (*models.BookingDraft, error) {
	draft, err := s.Drafts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := requireStep(draft, StepCleaner); err != nil {
		return nil, err
	}

	if cleanerID != "" {
		if _, err := s.Catalog.GetCleaner(ctx, cleanerID); err != nil {
			return nil, NewValidationError("cleanerId", fmt.Sprintf("unknown cleaner %q", cleanerID))
		}
	}
	draft.CleanerID = cleanerID

	if err := s.Drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SetContact captures the customer's email and any special instructions.
func (s *DefaultBookingFlowService) SetContact(ctx context.Context, sessionID, email, specialInstructions string) (*models.BookingDraft, error) {
	draft, err := s.Drafts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, NewValidationError("email", "must be a valid email address")
		}
	}
	if len(specialInstructions) > maxInstructionChars {
		return nil, NewValidationError("specialInstructions", "is too long")
	}

	draft.Email = email
	draft.SpecialInstructions = specialInstructions

	if err := s.Drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Reset discards the session's draft; the explicit abandon path.
func (s *DefaultBookingFlowService) Reset(ctx context.Context, sessionID string) error {
	return s.Drafts.Reset(ctx, sessionID)
}

// recomputeAndSave reprices the draft and persists it. Every price-affecting
// mutation funnels through here so the cached quote can never go stale.
func (s *DefaultBookingFlowService) recomputeAndSave(ctx context.Context, draft *models.BookingDraft) (*models.BookingDraft, error) {
	if err := s.recomputeQuote(ctx, draft); err != nil {
		return nil, err
	}
	if err := s.Drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *DefaultBookingFlowService) recomputeQuote(ctx context.Context, draft *models.BookingDraft) error {
	if !draft.HasService() {
		draft.Pricing = nil
		return nil
	}

	svc, err := s.Catalog.GetService(ctx, draft.ServiceID)
	if err != nil {
		return err
	}
	extras, err := s.Catalog.ExtrasByID(ctx, draft.ExtraIDs)
	if err != nil {
		return err
	}

	claim, err := s.Promo.ActiveClaim(ctx, draft.SessionID)
	if err != nil {
		zap.L().Warn("failed to load active promo claim, pricing without it",
			zap.String("sessionId", draft.SessionID), zap.Error(err))
		claim = nil
	}

	draft.Pricing = ComputeQuote(svc, extras, draft, claim)
	return nil
}
