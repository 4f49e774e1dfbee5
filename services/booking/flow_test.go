package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	bookingRepo "sparklean/database/repository/booking"
	"sparklean/models"
	"sparklean/services/catalog"
)

// memDraftCache is an in-memory DraftCache for tests.
type memDraftCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	failSet bool
	failDel bool
}

func newMemDraftCache() *memDraftCache {
	return &memDraftCache{data: make(map[string][]byte)}
}

func (c *memDraftCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.data[key]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return data, nil
}

func (c *memDraftCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if c.failSet {
		return errors.New("cache write refused")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	return nil
}

func (c *memDraftCache) Del(ctx context.Context, key string) error {
	if c.failDel {
		return errors.New("cache delete refused")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// fakeCatalog serves a fixed catalog from maps.
type fakeCatalog struct {
	services map[string]models.Service
	extras   map[string]models.Extra
	cleaners map[string]models.Cleaner
}

func newFakeCatalog() *fakeCatalog {
	svc := *standardHomeClean()
	extra := insideFridgeExtra()
	return &fakeCatalog{
		services: map[string]models.Service{svc.ID: svc},
		extras:   map[string]models.Extra{extra.ID: extra},
		cleaners: map[string]models.Cleaner{
			"cl-1": {ID: "cl-1", Name: "Thandi M.", Active: true},
		},
	}
}

func (f *fakeCatalog) GetService(ctx context.Context, id string) (*models.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, catalog.NewServiceMismatch(id)
	}
	return &svc, nil
}

func (f *fakeCatalog) GetServiceBySlug(ctx context.Context, slug string) (*models.Service, error) {
	for _, svc := range f.services {
		if svc.Slug == slug {
			return &svc, nil
		}
	}
	return nil, catalog.NewServiceMismatch(slug)
}

func (f *fakeCatalog) ListServices(ctx context.Context) ([]models.Service, error) {
	out := make([]models.Service, 0, len(f.services))
	for _, svc := range f.services {
		out = append(out, svc)
	}
	return out, nil
}

func (f *fakeCatalog) GetExtra(ctx context.Context, id string) (*models.Extra, error) {
	extra, ok := f.extras[id]
	if !ok {
		return nil, catalog.NewExtraMismatch(id)
	}
	return &extra, nil
}

func (f *fakeCatalog) ExtrasByID(ctx context.Context, ids []string) (map[string]models.Extra, error) {
	out := make(map[string]models.Extra, len(ids))
	for _, id := range ids {
		if extra, ok := f.extras[id]; ok {
			out[id] = extra
		}
	}
	return out, nil
}

func (f *fakeCatalog) ListExtras(ctx context.Context) ([]models.Extra, error) {
	out := make([]models.Extra, 0, len(f.extras))
	for _, extra := range f.extras {
		out = append(out, extra)
	}
	return out, nil
}

func (f *fakeCatalog) GetCleaner(ctx context.Context, id string) (*models.Cleaner, error) {
	cl, ok := f.cleaners[id]
	if !ok {
		return nil, errors.New("cleaner not found")
	}
	return &cl, nil
}

func (f *fakeCatalog) ListCleaners(ctx context.Context) ([]models.Cleaner, error) {
	out := make([]models.Cleaner, 0, len(f.cleaners))
	for _, cl := range f.cleaners {
		out = append(out, cl)
	}
	return out, nil
}

// fakePromo hands back a preset claim and records redeem/release calls.
type fakePromo struct {
	mu        sync.Mutex
	claim     *models.PromoClaim
	redeemErr error
	redeems   []string
	releases  []string
}

func (f *fakePromo) Claim(ctx context.Context, code, sessionID, serviceSlug, email string) (*models.PromoClaim, error) {
	return nil, errors.New("not implemented in fake")
}

func (f *fakePromo) ActiveClaim(ctx context.Context, sessionID string) (*models.PromoClaim, error) {
	if f.claim == nil || f.claim.SessionID != sessionID {
		return nil, nil
	}
	return f.claim, nil
}

func (f *fakePromo) Redeem(ctx context.Context, claimID, bookingID string) (*models.PromoRedemption, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.redeemErr != nil {
		return nil, f.redeemErr
	}
	f.redeems = append(f.redeems, claimID)
	return &models.PromoRedemption{
		BookingID: bookingID,
		ClaimID:   claimID,
		Code:      f.claim.Code,
	}, nil
}

func (f *fakePromo) Release(ctx context.Context, claimID, bookingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releases = append(f.releases, claimID)
	return nil
}

func (f *fakePromo) Revoke(ctx context.Context, claimID, reason string) error { return nil }

func (f *fakePromo) ExpireLapsed(ctx context.Context) (int64, error) { return 0, nil }

// fakeBookingRepo keeps bookings in a map keyed by payment reference.
// failCreates/failReads inject failures for the compensation and retry paths.
type fakeBookingRepo struct {
	mu          sync.Mutex
	byPayRef    map[string]*models.Booking
	failCreates bool
	failReads   int
	reads       int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byPayRef: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreates {
		return errors.New("insert refused")
	}
	cp := *b
	r.byPayRef[b.PaymentReference] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.byPayRef {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *fakeBookingRepo) GetByReference(ctx context.Context, reference string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.byPayRef {
		if b.Reference == reference {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *fakeBookingRepo) GetByPaymentReference(ctx context.Context, paymentReference string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	if r.reads <= r.failReads {
		return nil, bookingRepo.ErrBookingNotFound
	}
	b, ok := r.byPayRef[paymentReference]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.byPayRef {
		if b.ID == id {
			b.Status = status
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

func (r *fakeBookingRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for ref, b := range r.byPayRef {
		if b.ID == id {
			delete(r.byPayRef, ref)
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

// fakePayments returns a canned checkout URL.
type fakePayments struct {
	url string
	err error
}

func (p *fakePayments) CreateCheckout(ctx context.Context, b *models.Booking) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.url, nil
}

func newTestFlow() (*DefaultBookingFlowService, *memDraftCache, *fakePromo, *fakeBookingRepo) {
	cache := newMemDraftCache()
	fp := &fakePromo{}
	repo := newFakeBookingRepo()
	svc := &DefaultBookingFlowService{
		Drafts:         &DraftStore{Cache: cache, TTL: time.Hour},
		Catalog:        newFakeCatalog(),
		Promo:          fp,
		Repo:           repo,
		Payments:       &fakePayments{url: "https://pay.example/checkout"},
		ResolveBackoff: time.Millisecond,
	}
	return svc, cache, fp, repo
}

func mustSetService(t *testing.T, svc *DefaultBookingFlowService, sessionID string) *models.BookingDraft {
	t.Helper()
	draft, err := svc.SetService(context.Background(), sessionID, "svc-standard")
	if err != nil {
		t.Fatalf("SetService: %v", err)
	}
	return draft
}

func futureDate(svc *DefaultBookingFlowService) string {
	return svc.now().AddDate(0, 0, 7).Format(dateLayout)
}

func completeDraft(t *testing.T, svc *DefaultBookingFlowService) string {
	t.Helper()
	ctx := context.Background()
	draft, err := svc.StartSession(ctx)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	sessionID := draft.SessionID
	mustSetService(t, svc, sessionID)
	if _, err := svc.SetDetails(ctx, sessionID, 2, 1, []string{"extra-fridge"}); err != nil {
		t.Fatalf("SetDetails: %v", err)
	}
	if _, err := svc.SetSchedule(ctx, sessionID, futureDate(svc), "09:00", models.FrequencyWeekly, "12 Protea Rd, Cape Town"); err != nil {
		t.Fatalf("SetSchedule: %v", err)
	}
	if _, err := svc.SetContact(ctx, sessionID, "customer@example.com", ""); err != nil {
		t.Fatalf("SetContact: %v", err)
	}
	return sessionID
}

func TestStartSessionCreatesEmptyDraft(t *testing.T) {
	svc, _, _, _ := newTestFlow()
	draft, err := svc.StartSession(context.Background())
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if draft.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if !draft.IsEmpty() {
		t.Errorf("new draft should be empty, got %+v", draft)
	}
	if draft.Frequency != models.FrequencyOneTime {
		t.Errorf("Frequency = %q, want one-time default", draft.Frequency)
	}
}

func TestGetDraftUnknownSession(t *testing.T) {
	svc, _, _, _ := newTestFlow()
	_, err := svc.GetDraft(context.Background(), "no-such-session")
	if !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("err = %v, want ErrDraftNotFound", err)
	}
}

func TestSetServicePricesDraft(t *testing.T) {
	svc, _, _, _ := newTestFlow()
	draft, err := svc.StartSession(context.Background())
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	updated := mustSetService(t, svc, draft.SessionID)
	if updated.Pricing == nil {
		t.Fatal("expected a quote after choosing a service")
	}
	if updated.Pricing.ServicePrice != 350 {
		t.Errorf("ServicePrice = %v, want base 350 with no rooms", updated.Pricing.ServicePrice)
	}
}

func TestSetDetailsRejectsOutOfRangeRooms(t *testing.T) {
	svc, _, _, _ := newTestFlow()
	ctx := context.Background()
	draft, _ := svc.StartSession(ctx)
	mustSetService(t, svc, draft.SessionID)

	if _, err := svc.SetDetails(ctx, draft.SessionID, -1, 0, nil); !IsValidationError(err) {
		t.Errorf("negative bedrooms: err = %v, want validation error", err)
	}
	if _, err := svc.SetDetails(ctx, draft.SessionID, 0, 11, nil); !IsValidationError(err) {
		t.Errorf("11 bathrooms: err = %v, want validation error", err)
	}
}

func TestSetDetailsRejectsUnknownExtra(t *testing.T) {
	svc, _, _, _ := newTestFlow()
	ctx := context.Background()
	draft, _ := svc.StartSession(ctx)
	mustSetService(t, svc, draft.SessionID)

	_, err := svc.SetDetails(ctx, draft.SessionID, 1, 1, []string{"extra-ghost"})
	if !IsValidationError(err) {
		t.Fatalf("err = %v, want validation error for unknown extra", err)
	}
}

func TestSetDetailsBeforeServiceIsGuarded(t *testing.T) {
	svc, _, _, _ := newTestFlow()
	ctx := context.Background()
	draft, _ := svc.StartSession(ctx)

	_, err := svc.SetDetails(ctx, draft.SessionID, 1, 1, nil)
	var ise *IncompleteStepError
	if !errors.As(err, &ise) {
		t.Fatalf("err = %v, want IncompleteStepError", err)
	}
	if ise.Required != StepService {
		t.Errorf("Required = %q, want service", ise.Required)
	}
}

func TestSetScheduleBeforeDetailsIsGuarded(t *testing.T) {
	svc, _, _, _ := newTestFlow()
	ctx := context.Background()
	draft, _ := svc.StartSession(ctx)
	mustSetService(t, svc, draft.SessionID)

	_, err := svc.SetSchedule(ctx, draft.SessionID, futureDate(svc), "09:00", models.FrequencyWeekly, "addr")
	var ise *IncompleteStepError
	if !errors.As(err, &ise) {
		t.Fatalf("err = %v, want IncompleteStepError", err)
	}
	if ise.Required != StepDetails {
		t.Errorf("Required = %q, want details", ise.Required)
	}
}

func TestSetScheduleValidation(t *testing.T) {
	svc, _, _, _ := newTestFlow()
	ctx := context.Background()
	draft, _ := svc.StartSession(ctx)
	sessionID := draft.SessionID
	mustSetService(t, svc, sessionID)
	if _, err := svc.SetDetails(ctx, sessionID, 1, 1, nil); err != nil {
		t.Fatalf("SetDetails: %v", err)
	}

	past := svc.now().AddDate(0, 0, -1).Format(dateLayout)
	if _, err := svc.SetSchedule(ctx, sessionID, past, "09:00", models.FrequencyWeekly, "addr"); !IsValidationError(err) {
		t.Errorf("past date: err = %v, want validation error", err)
	}
	if _, err := svc.SetSchedule(ctx, sessionID, futureDate(svc), "09:30", models.FrequencyWeekly, "addr"); !IsValidationError(err) {
		t.Errorf("off-grid slot: err = %v, want validation error", err)
	}
	if _, err := svc.SetSchedule(ctx, sessionID, futureDate(svc), "09:00", models.FrequencyWeekly, "   "); !IsValidationError(err) {
		t.Errorf("blank location: err = %v, want validation error", err)
	}
	if _, err := svc.SetSchedule(ctx, sessionID, futureDate(svc), "09:00", models.Frequency("quarterly"), "addr"); !IsValidationError(err) {
		t.Errorf("unknown frequency: err = %v, want validation error", err)
	}

	updated, err := svc.SetSchedule(ctx, sessionID, futureDate(svc), "09:00", models.FrequencyWeekly, "12 Protea Rd")
	if err != nil {
		t.Fatalf("valid schedule: %v", err)
	}
	if updated.Pricing.FrequencyDiscountRate != 0.15 {
		t.Errorf("FrequencyDiscountRate = %v, want 0.15", updated.Pricing.FrequencyDiscountRate)
	}
}

func TestSetServicePrunesIncompatibleExtras(t *testing.T) {
	svc, _, _, _ := newTestFlow()
	fc := svc.Catalog.(*fakeCatalog)
	fc.services["svc-deep"] = models.Service{
		ID: "svc-deep", Slug: "deep-clean", Name: "Deep Clean",
		BasePrice: 600, ServiceFeeRate: 0.10, Active: true,
	}

	ctx := context.Background()
	draft, _ := svc.StartSession(ctx)
	sessionID := draft.SessionID
	mustSetService(t, svc, sessionID)
	if _, err := svc.SetDetails(ctx, sessionID, 1, 1, []string{"extra-fridge"}); err != nil {
		t.Fatalf("SetDetails: %v", err)
	}

	// The fridge extra only applies to the standard service.
	updated, err := svc.SetService(ctx, sessionID, "svc-deep")
	if err != nil {
		t.Fatalf("SetService: %v", err)
	}
	if len(updated.ExtraIDs) != 0 {
		t.Errorf("ExtraIDs = %v, want pruned to empty", updated.ExtraIDs)
	}
	if updated.Pricing.ExtrasTotal != 0 {
		t.Errorf("ExtrasTotal = %v, want 0 after pruning", updated.Pricing.ExtrasTotal)
	}
}

func TestSetCleanerUnknownID(t *testing.T) {
	svc, _, _, _ := newTestFlow()
	sessionID := completeDraft(t, svc)
	if _, err := svc.SetCleaner(context.Background(), sessionID, "cl-ghost"); !IsValidationError(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if _, err := svc.SetCleaner(context.Background(), sessionID, "cl-1"); err != nil {
		t.Fatalf("valid cleaner: %v", err)
	}
}

func TestSetContactRejectsBadEmail(t *testing.T) {
	svc, _, _, _ := newTestFlow()
	sessionID := completeDraft(t, svc)
	if _, err := svc.SetContact(context.Background(), sessionID, "not-an-email", ""); !IsValidationError(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestResetDiscardsDraft(t *testing.T) {
	svc, _, _, _ := newTestFlow()
	sessionID := completeDraft(t, svc)
	if err := svc.Reset(context.Background(), sessionID); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if _, err := svc.GetDraft(context.Background(), sessionID); !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("err = %v, want ErrDraftNotFound after reset", err)
	}
	// Resetting again is a no-op, not an error.
	if err := svc.Reset(context.Background(), sessionID); err != nil {
		t.Fatalf("second Reset: %v", err)
	}
}

func TestPromoClaimFlowsIntoQuote(t *testing.T) {
	svc, _, fp, _ := newTestFlow()
	ctx := context.Background()
	draft, _ := svc.StartSession(ctx)
	sessionID := draft.SessionID
	fp.claim = &models.PromoClaim{
		ID: "claim-1", Code: "SAVE10", AppliesTo: models.PromoScopeAny,
		DiscountType: models.DiscountPercent, DiscountValue: 10,
		SessionID: sessionID, Status: models.ClaimActive,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	mustSetService(t, svc, sessionID)
	updated, err := svc.SetDetails(ctx, sessionID, 2, 1, []string{"extra-fridge"})
	if err != nil {
		t.Fatalf("SetDetails: %v", err)
	}
	if updated.Pricing.PromoCode != "SAVE10" {
		t.Errorf("PromoCode = %q, want SAVE10", updated.Pricing.PromoCode)
	}
	if updated.Pricing.PromoDiscountAmount == 0 {
		t.Error("expected a promo discount in the quote")
	}
}

func TestEarliestIncompleteStep(t *testing.T) {
	d := &models.BookingDraft{}
	if got := EarliestIncompleteStep(d); got != StepService {
		t.Errorf("empty draft: %q, want service", got)
	}
	d.ServiceID = "svc-standard"
	d.Frequency = models.FrequencyOneTime
	if got := EarliestIncompleteStep(d); got != StepDetails {
		t.Errorf("service only: %q, want details", got)
	}
	d.DetailsSet = true
	if got := EarliestIncompleteStep(d); got != StepSchedule {
		t.Errorf("details done: %q, want schedule", got)
	}
	d.Date = "2026-10-01"
	d.Time = "09:00"
	d.Location = "addr"
	if got := EarliestIncompleteStep(d); got != StepReview {
		t.Errorf("schedule done: %q, want review", got)
	}
}
