package donation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"EcoFeast-Backend/domain"
	"EcoFeast-Backend/entities"
	"EcoFeast-Backend/pkg/notification"
	"EcoFeast-Backend/pkg/session"
	"EcoFeast-Backend/pkg/verification"
)

type fakeDonationRepository struct {
	items     map[string]domain.FoodItem
	nextID    string
	createErr error
	updates   []domain.FoodStatus
	updateErr error
}

func newFakeDonationRepository() *fakeDonationRepository {
	return &fakeDonationRepository{
		items:  make(map[string]domain.FoodItem),
		nextID: "42",
	}
}

func (r *fakeDonationRepository) CreateFoodItem(ctx context.Context, item domain.FoodItem, donorID string) (string, error) {
	if r.createErr != nil {
		return "", r.createErr
	}
	item.ID = r.nextID
	item.Timestamp = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r.items[item.ID] = item
	return item.ID, nil
}

func (r *fakeDonationRepository) GetFoodItemByID(ctx context.Context, id string) (domain.FoodItem, error) {
	item, ok := r.items[id]
	if !ok {
		return domain.FoodItem{}, domain.ErrFoodItemNotFound
	}
	return item, nil
}

func (r *fakeDonationRepository) UpdateFoodStatus(ctx context.Context, id string, status domain.FoodStatus, ngoID string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	item, ok := r.items[id]
	if !ok {
		return domain.ErrFoodItemNotFound
	}
	item.Status = status
	r.items[id] = item
	r.updates = append(r.updates, status)
	return nil
}

func (r *fakeDonationRepository) ListFoodItems(ctx context.Context) ([]domain.FoodItem, error) {
	out := make([]domain.FoodItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

type fakeUserRepository struct{}

func (r *fakeUserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return errors.New("not implemented")
}

func (r *fakeUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	return &entities.User{Name: "The Green Cafe", Role: domain.RoleDonor}, nil
}

type fakeAwsS3 struct {
	uploads []string
	deletes []string
}

func (s *fakeAwsS3) UploadBytes(fileName string, data []byte, contentType string, folder string) (string, error) {
	key := folder + "/" + fileName
	s.uploads = append(s.uploads, key)
	return key, nil
}

func (s *fakeAwsS3) DeleteFile(objectKey string) error {
	s.deletes = append(s.deletes, objectKey)
	return nil
}

func (s *fakeAwsS3) GetPublicLinkKey(objectKey string) string {
	return "https://cdn.test/" + objectKey
}

type fixture struct {
	service  DonationService
	repo     *fakeDonationRepository
	store    *session.ItemStore
	s3       *fakeAwsS3
	notifier notification.NotificationService
}

func newFixture(t *testing.T, verifier verification.VerificationService) *fixture {
	t.Helper()
	repo := newFakeDonationRepository()
	store := session.NewItemStore()
	s3 := &fakeAwsS3{}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	notifier := notification.NewWithClock(func() time.Time { return now })
	return &fixture{
		service:  NewDonationService(repo, &fakeUserRepository{}, store, s3, verifier, notifier),
		repo:     repo,
		store:    store,
		s3:       s3,
		notifier: notifier,
	}
}

// imageHeader builds a multipart file part carrying an explicit image
// content type, the way mobile clients send camera captures.
func imageHeader(t *testing.T, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="food.jpg"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 10)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["image"][0]
}

func submitRequest(t *testing.T) domain.SubmitDonationRequest {
	t.Helper()
	return domain.SubmitDonationRequest{
		Name:     "Fresh Lunch Packets",
		Category: "Cooked Meals",
		Quantity: "20 Plates",
		Expiry:   "Today, 8 PM",
		Image:    imageHeader(t, "image/jpeg", []byte("fake-jpeg-bytes")),
	}
}

func TestSubmitDonationStageSequence(t *testing.T) {
	fx := newFixture(t, nil)
	tracker := NewProgressTracker()

	item, err := fx.service.SubmitDonation(context.Background(), submitRequest(t), "donor-1", tracker)
	if err != nil {
		t.Fatalf("SubmitDonation returned error: %v", err)
	}

	wantStages := []SubmissionStage{StagePreprocess, StageUpload, StagePersist, StageBroadcast}
	got := tracker.Stages()
	if len(got) != len(wantStages) {
		t.Fatalf("stages = %v; want %v", got, wantStages)
	}
	for i := range wantStages {
		if got[i] != wantStages[i] {
			t.Fatalf("stages = %v; want %v", got, wantStages)
		}
	}

	if item.ID != "42" {
		t.Errorf("item.ID = %q; want the store-assigned id", item.ID)
	}
	if item.Status != domain.StatusAvailable {
		t.Errorf("item.Status = %q; want %q regardless of client input", item.Status, domain.StatusAvailable)
	}
	if item.DonorName != "The Green Cafe" {
		t.Errorf("item.DonorName = %q; want the registered donor name", item.DonorName)
	}
	if item.Timestamp.IsZero() {
		t.Error("item.Timestamp should be assigned server-side")
	}

	if _, ok := fx.store.Get("42"); !ok {
		t.Error("submitted item missing from session store")
	}

	banner := fx.notifier.Current()
	if banner == nil {
		t.Fatal("broadcast stage should dispatch an NGO notification")
	}
	if banner.Title != "NGO Alert: New Food Available!" {
		t.Errorf("notification title = %q", banner.Title)
	}
	if banner.Body != "20 Plates of Fresh Lunch Packets listed nearby." {
		t.Errorf("notification body = %q", banner.Body)
	}
}

func TestSubmitDonationPersistFailure(t *testing.T) {
	fx := newFixture(t, nil)
	fx.repo.createErr = errors.New("connection reset")
	tracker := NewProgressTracker()

	_, err := fx.service.SubmitDonation(context.Background(), submitRequest(t), "donor-1", tracker)
	if err == nil {
		t.Fatal("SubmitDonation should surface the persistence failure")
	}

	got := tracker.Stages()
	if len(got) != 2 || got[0] != StagePreprocess || got[1] != StageUpload {
		t.Errorf("stages = %v; want only preprocess and upload", got)
	}

	if len(fx.s3.deletes) != 1 || fx.s3.deletes[0] != fx.s3.uploads[0] {
		t.Errorf("uploaded object %v should be deleted on persist failure, deletes = %v", fx.s3.uploads, fx.s3.deletes)
	}
	if items := fx.store.List(); len(items) != 0 {
		t.Errorf("session store should stay empty after a failed submission, got %v", items)
	}
	if banner := fx.notifier.Current(); banner != nil {
		t.Errorf("no notification should fire on failure, got %+v", banner)
	}
}

func TestSubmitDonationRejectsUnsupportedImage(t *testing.T) {
	fx := newFixture(t, nil)
	tracker := NewProgressTracker()

	req := submitRequest(t)
	req.Image = imageHeader(t, "text/plain", []byte("not an image"))

	_, err := fx.service.SubmitDonation(context.Background(), req, "donor-1", tracker)
	if err != domain.ErrInvalidImageFormat {
		t.Fatalf("SubmitDonation error = %v; want ErrInvalidImageFormat", err)
	}
	if got := tracker.Stages(); len(got) != 0 {
		t.Errorf("stages = %v; want none before preprocessing succeeds", got)
	}
	if len(fx.s3.uploads) != 0 {
		t.Errorf("nothing should be uploaded for a rejected image, got %v", fx.s3.uploads)
	}
}

func TestSubmissionProceedsThroughVisionOutage(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-test")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // vision endpoint is down for the whole flow
	verifier := verification.NewWithClient(&http.Client{Timeout: time.Second}, srv.URL)

	fx := newFixture(t, verifier)

	verdict, err := fx.service.VerifyImage(context.Background(), imageHeader(t, "image/jpeg", []byte("fake-jpeg-bytes")))
	if err != nil {
		t.Fatalf("VerifyImage returned error: %v", err)
	}
	if verdict != domain.FallbackVerification() {
		t.Fatalf("VerifyImage = %+v; want the manual-check fallback", verdict)
	}

	item, err := fx.service.SubmitDonation(context.Background(), submitRequest(t), "donor-1", NewProgressTracker())
	if err != nil {
		t.Fatalf("SubmitDonation returned error: %v", err)
	}
	if item.ID != "42" || item.Status != domain.StatusAvailable {
		t.Errorf("item = %+v; want id 42 with status Available", item)
	}
	if fx.notifier.Current() == nil {
		t.Error("NGO notification should still fire when vision is down")
	}
}

func TestVerifyImageEmptyFile(t *testing.T) {
	fx := newFixture(t, verification.NewVerificationService())

	_, err := fx.service.VerifyImage(context.Background(), imageHeader(t, "image/jpeg", nil))
	if err != domain.ErrEmptyImage {
		t.Fatalf("VerifyImage(empty) error = %v; want ErrEmptyImage", err)
	}
}

func TestGetFoodItemsBuckets(t *testing.T) {
	fx := newFixture(t, nil)
	statuses := []domain.FoodStatus{
		domain.StatusAvailable,
		domain.StatusNotified,
		domain.StatusAccepted,
		domain.StatusOnTheWay,
		domain.StatusPickedUp,
		domain.StatusDelivered,
	}
	for i, status := range statuses {
		fx.store.Put(domain.FoodItem{ID: fmt.Sprint(i + 1), Status: status})
	}

	cases := []struct {
		bucket string
		want   int
	}{
		{"", 6},
		{domain.BucketAvailable, 2},
		{domain.BucketActive, 3},
		{domain.BucketDelivered, 1},
	}
	for _, tc := range cases {
		items, err := fx.service.GetFoodItems(context.Background(), tc.bucket)
		if err != nil {
			t.Fatalf("GetFoodItems(%q) returned error: %v", tc.bucket, err)
		}
		if len(items) != tc.want {
			t.Errorf("GetFoodItems(%q) returned %d items; want %d", tc.bucket, len(items), tc.want)
		}
	}

	if _, err := fx.service.GetFoodItems(context.Background(), "archived"); err != domain.ErrInvalidBucket {
		t.Errorf("GetFoodItems(unknown) error = %v; want ErrInvalidBucket", err)
	}
}

func TestGetImpactStats(t *testing.T) {
	fx := newFixture(t, nil)
	fx.store.Put(domain.FoodItem{ID: "1", Quantity: "20 Plates", Status: domain.StatusDelivered})
	fx.store.Put(domain.FoodItem{ID: "2", Quantity: "A few boxes", Status: domain.StatusDelivered})
	fx.store.Put(domain.FoodItem{ID: "3", Quantity: "50 Kg", Status: domain.StatusAvailable})

	stats, err := fx.service.GetImpactStats(context.Background())
	if err != nil {
		t.Fatalf("GetImpactStats returned error: %v", err)
	}

	// 128 baseline + 20 parsed + 5 default for the unparseable quantity.
	if stats.FoodSavedKg != 153 {
		t.Errorf("FoodSavedKg = %v; want 153", stats.FoodSavedKg)
	}
	if stats.PeopleFed != 480 {
		t.Errorf("PeopleFed = %d; want 480", stats.PeopleFed)
	}
	if stats.CO2SavedKg != 64.3 {
		t.Errorf("CO2SavedKg = %v; want 64.3", stats.CO2SavedKg)
	}
}

func TestWarmLoadFillsStore(t *testing.T) {
	fx := newFixture(t, nil)
	fx.repo.items["7"] = domain.FoodItem{ID: "7", Name: "Bread & Pastries", Status: domain.StatusNotified}

	if err := fx.service.WarmLoad(context.Background()); err != nil {
		t.Fatalf("WarmLoad returned error: %v", err)
	}
	if _, ok := fx.store.Get("7"); !ok {
		t.Error("WarmLoad should copy persisted items into the session store")
	}
}
