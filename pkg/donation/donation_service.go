package donation

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"EcoFeast-Backend/domain"
	"EcoFeast-Backend/internal/utils"
	"EcoFeast-Backend/internal/utils/mailing"
	"EcoFeast-Backend/internal/utils/storage"
	"EcoFeast-Backend/pkg/notification"
	"EcoFeast-Backend/pkg/session"
	"EcoFeast-Backend/pkg/user"
	"EcoFeast-Backend/pkg/verification"

	"github.com/google/uuid"
)

// Impact estimates carry the program totals accumulated before per-item
// tracking started, plus fixed per-delivery conversion factors.
const (
	impactBaselineKg     = 128.0
	impactBaselinePeople = 450
	peopleFedPerDelivery = 15
	co2PerKgSaved        = 0.42
	defaultItemKg        = 5.0
)

type (
	DonationService interface {
		VerifyImage(ctx context.Context, image *multipart.FileHeader) (domain.VerificationResult, error)
		SubmitDonation(ctx context.Context, req domain.SubmitDonationRequest, donorID string, tracker *ProgressTracker) (domain.FoodItem, error)
		GetFoodItems(ctx context.Context, bucket string) ([]domain.FoodItem, error)
		GetFoodItemByID(ctx context.Context, id string) (domain.FoodItem, error)
		GetImpactStats(ctx context.Context) (domain.ImpactStats, error)
		WarmLoad(ctx context.Context) error
	}

	donationService struct {
		donationRepository DonationRepository
		userRepository     user.UserRepository
		store              *session.ItemStore
		s3                 storage.AwsS3
		verifier           verification.VerificationService
		notifier           notification.NotificationService
	}
)

func NewDonationService(
	donationRepository DonationRepository,
	userRepository user.UserRepository,
	store *session.ItemStore,
	s3 storage.AwsS3,
	verifier verification.VerificationService,
	notifier notification.NotificationService,
) DonationService {
	return &donationService{
		donationRepository: donationRepository,
		userRepository:     userRepository,
		store:              store,
		s3:                 s3,
		verifier:           verifier,
		notifier:           notifier,
	}
}

// WarmLoad fills the session store from the persistence layer at startup.
func (s *donationService) WarmLoad(ctx context.Context) error {
	items, err := s.donationRepository.ListFoodItems(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		s.store.Put(item)
	}
	return nil
}

func (s *donationService) VerifyImage(ctx context.Context, image *multipart.FileHeader) (domain.VerificationResult, error) {
	if image == nil {
		return domain.VerificationResult{}, domain.ErrMissingFoodImage
	}

	data, mimeType, err := readImage(image)
	if err != nil {
		return domain.VerificationResult{}, err
	}

	return s.verifier.VerifyFoodImage(ctx, data, mimeType)
}

// SubmitDonation runs the four-stage submission: preprocess, upload, persist,
// broadcast. Stages are entered strictly in order; a persistence failure
// deletes the uploaded object and leaves no referencable record, so the
// caller can retry from the start.
func (s *donationService) SubmitDonation(ctx context.Context, req domain.SubmitDonationRequest, donorID string, tracker *ProgressTracker) (domain.FoodItem, error) {
	if req.Image == nil {
		return domain.FoodItem{}, domain.ErrMissingFoodImage
	}

	donor, err := s.userRepository.GetUserByID(ctx, donorID)
	if err != nil {
		return domain.FoodItem{}, err
	}

	data, mimeType, err := readImage(req.Image)
	if err != nil {
		return domain.FoodItem{}, err
	}
	if !storage.IsAllowedContentType(mimeType, storage.AllowImage...) {
		return domain.FoodItem{}, domain.ErrInvalidImageFormat
	}
	tracker.enter(StagePreprocess)

	fileName := fmt.Sprintf("donation-%s", uuid.New().String())
	objectKey, err := s.s3.UploadBytes(fileName, data, mimeType, "donations")
	if err != nil {
		return domain.FoodItem{}, err
	}
	tracker.enter(StageUpload)

	draft := domain.FoodItem{
		Name:      req.Name,
		Category:  req.Category,
		Quantity:  req.Quantity,
		Expiry:    req.Expiry,
		Status:    domain.StatusAvailable,
		DonorName: donor.Name,
		Image:     s.s3.GetPublicLinkKey(objectKey),
	}

	id, err := s.donationRepository.CreateFoodItem(ctx, draft, donorID)
	if err != nil {
		_ = s.s3.DeleteFile(objectKey)
		return domain.FoodItem{}, err
	}

	created, err := s.donationRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		// The record exists; fall back to the draft with the assigned id.
		created = draft
		created.ID = id
		created.Timestamp = time.Now()
	}
	s.store.Put(created)
	tracker.enter(StagePersist)

	s.notifier.Dispatch(
		"NGO Alert: New Food Available!",
		fmt.Sprintf("%s of %s listed nearby.", created.Quantity, created.Name),
	)
	s.sendNGOAlertMail(created)
	tracker.enter(StageBroadcast)

	return created, nil
}

// sendNGOAlertMail is the email leg of the broadcast, best-effort only.
func (s *donationService) sendNGOAlertMail(item domain.FoodItem) {
	alertEmail := utils.GetConfig("NGO_ALERT_EMAIL")
	if alertEmail == "" {
		return
	}
	go func() {
		body := fmt.Sprintf(
			"<p>New donation listed: %s (%s) from %s. Open the dashboard to accept the pickup.</p>",
			item.Name, item.Quantity, item.DonorName,
		)
		if err := mailing.SendMail(alertEmail, "New Food Available", body); err != nil {
			log.Printf("failed to send NGO alert mail: %v", err)
		}
	}()
}

func (s *donationService) GetFoodItems(ctx context.Context, bucket string) ([]domain.FoodItem, error) {
	switch bucket {
	case "":
		return s.store.List(), nil
	case domain.BucketAvailable:
		return s.store.ListByStatuses(domain.StatusAvailable, domain.StatusNotified), nil
	case domain.BucketActive:
		return s.store.ListByStatuses(domain.StatusAccepted, domain.StatusOnTheWay, domain.StatusPickedUp), nil
	case domain.BucketDelivered:
		return s.store.ListByStatuses(domain.StatusDelivered), nil
	default:
		return nil, domain.ErrInvalidBucket
	}
}

func (s *donationService) GetFoodItemByID(ctx context.Context, id string) (domain.FoodItem, error) {
	if item, ok := s.store.Get(id); ok {
		return item, nil
	}

	item, err := s.donationRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		return domain.FoodItem{}, err
	}
	s.store.Put(item)
	return item, nil
}

func (s *donationService) GetImpactStats(ctx context.Context) (domain.ImpactStats, error) {
	delivered := s.store.ListByStatuses(domain.StatusDelivered)

	totalKg := impactBaselineKg
	for _, item := range delivered {
		kg := parseLeadingFloat(item.Quantity)
		if kg == 0 {
			kg = defaultItemKg
		}
		totalKg += kg
	}

	return domain.ImpactStats{
		FoodSavedKg: totalKg,
		PeopleFed:   len(delivered)*peopleFedPerDelivery + impactBaselinePeople,
		CO2SavedKg:  math.Round(totalKg*co2PerKgSaved*10) / 10,
	}, nil
}

func readImage(image *multipart.FileHeader) ([]byte, string, error) {
	file, err := image.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", domain.ErrEmptyImage
	}

	return data, detectMimeType(image), nil
}

func detectMimeType(image *multipart.FileHeader) string {
	mimeType := image.Header.Get("Content-Type")
	if mimeType != "" {
		return mimeType
	}

	switch strings.ToLower(filepath.Ext(image.Filename)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// parseLeadingFloat reads the numeric prefix of a free-text quantity such as
// "20 Plates" or "5 Kg"; 0 means no prefix was found.
func parseLeadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			end++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0
	}
	var v float64
	if _, err := fmt.Sscanf(s[:end], "%f", &v); err != nil {
		return 0
	}
	return v
}
