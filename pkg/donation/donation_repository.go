package donation

import (
	"context"
	"errors"

	"EcoFeast-Backend/domain"
	"EcoFeast-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// DonationRepository is the cloud persistence port for donation records.
	// IDs are opaque to callers and assigned by the store on creation.
	DonationRepository interface {
		CreateFoodItem(ctx context.Context, item domain.FoodItem, donorID string) (string, error)
		GetFoodItemByID(ctx context.Context, id string) (domain.FoodItem, error)
		UpdateFoodStatus(ctx context.Context, id string, status domain.FoodStatus, ngoID string) error
		ListFoodItems(ctx context.Context) ([]domain.FoodItem, error)
	}

	donationRepository struct {
		db *gorm.DB
	}
)

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func toDomain(e *entities.FoodItem) domain.FoodItem {
	return domain.FoodItem{
		ID:        e.ID.String(),
		Name:      e.Name,
		Category:  e.Category,
		Quantity:  e.Quantity,
		Expiry:    e.Expiry,
		Status:    domain.FoodStatus(e.Status),
		DonorName: e.DonorName,
		Image:     e.ImageURL,
		Timestamp: e.CreatedAt,
	}
}

func (r *donationRepository) CreateFoodItem(ctx context.Context, item domain.FoodItem, donorID string) (string, error) {
	donorUUID, err := uuid.Parse(donorID)
	if err != nil {
		return "", domain.ErrParseUUID
	}

	entity := &entities.FoodItem{
		ID:        uuid.New(),
		DonorID:   &donorUUID,
		Name:      item.Name,
		Category:  item.Category,
		Quantity:  item.Quantity,
		Expiry:    item.Expiry,
		Status:    string(item.Status),
		DonorName: item.DonorName,
		ImageURL:  item.Image,
	}

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return "", err
	}

	return entity.ID.String(), nil
}

func (r *donationRepository) GetFoodItemByID(ctx context.Context, id string) (domain.FoodItem, error) {
	var entity entities.FoodItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FoodItem{}, domain.ErrFoodItemNotFound
		}
		return domain.FoodItem{}, err
	}
	return toDomain(&entity), nil
}

func (r *donationRepository) UpdateFoodStatus(ctx context.Context, id string, status domain.FoodStatus, ngoID string) error {
	updates := map[string]interface{}{
		"status": string(status),
	}

	if ngoID != "" {
		ngoUUID, err := uuid.Parse(ngoID)
		if err != nil {
			return domain.ErrParseUUID
		}
		updates["ngo_id"] = ngoUUID
	}

	result := r.db.WithContext(ctx).
		Model(&entities.FoodItem{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrFoodItemNotFound
	}
	return nil
}

func (r *donationRepository) ListFoodItems(ctx context.Context) ([]domain.FoodItem, error) {
	var items []*entities.FoodItem
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	out := make([]domain.FoodItem, 0, len(items))
	for _, item := range items {
		out = append(out, toDomain(item))
	}
	return out, nil
}
