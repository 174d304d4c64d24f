package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"storefront-service/internal/models"
)

const StoreCacheTTL = 10 * time.Minute

type StoresRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewStoresRepository(db *gorm.DB, redisClient *redis.Client) *StoresRepository {
	return &StoresRepository{db: db, redis: redisClient}
}

func (r *StoresRepository) storeCacheKey(tenantID string, storeID uuid.UUID) string {
	return fmt.Sprintf("store:%s:%s", tenantID, storeID.String())
}

func (r *StoresRepository) invalidateStoreCache(ctx context.Context, tenantID string, storeID uuid.UUID) {
	if r.redis == nil {
		return
	}
	r.redis.Del(ctx, r.storeCacheKey(tenantID, storeID))
}

// CreateStore creates a store
func (r *StoresRepository) CreateStore(tenantID string, store *models.Store) error {
	store.TenantID = tenantID
	store.CreatedAt = time.Now()
	store.UpdatedAt = time.Now()
	return r.db.Create(store).Error
}

// GetStoreByID retrieves a store with caching
func (r *StoresRepository) GetStoreByID(tenantID string, storeID uuid.UUID) (*models.Store, error) {
	ctx := context.Background()
	cacheKey := r.storeCacheKey(tenantID, storeID)

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var store models.Store
			if err := json.Unmarshal([]byte(val), &store); err == nil {
				return &store, nil
			}
		}
	}

	var store models.Store
	if err := r.db.Where("tenant_id = ? AND id = ?", tenantID, storeID).First(&store).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(store); err == nil {
			r.redis.Set(ctx, cacheKey, data, StoreCacheTTL)
		}
	}

	return &store, nil
}

// GetStores lists stores for a tenant with pagination
func (r *StoresRepository) GetStores(tenantID string, page, limit int) ([]models.Store, int64, error) {
	var stores []models.Store
	var total int64

	query := r.db.Model(&models.Store{}).Where("tenant_id = ?", tenantID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&stores).Error; err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}

// UpdateStore updates a store
func (r *StoresRepository) UpdateStore(tenantID string, storeID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.Store{}).
		Where("tenant_id = ? AND id = ?", tenantID, storeID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.invalidateStoreCache(context.Background(), tenantID, storeID)
	return nil
}

// DeleteStore soft deletes a store
func (r *StoresRepository) DeleteStore(tenantID string, storeID uuid.UUID) error {
	result := r.db.Where("tenant_id = ? AND id = ?", tenantID, storeID).Delete(&models.Store{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.invalidateStoreCache(context.Background(), tenantID, storeID)
	return nil
}

// Store user operations

// CreateStoreUser adds a user to a store
func (r *StoresRepository) CreateStoreUser(tenantID string, user *models.StoreUser) error {
	user.TenantID = tenantID
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return r.db.Create(user).Error
}

// GetStoreUserByID retrieves a store user
func (r *StoresRepository) GetStoreUserByID(tenantID string, userID uuid.UUID) (*models.StoreUser, error) {
	var user models.StoreUser
	if err := r.db.Where("tenant_id = ? AND id = ?", tenantID, userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetStoreUserByEmail retrieves a store user by email for authentication
func (r *StoresRepository) GetStoreUserByEmail(tenantID, email string) (*models.StoreUser, error) {
	var user models.StoreUser
	if err := r.db.Where("tenant_id = ? AND email = ? AND active = ?", tenantID, email, true).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetStoreUsers lists users of a store
func (r *StoresRepository) GetStoreUsers(tenantID string, storeID uuid.UUID) ([]models.StoreUser, error) {
	var users []models.StoreUser
	err := r.db.Where("tenant_id = ? AND store_id = ?", tenantID, storeID).
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}

// GetStoreContacts returns the phone-resolution projection of a store's
// users, creators first, in creation order within each group.
func (r *StoresRepository) GetStoreContacts(tenantID string, storeID uuid.UUID) ([]models.StoreContact, error) {
	var users []models.StoreUser
	err := r.db.Where("tenant_id = ? AND store_id = ? AND active = ?", tenantID, storeID, true).
		Order("is_creator DESC, created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	contacts := make([]models.StoreContact, 0, len(users))
	for _, u := range users {
		phone := ""
		if u.PhoneNumber != nil {
			phone = *u.PhoneNumber
		}
		contacts = append(contacts, models.StoreContact{
			UserID:      u.ID,
			PhoneNumber: phone,
			IsCreator:   u.IsCreator,
		})
	}
	return contacts, nil
}

// UpdateStoreUser updates a store user
func (r *StoresRepository) UpdateStoreUser(tenantID string, userID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.StoreUser{}).
		Where("tenant_id = ? AND id = ?", tenantID, userID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RecordLogin stamps the last successful login
func (r *StoresRepository) RecordLogin(tenantID string, userID uuid.UUID) error {
	return r.db.Model(&models.StoreUser{}).
		Where("tenant_id = ? AND id = ?", tenantID, userID).
		Update("last_login_at", time.Now()).Error
}

// DeleteStoreUser soft deletes a store user
func (r *StoresRepository) DeleteStoreUser(tenantID string, userID uuid.UUID) error {
	result := r.db.Where("tenant_id = ? AND id = ?", tenantID, userID).Delete(&models.StoreUser{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
