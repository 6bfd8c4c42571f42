package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/thriftwise/thriftwise/internal/application/directory"
	"github.com/thriftwise/thriftwise/internal/infrastructure/persistence/models"
	"github.com/thriftwise/thriftwise/internal/shared/db"
)

// DirectoryRepository reads the identity tables. It never writes.
type DirectoryRepository struct {
	db *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

func (r *DirectoryRepository) ResolveUser(ctx context.Context, id uint) (*directory.UserInfo, error) {
	var m models.UserModel
	if found, err := r.find(ctx, &m, id); err != nil || !found {
		return nil, err
	}
	return &directory.UserInfo{ID: m.ID, PublicID: m.PublicID, Email: m.Email, Name: m.Name}, nil
}

func (r *DirectoryRepository) ResolveMerchant(ctx context.Context, id uint) (*directory.MerchantInfo, error) {
	var m models.MerchantModel
	if found, err := r.find(ctx, &m, id); err != nil || !found {
		return nil, err
	}
	return &directory.MerchantInfo{ID: m.ID, PublicID: m.PublicID, Email: m.Email, BusinessName: m.BusinessName}, nil
}

func (r *DirectoryRepository) ResolveContact(ctx context.Context, id uint) (*directory.ContactInfo, error) {
	var m models.ContactModel
	if found, err := r.find(ctx, &m, id); err != nil || !found {
		return nil, err
	}
	return &directory.ContactInfo{ID: m.ID, MerchantID: m.MerchantID, Email: m.Email, Name: m.Name}, nil
}

func (r *DirectoryRepository) find(ctx context.Context, dest interface{}, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	if err := db.GetTxFromContext(ctx, r.db).First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to resolve directory entry: %w", err)
	}
	return true, nil
}
