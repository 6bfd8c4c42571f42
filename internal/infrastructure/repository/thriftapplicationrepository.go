package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	vo "github.com/thriftwise/thriftwise/internal/domain/thrift/valueobjects"
	"github.com/thriftwise/thriftwise/internal/infrastructure/persistence/mappers"
	"github.com/thriftwise/thriftwise/internal/infrastructure/persistence/models"
	"github.com/thriftwise/thriftwise/internal/shared/biztime"
	"github.com/thriftwise/thriftwise/internal/shared/db"
)

type ThriftApplicationRepository struct {
	db *gorm.DB
}

func NewThriftApplicationRepository(db *gorm.DB) *ThriftApplicationRepository {
	return &ThriftApplicationRepository{db: db}
}

func (r *ThriftApplicationRepository) Create(ctx context.Context, app *thrift.Application) error {
	model := mappers.ApplicationToModel(app)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	app.SetID(model.ID)
	return nil
}

func (r *ThriftApplicationRepository) GetByID(ctx context.Context, id uint) (*thrift.Application, error) {
	var model models.ThriftApplicationModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return mappers.ApplicationToDomain(&model)
}

func (r *ThriftApplicationRepository) SaveResponse(ctx context.Context, app *thrift.Application) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ThriftApplicationModel{}).
		Where("id = ? AND status = ?", app.ID(), vo.ResponseStatusPending.String()).
		Updates(map[string]interface{}{
			"status":       app.Status().String(),
			"responded_at": app.RespondedAt(),
			"updated_at":   biztime.NowUTC(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to save application response: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *ThriftApplicationRepository) HasPending(ctx context.Context, packageID, userID uint) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ThriftApplicationModel{}).
		Scopes(db.ForPackage(packageID)).
		Where("user_id = ? AND status = ?", userID, vo.ResponseStatusPending.String()).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check pending application: %w", err)
	}
	return count > 0, nil
}

func (r *ThriftApplicationRepository) ListByPackage(ctx context.Context, packageID uint) ([]*thrift.Application, error) {
	var ms []models.ThriftApplicationModel
	if err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ForPackage(packageID), db.Oldest()).
		Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return mappers.ApplicationsToDomain(ms)
}

func (r *ThriftApplicationRepository) ListByUser(ctx context.Context, userID uint) ([]*thrift.Application, error) {
	var ms []models.ThriftApplicationModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return mappers.ApplicationsToDomain(ms)
}
