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

type ThriftInviteRepository struct {
	db *gorm.DB
}

func NewThriftInviteRepository(db *gorm.DB) *ThriftInviteRepository {
	return &ThriftInviteRepository{db: db}
}

func (r *ThriftInviteRepository) Replace(ctx context.Context, inv *thrift.Invite) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Scopes(db.ForPackage(inv.PackageID())).
		Where("invited_user_id = ?", inv.InvitedUserID()).
		Delete(&models.ThriftInviteModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete previous invite: %w", err)
	}

	model := mappers.InviteToModel(inv)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create invite: %w", err)
	}
	inv.SetID(model.ID)
	return nil
}

func (r *ThriftInviteRepository) GetByID(ctx context.Context, id uint) (*thrift.Invite, error) {
	var model models.ThriftInviteModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}
	return mappers.InviteToDomain(&model)
}

func (r *ThriftInviteRepository) SaveResponse(ctx context.Context, inv *thrift.Invite) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ThriftInviteModel{}).
		Where("id = ? AND status = ?", inv.ID(), vo.ResponseStatusPending.String()).
		Updates(map[string]interface{}{
			"status":       inv.Status().String(),
			"responded_at": inv.RespondedAt(),
			"updated_at":   biztime.NowUTC(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to save invite response: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *ThriftInviteRepository) HasPending(ctx context.Context, packageID, userID uint) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ThriftInviteModel{}).
		Scopes(db.ForPackage(packageID)).
		Where("invited_user_id = ? AND status = ?", userID, vo.ResponseStatusPending.String()).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check pending invite: %w", err)
	}
	return count > 0, nil
}

func (r *ThriftInviteRepository) ListByUser(ctx context.Context, userID uint) ([]*thrift.Invite, error) {
	var ms []models.ThriftInviteModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("invited_user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	return mappers.InvitesToDomain(ms)
}
