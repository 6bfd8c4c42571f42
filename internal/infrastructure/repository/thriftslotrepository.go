package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	"github.com/thriftwise/thriftwise/internal/infrastructure/persistence/mappers"
	"github.com/thriftwise/thriftwise/internal/infrastructure/persistence/models"
	"github.com/thriftwise/thriftwise/internal/shared/db"
)

type ThriftSlotRepository struct {
	db *gorm.DB
}

func NewThriftSlotRepository(db *gorm.DB) *ThriftSlotRepository {
	return &ThriftSlotRepository{db: db}
}

// ReplaceAll must run inside the caller's transaction so readers never see a half-built
// rotation.
func (r *ThriftSlotRepository) ReplaceAll(ctx context.Context, packageID uint, slots []*thrift.Slot) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Scopes(db.ForPackage(packageID)).Delete(&models.ThriftSlotModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete slots: %w", err)
	}
	if len(slots) == 0 {
		return nil
	}

	ms := make([]*models.ThriftSlotModel, len(slots))
	for i, s := range slots {
		ms[i] = mappers.SlotToModel(s)
	}
	if err := tx.Create(&ms).Error; err != nil {
		return fmt.Errorf("failed to create slots: %w", err)
	}
	for i, m := range ms {
		slots[i].SetID(m.ID)
	}
	return nil
}

func (r *ThriftSlotRepository) ListByPackage(ctx context.Context, packageID uint) ([]*thrift.Slot, error) {
	var ms []models.ThriftSlotModel
	if err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ForPackage(packageID)).
		Order("slot_no ASC").
		Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return mappers.SlotsToDomain(ms), nil
}
