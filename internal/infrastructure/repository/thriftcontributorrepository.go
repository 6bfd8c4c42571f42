package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	vo "github.com/thriftwise/thriftwise/internal/domain/thrift/valueobjects"
	"github.com/thriftwise/thriftwise/internal/infrastructure/persistence/mappers"
	"github.com/thriftwise/thriftwise/internal/infrastructure/persistence/models"
	"github.com/thriftwise/thriftwise/internal/shared/biztime"
	"github.com/thriftwise/thriftwise/internal/shared/db"
)

type ThriftContributorRepository struct {
	db *gorm.DB
}

func NewThriftContributorRepository(db *gorm.DB) *ThriftContributorRepository {
	return &ThriftContributorRepository{db: db}
}

// FindOrCreate relies on the (package, participant) unique index so concurrent admissions
// of the same participant collapse into one row.
func (r *ThriftContributorRepository) FindOrCreate(ctx context.Context, c *thrift.Contributor) (*thrift.Contributor, bool, error) {
	model := mappers.ContributorToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "thrift_package_id"},
			{Name: "participant_type"},
			{Name: "participant_id"},
		},
		DoNothing: true,
	}).Create(model)
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to create contributor: %w", result.Error)
	}
	if result.RowsAffected == 1 {
		c.SetID(model.ID)
		return c, true, nil
	}

	stored, err := r.GetByParticipant(ctx, c.PackageID(), c.Participant())
	if err != nil {
		return nil, false, err
	}
	if stored == nil {
		return nil, false, fmt.Errorf("contributor %s vanished after conflicting insert", c.Participant())
	}
	return stored, false, nil
}

func (r *ThriftContributorRepository) GetByParticipant(ctx context.Context, packageID uint, participant party.Ref) (*thrift.Contributor, error) {
	var model models.ThriftContributorModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ForPackage(packageID)).
		Where("participant_type = ? AND participant_id = ?", participant.Kind.String(), participant.ID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contributor: %w", err)
	}
	return mappers.ContributorToDomain(&model)
}

func (r *ThriftContributorRepository) ListByPackage(ctx context.Context, packageID uint) ([]*thrift.Contributor, error) {
	var ms []models.ThriftContributorModel
	if err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ForPackage(packageID), db.Oldest()).
		Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list contributors: %w", err)
	}
	return mappers.ContributorsToDomain(ms)
}

func (r *ThriftContributorRepository) ListConfirmed(ctx context.Context, packageID uint) ([]*thrift.Contributor, error) {
	var ms []models.ThriftContributorModel
	if err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ForPackage(packageID), db.Oldest()).
		Where("status = ?", vo.ContributorStatusConfirmed.String()).
		Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list confirmed contributors: %w", err)
	}
	return mappers.ContributorsToDomain(ms)
}

func (r *ThriftContributorRepository) TransitionPending(ctx context.Context, packageID uint, ids []uint, status vo.ContributorStatus) (int64, error) {
	if ids != nil && len(ids) == 0 {
		return 0, nil
	}

	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.ThriftContributorModel{}).
		Scopes(db.ForPackage(packageID)).
		Where("status = ?", vo.ContributorStatusPending.String())
	if ids != nil {
		query = query.Where("id IN ?", ids)
	}

	result := query.Updates(map[string]interface{}{
		"status":     status.String(),
		"updated_at": biztime.NowUTC(),
	})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update contributor status: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteByParticipant removes the participant's contributor row together with any slot
// allocated to it.
func (r *ThriftContributorRepository) DeleteByParticipant(ctx context.Context, packageID uint, participant party.Ref) error {
	var ids []uint
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ThriftContributorModel{}).
		Scopes(db.ForPackage(packageID)).
		Where("participant_type = ? AND participant_id = ?", participant.Kind.String(), participant.ID).
		Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("failed to find contributor: %w", err)
	}
	if _, err := r.deleteWithSlots(ctx, packageID, ids); err != nil {
		return err
	}
	return nil
}

// DeleteExcept removes every contributor whose participant is not in keep, along with the
// slots allocated to them.
func (r *ThriftContributorRepository) DeleteExcept(ctx context.Context, packageID uint, keep []party.Ref) (int64, error) {
	current, err := r.ListByPackage(ctx, packageID)
	if err != nil {
		return 0, err
	}

	kept := make(map[party.Ref]struct{}, len(keep))
	for _, ref := range keep {
		kept[ref] = struct{}{}
	}
	var drop []uint
	for _, c := range current {
		if _, ok := kept[c.Participant()]; !ok {
			drop = append(drop, c.ID())
		}
	}
	return r.deleteWithSlots(ctx, packageID, drop)
}

// deleteWithSlots deletes the given contributors and their slots in one transaction. A slot
// never outlives the contributor it is bound to.
func (r *ThriftContributorRepository) deleteWithSlots(ctx context.Context, packageID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var removed int64
	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(db.ForPackage(packageID)).
			Where("contributor_id IN ?", ids).
			Delete(&models.ThriftSlotModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete contributor slots: %w", err)
		}

		result := tx.Scopes(db.ForPackage(packageID)).
			Where("id IN ?", ids).
			Delete(&models.ThriftContributorModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete contributors: %w", result.Error)
		}
		removed = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
