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
	"github.com/thriftwise/thriftwise/internal/shared/db"
	apperrors "github.com/thriftwise/thriftwise/internal/shared/errors"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

type ThriftPackageRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewThriftPackageRepository(db *gorm.DB, logger logger.Interface) *ThriftPackageRepository {
	return &ThriftPackageRepository{db: db, logger: logger}
}

func (r *ThriftPackageRepository) Create(ctx context.Context, pkg *thrift.Package) error {
	model := mappers.ThriftPackageToModel(pkg)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("a package with this name already exists", pkg.Name()).
				WithReason(apperrors.ReasonDuplicateName)
		}
		r.logger.Errorw("failed to create thrift package", "name", pkg.Name(), "error", err)
		return fmt.Errorf("failed to create thrift package: %w", err)
	}

	pkg.SetID(model.ID)
	return nil
}

func (r *ThriftPackageRepository) Update(ctx context.Context, pkg *thrift.Package) error {
	model := mappers.ThriftPackageToModel(pkg)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ThriftPackageModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":           model.Name,
			"total_amount":   model.TotalAmount,
			"duration_days":  model.DurationDays,
			"slot_count":     model.SlotCount,
			"terms_text":     model.TermsText,
			"terms_accepted": model.TermsAccepted,
			"visibility":     model.Visibility,
			"status":         model.Status,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		if apperrors.IsDuplicateError(result.Error) {
			return apperrors.NewConflictError("a package with this name already exists", pkg.Name()).
				WithReason(apperrors.ReasonDuplicateName)
		}
		return fmt.Errorf("failed to update thrift package: %w", result.Error)
	}
	return nil
}

func (r *ThriftPackageRepository) GetByID(ctx context.Context, id uint) (*thrift.Package, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ThriftPackageRepository) GetBySID(ctx context.Context, sid string) (*thrift.Package, error) {
	return r.first(ctx, "sid = ?", sid)
}

func (r *ThriftPackageRepository) LockForUpdate(ctx context.Context, id uint) error {
	var model models.ThriftPackageModel
	if err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", id).
		Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFoundError("thrift package not found")
		}
		return fmt.Errorf("failed to lock package: %w", err)
	}
	return nil
}

func (r *ThriftPackageRepository) first(ctx context.Context, query string, arg interface{}) (*thrift.Package, error) {
	var model models.ThriftPackageModel
	if err := db.GetTxFromContext(ctx, r.db).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get thrift package: %w", err)
	}
	return mappers.ThriftPackageToDomain(&model)
}

func (r *ThriftPackageRepository) ExistsByCreatorAndName(ctx context.Context, creator party.Ref, name string, excludeID uint) (bool, error) {
	var count int64
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.ThriftPackageModel{}).
		Where("creator_type = ? AND creator_id = ? AND name = ?", creator.Kind.String(), creator.ID, name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check package name: %w", err)
	}
	return count > 0, nil
}

func (r *ThriftPackageRepository) ListForPrincipal(ctx context.Context, principal party.Ref, page, pageSize int) ([]*thrift.Package, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var administered *gorm.DB
	switch principal.Kind {
	case party.KindUser:
		administered = tx.Model(&models.ThriftAdminModel{}).Select("thrift_package_id").Where("user_id = ?", principal.ID)
	case party.KindMerchant:
		administered = tx.Model(&models.ThriftMerchantAdminModel{}).Select("thrift_package_id").Where("merchant_id = ?", principal.ID)
	default:
		return []*thrift.Package{}, 0, nil
	}

	query := tx.Model(&models.ThriftPackageModel{}).
		Where("(creator_type = ? AND creator_id = ?) OR id IN (?)", principal.Kind.String(), principal.ID, administered)
	return r.list(query, page, pageSize)
}

func (r *ThriftPackageRepository) ListPublic(ctx context.Context, page, pageSize int) ([]*thrift.Package, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.ThriftPackageModel{}).
		Where("visibility = ?", vo.VisibilityPublic.String())
	return r.list(query, page, pageSize)
}

func (r *ThriftPackageRepository) list(query *gorm.DB, page, pageSize int) ([]*thrift.Package, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count thrift packages: %w", err)
	}

	var ms []models.ThriftPackageModel
	if err := query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}).
		Order("id DESC").
		Scopes(db.Paginate(page, pageSize)).
		Find(&ms).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list thrift packages: %w", err)
	}

	pkgs, err := mappers.ThriftPackagesToDomain(ms)
	if err != nil {
		return nil, 0, err
	}
	return pkgs, total, nil
}

func (r *ThriftPackageRepository) ListRejectedForUser(ctx context.Context, userID uint) ([]*thrift.Package, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	rejected := vo.ResponseStatusRejected.String()

	invites := tx.Model(&models.ThriftInviteModel{}).Select("thrift_package_id").
		Where("invited_user_id = ? AND status = ?", userID, rejected)
	applications := tx.Model(&models.ThriftApplicationModel{}).Select("thrift_package_id").
		Where("user_id = ? AND status = ?", userID, rejected)

	var ms []models.ThriftPackageModel
	if err := tx.Where("id IN (?) OR id IN (?)", invites, applications).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rejected packages: %w", err)
	}
	return mappers.ThriftPackagesToDomain(ms)
}

type ThriftAdminRepository struct {
	db *gorm.DB
}

func NewThriftAdminRepository(db *gorm.DB) *ThriftAdminRepository {
	return &ThriftAdminRepository{db: db}
}

// Add inserts the association unless it exists. Users go to thrift_admins, merchants to
// thrift_merchant_admins.
func (r *ThriftAdminRepository) Add(ctx context.Context, packageID uint, admin party.Ref) error {
	var row interface{}
	switch admin.Kind {
	case party.KindUser:
		row = &models.ThriftAdminModel{ThriftPackageID: packageID, UserID: admin.ID}
	case party.KindMerchant:
		row = &models.ThriftMerchantAdminModel{ThriftPackageID: packageID, MerchantID: admin.ID}
	default:
		return apperrors.NewValidationError("only users and merchants can be package admins")
	}

	if err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error; err != nil {
		return fmt.Errorf("failed to add package admin: %w", err)
	}
	return nil
}

func (r *ThriftAdminRepository) IsAdmin(ctx context.Context, packageID uint, principal party.Ref) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	var err error
	switch principal.Kind {
	case party.KindUser:
		err = tx.Model(&models.ThriftAdminModel{}).
			Where("thrift_package_id = ? AND user_id = ?", packageID, principal.ID).
			Count(&count).Error
	case party.KindMerchant:
		err = tx.Model(&models.ThriftMerchantAdminModel{}).
			Where("thrift_package_id = ? AND merchant_id = ?", packageID, principal.ID).
			Count(&count).Error
	default:
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check package admin: %w", err)
	}
	return count > 0, nil
}

// List returns user admins first, then merchant admins, each in the order they were added.
func (r *ThriftAdminRepository) List(ctx context.Context, packageID uint) ([]party.Ref, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var users []models.ThriftAdminModel
	if err := tx.Where("thrift_package_id = ?", packageID).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list package admins: %w", err)
	}
	var merchants []models.ThriftMerchantAdminModel
	if err := tx.Where("thrift_package_id = ?", packageID).Order("created_at ASC").Find(&merchants).Error; err != nil {
		return nil, fmt.Errorf("failed to list package merchant admins: %w", err)
	}

	out := make([]party.Ref, 0, len(users)+len(merchants))
	for _, u := range users {
		out = append(out, party.User(u.UserID))
	}
	for _, m := range merchants {
		out = append(out, party.Merchant(m.MerchantID))
	}
	return out, nil
}
