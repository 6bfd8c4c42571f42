package thrift

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thriftwise/thriftwise/internal/application/thrift/usecases"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/interfaces/http/handlers/common"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
	"github.com/thriftwise/thriftwise/internal/shared/utils"
)

// PackageHandler serves the package registry and slot endpoints.
type PackageHandler struct {
	uc     PackageUseCases
	logger logger.Interface
}

func NewPackageHandler(uc PackageUseCases, log logger.Interface) *PackageHandler {
	if log == nil {
		log = logger.NewLogger()
	}
	return &PackageHandler{uc: uc, logger: log}
}

// CreatePackage handles POST /thrift-packages
func (h *PackageHandler) CreatePackage(c *gin.Context) {
	principal, err := common.GetPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create package", "error", err)
		utils.ErrorResponseWithError(c, common.BindError(err))
		return
	}

	result, err := h.uc.Create.Execute(c.Request.Context(), req.ToCommand(principal))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Package created successfully")
}

// SaveProgress handles POST /thrift-packages/progress and PUT /thrift-packages/:id/progress
func (h *PackageHandler) SaveProgress(c *gin.Context) {
	principal, err := common.GetPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var packageID uint
	if c.Param("id") != "" {
		if packageID, err = common.ParseIDParam(c, "id"); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	var req SaveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for save progress", "error", err)
		utils.ErrorResponseWithError(c, common.BindError(err))
		return
	}

	cmd, err := req.ToCommand(principal, packageID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.SaveProgress.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	body := gin.H{
		"package":      result.Package,
		"is_new":       result.IsNew,
		"contributors": result.Contributors,
		"rejected":     result.Rejected,
		"partial":      len(result.Rejected) > 0,
	}
	switch {
	case len(result.Rejected) > 0:
		utils.PartialResponse(c, body, "Progress saved with rejected contributors")
	case result.IsNew:
		utils.CreatedResponse(c, body, "Package created successfully")
	default:
		utils.SuccessResponse(c, http.StatusOK, "Progress saved", body)
	}
}

// GetPackage handles GET /thrift-packages/:id
func (h *PackageHandler) GetPackage(c *gin.Context) {
	principal, packageID, ok := principalAndPackage(c)
	if !ok {
		return
	}

	result, err := h.uc.Get.Execute(c.Request.Context(), usecases.GetPackageQuery{
		Principal: principal,
		PackageID: packageID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetPublicPackage handles GET /thrift-packages/public/:sid
func (h *PackageHandler) GetPublicPackage(c *gin.Context) {
	result, err := h.uc.GetPublic.Execute(c.Request.Context(), c.Param("sid"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListPackages handles GET /thrift-packages
func (h *PackageHandler) ListPackages(c *gin.Context) {
	principal, err := common.GetPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	h.list(c, h.uc.List, principal)
}

// ListPublicPackages handles GET /thrift-packages/public
func (h *PackageHandler) ListPublicPackages(c *gin.Context) {
	h.list(c, h.uc.ListPublic, party.Ref{})
}

func (h *PackageHandler) list(c *gin.Context, uc listPackagesUseCase, principal party.Ref) {
	page, pageSize := common.ParsePagination(c)

	result, err := uc.Execute(c.Request.Context(), usecases.ListPackagesQuery{
		Principal: principal,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListRejectedPackages handles GET /users/me/rejected-packages
func (h *PackageHandler) ListRejectedPackages(c *gin.Context) {
	principal, err := common.GetPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.ListRejected.Execute(c.Request.Context(), principal)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateStatus handles PATCH /thrift-packages/:id/status
func (h *PackageHandler) UpdateStatus(c *gin.Context) {
	principal, packageID, ok := principalAndPackage(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, common.BindError(err))
		return
	}

	result, err := h.uc.UpdateStatus.Execute(c.Request.Context(), usecases.UpdatePackageStatusCommand{
		Principal: principal,
		PackageID: packageID,
		Status:    req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Package status updated", result)
}

// AcceptTerms handles POST /thrift-packages/:id/terms
func (h *PackageHandler) AcceptTerms(c *gin.Context) {
	principal, packageID, ok := principalAndPackage(c)
	if !ok {
		return
	}

	var req AcceptTermsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, common.BindError(err))
		return
	}

	result, err := h.uc.AcceptTerms.Execute(c.Request.Context(), usecases.AcceptTermsCommand{
		Principal: principal,
		PackageID: packageID,
		Accepted:  *req.Accepted,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Terms updated", result)
}

// AddAdmin handles POST /thrift-packages/:id/admins
func (h *PackageHandler) AddAdmin(c *gin.Context) {
	principal, packageID, ok := principalAndPackage(c)
	if !ok {
		return
	}

	var req AddAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, common.BindError(err))
		return
	}
	admin, err := party.Parse(req.Admin)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid admin reference", err.Error()))
		return
	}

	result, err := h.uc.AddAdmin.Execute(c.Request.Context(), usecases.AddAdminCommand{
		Principal: principal,
		PackageID: packageID,
		Admin:     admin,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Admin added", result)
}

// GenerateSlots handles POST /thrift-packages/:id/slots
func (h *PackageHandler) GenerateSlots(c *gin.Context) {
	principal, packageID, ok := principalAndPackage(c)
	if !ok {
		return
	}

	result, err := h.uc.GenerateSlots.Execute(c.Request.Context(), usecases.GenerateSlotsCommand{
		Principal: principal,
		PackageID: packageID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Slots generated", result)
}

// principalAndPackage writes the error response itself and reports ok=false on failure.
func principalAndPackage(c *gin.Context) (party.Ref, uint, bool) {
	principal, err := common.GetPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return party.Ref{}, 0, false
	}
	packageID, err := common.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return party.Ref{}, 0, false
	}
	return principal, packageID, true
}
