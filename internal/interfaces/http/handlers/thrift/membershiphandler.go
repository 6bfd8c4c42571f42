package thrift

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thriftwise/thriftwise/internal/application/thrift/usecases"
	"github.com/thriftwise/thriftwise/internal/interfaces/http/handlers/common"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
	"github.com/thriftwise/thriftwise/internal/shared/utils"
)

// MembershipHandler serves contributor, invite and application endpoints.
type MembershipHandler struct {
	uc     MembershipUseCases
	logger logger.Interface
}

func NewMembershipHandler(uc MembershipUseCases, log logger.Interface) *MembershipHandler {
	if log == nil {
		log = logger.NewLogger()
	}
	return &MembershipHandler{uc: uc, logger: log}
}

// AddContributors handles POST /thrift-packages/:id/contributors
func (h *MembershipHandler) AddContributors(c *gin.Context) {
	principal, packageID, ok := principalAndPackage(c)
	if !ok {
		return
	}

	var req AddContributorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add contributors", "error", err)
		utils.ErrorResponseWithError(c, common.BindError(err))
		return
	}
	refs, err := common.ParseRefs(req.Contributors)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.AddContributors.Execute(c.Request.Context(), usecases.AddContributorsCommand{
		Principal:    principal,
		PackageID:    packageID,
		Participants: refs,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	body := gin.H{
		"contributors": result.Contributors,
		"rejected":     result.Rejected,
		"partial":      len(result.Rejected) > 0,
	}
	if len(result.Rejected) > 0 {
		utils.PartialResponse(c, body, "Some contributors could not be added")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Contributors added", body)
}

// ConfirmContributors handles POST /thrift-packages/:id/contributors/confirm
func (h *MembershipHandler) ConfirmContributors(c *gin.Context) {
	h.resolve(c, h.uc.ConfirmContributors, "confirmed")
}

// RejectContributors handles POST /thrift-packages/:id/contributors/reject
func (h *MembershipHandler) RejectContributors(c *gin.Context) {
	h.resolve(c, h.uc.RejectContributors, "rejected")
}

func (h *MembershipHandler) resolve(c *gin.Context, uc resolveContributorsUseCase, verb string) {
	principal, packageID, ok := principalAndPackage(c)
	if !ok {
		return
	}

	var req ResolveContributorsRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponseWithError(c, common.BindError(err))
			return
		}
	}

	count, err := uc.Execute(c.Request.Context(), usecases.ResolveContributorsCommand{
		Principal:      principal,
		PackageID:      packageID,
		ContributorIDs: req.ContributorIDs,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Contributors "+verb, gin.H{"count": count})
}

// ListContributors handles GET /thrift-packages/:id/contributors
func (h *MembershipHandler) ListContributors(c *gin.Context) {
	principal, packageID, ok := principalAndPackage(c)
	if !ok {
		return
	}

	result, err := h.uc.ListContributors.Execute(c.Request.Context(), usecases.PackageMembersQuery{
		Principal: principal,
		PackageID: packageID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListApplications handles GET /thrift-packages/:id/applications
func (h *MembershipHandler) ListApplications(c *gin.Context) {
	principal, packageID, ok := principalAndPackage(c)
	if !ok {
		return
	}

	result, err := h.uc.ListApplications.Execute(c.Request.Context(), usecases.PackageMembersQuery{
		Principal: principal,
		PackageID: packageID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// InviteUser handles POST /thrift-packages/:id/invites
func (h *MembershipHandler) InviteUser(c *gin.Context) {
	principal, packageID, ok := principalAndPackage(c)
	if !ok {
		return
	}

	var req InviteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, common.BindError(err))
		return
	}

	result, err := h.uc.InviteUser.Execute(c.Request.Context(), usecases.InviteUserCommand{
		Principal: principal,
		PackageID: packageID,
		UserID:    req.UserID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Invite sent")
}

// RespondToInvite handles POST /thrift-invites/:id/respond
func (h *MembershipHandler) RespondToInvite(c *gin.Context) {
	principal, err := common.GetPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	inviteID, err := common.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, common.BindError(err))
		return
	}

	result, err := h.uc.RespondToInvite.Execute(c.Request.Context(), usecases.RespondToInviteCommand{
		Principal: principal,
		InviteID:  inviteID,
		Accept:    *req.Accept,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invite "+result.Status, result)
}

// ListUserInvites handles GET /users/me/invites
func (h *MembershipHandler) ListUserInvites(c *gin.Context) {
	principal, err := common.GetPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.ListUserInvites.Execute(c.Request.Context(), principal)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Apply handles POST /thrift-packages/:id/applications
func (h *MembershipHandler) Apply(c *gin.Context) {
	principal, packageID, ok := principalAndPackage(c)
	if !ok {
		return
	}

	result, err := h.uc.Apply.Execute(c.Request.Context(), usecases.ApplyToPackageCommand{
		Principal: principal,
		PackageID: packageID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Application submitted")
}

// RespondToApplication handles POST /thrift-applications/:id/respond
func (h *MembershipHandler) RespondToApplication(c *gin.Context) {
	principal, err := common.GetPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	applicationID, err := common.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, common.BindError(err))
		return
	}

	result, err := h.uc.RespondToApplication.Execute(c.Request.Context(), usecases.RespondToApplicationCommand{
		Principal:     principal,
		ApplicationID: applicationID,
		Accept:        *req.Accept,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Application "+result.Status, result)
}

// ListUserApplications handles GET /users/me/applications
func (h *MembershipHandler) ListUserApplications(c *gin.Context) {
	principal, err := common.GetPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.ListUserApplications.Execute(c.Request.Context(), principal)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
