package wallet

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thriftwise/thriftwise/internal/application/wallet/usecases"
	"github.com/thriftwise/thriftwise/internal/interfaces/http/handlers/common"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
	"github.com/thriftwise/thriftwise/internal/shared/utils"
)

type Handler struct {
	initializeUC      initializeContributionUseCase
	verifyUC          verifyContributionUseCase
	payoutUC          payoutUseCase
	listWalletUC      listTransactionsUseCase
	listPackageUC     listTransactionsUseCase
	showTransactionUC showTransactionUseCase
	logger            logger.Interface
}

func NewHandler(
	initializeUC initializeContributionUseCase,
	verifyUC verifyContributionUseCase,
	payoutUC payoutUseCase,
	listWalletUC listTransactionsUseCase,
	listPackageUC listTransactionsUseCase,
	showTransactionUC showTransactionUseCase,
	log logger.Interface,
) *Handler {
	if log == nil {
		log = logger.NewLogger()
	}
	return &Handler{
		initializeUC:      initializeUC,
		verifyUC:          verifyUC,
		payoutUC:          payoutUC,
		listWalletUC:      listWalletUC,
		listPackageUC:     listPackageUC,
		showTransactionUC: showTransactionUC,
		logger:            log,
	}
}

// InitializeContribution handles POST /thrift-packages/:id/contributions
func (h *Handler) InitializeContribution(c *gin.Context) {
	principal, err := common.GetPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	packageID, err := common.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req InitializeContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for initialize contribution", "error", err)
		utils.ErrorResponseWithError(c, common.BindError(err))
		return
	}
	cmd, err := req.ToCommand(principal, packageID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.initializeUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Payment initialized")
}

// VerifyContribution handles GET /payments/verify/:reference. It is the gateway redirect
// target and carries no principal.
func (h *Handler) VerifyContribution(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		reference = c.Query("reference")
	}
	if reference == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("reference is required"))
		return
	}

	result, err := h.verifyUC.Execute(c.Request.Context(), usecases.VerifyContributionCommand{Reference: reference})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	message := "Payment verified"
	if result.AlreadyProcessed {
		message = "Payment already processed"
	}
	utils.SuccessResponse(c, http.StatusOK, message, result)
}

// Payout handles POST /thrift-packages/:id/payouts
func (h *Handler) Payout(c *gin.Context) {
	principal, err := common.GetPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	packageID, err := common.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var cmd usecases.PayoutCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		h.logger.Warnw("invalid request body for payout", "error", err)
		utils.ErrorResponseWithError(c, common.BindError(err))
		return
	}
	cmd.Principal = principal
	cmd.PackageID = packageID

	result, err := h.payoutUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Payout initiated", result)
}

// ListWalletTransactions handles GET /wallet/transactions
func (h *Handler) ListWalletTransactions(c *gin.Context) {
	principal, err := common.GetPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	page, pageSize := common.ParsePagination(c)

	result, err := h.listWalletUC.Execute(c.Request.Context(), usecases.ListTransactionsQuery{
		Principal: principal,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	respondPage(c, result)
}

// ListPackageTransactions handles GET /thrift-packages/:id/transactions
func (h *Handler) ListPackageTransactions(c *gin.Context) {
	principal, err := common.GetPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	packageID, err := common.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	page, pageSize := common.ParsePagination(c)

	result, err := h.listPackageUC.Execute(c.Request.Context(), usecases.ListTransactionsQuery{
		Principal: principal,
		PackageID: packageID,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	respondPage(c, result)
}

// ShowWalletTransaction handles GET /wallet/transactions/:ref
func (h *Handler) ShowWalletTransaction(c *gin.Context) {
	principal, err := common.GetPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.showTransactionUC.Execute(c.Request.Context(), usecases.ShowWalletTransactionQuery{
		Principal:     principal,
		IDOrReference: c.Param("ref"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func respondPage(c *gin.Context, page *usecases.TransactionPage) {
	pageSize := page.PageSize
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := int((page.Total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages == 0 {
		totalPages = 1
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"wallet":      page.Wallet,
		"items":       page.Items,
		"total":       page.Total,
		"page":        page.Page,
		"page_size":   page.PageSize,
		"total_pages": totalPages,
	})
}
