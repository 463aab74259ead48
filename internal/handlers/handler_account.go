package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	portssvc "github.com/SscSPs/fin_manager_app/internal/core/ports/services"
	"github.com/SscSPs/fin_manager_app/internal/dto"
	"github.com/SscSPs/fin_manager_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
		accounts.DELETE("/:accountID", middleware.RequireRole(domain.RoleManager), h.deleteAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates a bank or cash account with an optional opening balance
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.SuccessResponse{data=dto.AccountResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to create account"
// @Router /api/v1/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, "create account request", err)
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create account", slog.String("account_name", req.Name), slog.String("currency_code", req.Currency))

	newAccount, err := h.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Account", "create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", newAccount.AccountID))
	c.JSON(http.StatusCreated, dto.OK(dto.ToAccountResponse(newAccount)))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.AccountResponse}
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve account"
// @Router /api/v1/accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondError(c, err, "Account", "retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToAccountResponse(account)))
}

// listAccounts godoc
// @Summary List accounts
// @Tags accounts
// @Produce  json
// @Param   activeOnly query bool false "Only active accounts"
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.SuccessResponse{data=[]dto.AccountResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, "list accounts query", err)
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Account", "list accounts")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Debug("Accounts listed successfully", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.OK(dto.ToListAccountResponse(accounts)))
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates descriptive fields and the active flag. Balances only move through transfers.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID to update"
// @Param   account body dto.UpdateAccountRequest true "Account details to update"
// @Success 200 {object} dto.SuccessResponse{data=dto.AccountResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /api/v1/accounts/{accountID} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, "update account request", err)
		return
	}

	accountID := c.Param("accountID")
	updatedAccount, err := h.accountService.UpdateAccount(c.Request.Context(), accountID, req)
	if err != nil {
		respondError(c, err, "Account", "update account")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account updated successfully", slog.String("account_id", accountID))
	c.JSON(http.StatusOK, dto.OK(dto.ToAccountResponse(updatedAccount)))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Transactions recorded against the account keep their rows and lose the account reference.
// @Tags accounts
// @Param   accountID path string true "Account ID to delete"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /api/v1/accounts/{accountID} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	accountID := c.Param("accountID")
	if err := h.accountService.DeleteAccount(c.Request.Context(), accountID); err != nil {
		respondError(c, err, "Account", "delete account")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account deleted successfully", slog.String("account_id", accountID))
	c.Status(http.StatusNoContent)
}
