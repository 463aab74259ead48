package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/fin_manager_app/internal/core/ports/services"
	"github.com/SscSPs/fin_manager_app/internal/dto"
	"github.com/SscSPs/fin_manager_app/internal/middleware"
	"github.com/SscSPs/fin_manager_app/internal/utils"
	"github.com/gin-gonic/gin"
)

type transferHandler struct {
	transferService portssvc.TransferSvc
	analytics       *utils.PosthogClientWrapper
}

func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvc, analytics *utils.PosthogClientWrapper) {
	h := &transferHandler{transferService: transferService, analytics: analytics}
	rg.POST("/transfers", h.transfer)
}

// transfer godoc
// @Summary Transfer money between accounts
// @Description Debits the source account, credits the destination and records an EXPENSE and an INCOME
// @Description row, atomically. Both accounts must share a currency and the source must cover the amount.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.SuccessResponse{data=dto.TransferResponse}
// @Failure 400 {object} dto.ErrorResponse "Cannot transfer between different currencies / Insufficient balance"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 409 {object} dto.ErrorResponse "Concurrent update, retry"
// @Router /api/v1/transfers [post]
func (h *transferHandler) transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, "transfer request", err)
		return
	}

	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("from_account_id", req.FromAccountID),
		slog.String("to_account_id", req.ToAccountID),
	)
	logger.Info("Received transfer request", slog.String("amount", req.Amount))

	result, err := h.transferService.Transfer(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, err, "Account", "complete transfer")
		return
	}

	logger.Info("Transfer completed",
		slog.String("debit_transaction_id", result.DebitTransactionID),
		slog.String("credit_transaction_id", result.CreditTransactionID))
	middleware.PosthogEvent(c, h.analytics, "transfer_completed", map[string]any{
		"amount":   result.Amount.String(),
		"currency": result.CurrencyCode,
	})
	c.JSON(http.StatusOK, dto.OK(dto.ToTransferResponse(result)))
}
