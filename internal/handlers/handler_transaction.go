package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/fin_manager_app/internal/core/ports/services"
	"github.com/SscSPs/fin_manager_app/internal/dto"
	"github.com/SscSPs/fin_manager_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles income/expense records and their reports.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	now                func() time.Time
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts, now: time.Now}
}

// registerTransactionRoutes registers transaction CRUD plus the summary and export reports.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.createTransaction)
		txns.GET("", h.listTransactions)
		txns.GET("/summary", h.summarizeTransactions)
		txns.GET("/export", h.exportTransactions)
		txns.GET("/:transactionID", h.getTransaction)
		txns.PUT("/:transactionID", h.updateTransaction)
		txns.DELETE("/:transactionID", h.deleteTransaction)
	}
}

// createTransaction godoc
// @Summary Record an income or expense
// @Description Records a transaction. Account balances are not affected; use transfers to move money.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.SuccessResponse{data=dto.TransactionResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, "create transaction request", err)
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Transaction", "create transaction")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transaction created successfully",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("entity_id", txn.EntityID))
	c.JSON(http.StatusCreated, dto.OK(dto.ToTransactionResponse(txn)))
}

// listTransactions godoc
// @Summary List transactions
// @Description Newest first. Every filter is optional.
// @Tags transactions
// @Produce  json
// @Param   entityID query string false "Entity ID"
// @Param   unitID query string false "Unit ID"
// @Param   accountID query string false "Account ID"
// @Param   type query string false "INCOME or EXPENSE"
// @Param   category query string false "Category"
// @Param   from query string false "First date (YYYY-MM-DD)"
// @Param   to query string false "Last date (YYYY-MM-DD)"
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.SuccessResponse{data=[]dto.TransactionResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, "list transactions query", err)
		return
	}

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondError(c, err, "Transaction", "list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToListTransactionResponse(txns)))
}

// summarizeTransactions godoc
// @Summary Income, expense and net totals
// @Description Sums the transactions matching the same filters as the list endpoint. Pagination is ignored.
// @Tags transactions
// @Produce  json
// @Param   entityID query string false "Entity ID"
// @Param   unitID query string false "Unit ID"
// @Param   accountID query string false "Account ID"
// @Param   category query string false "Category"
// @Param   from query string false "First date (YYYY-MM-DD)"
// @Param   to query string false "Last date (YYYY-MM-DD)"
// @Success 200 {object} dto.SuccessResponse{data=domain.TransactionSummary}
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/transactions/summary [get]
func (h *transactionHandler) summarizeTransactions(c *gin.Context) {
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, "transaction summary query", err)
		return
	}

	summary, err := h.transactionService.Summarize(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondError(c, err, "Transaction", "summarize transactions")
		return
	}
	c.JSON(http.StatusOK, dto.OK(summary))
}

// exportTransactions godoc
// @Summary Export transactions as CSV
// @Description Every field is double-quoted. Pagination is ignored.
// @Tags transactions
// @Produce text/csv
// @Param   entityID query string false "Entity ID"
// @Param   unitID query string false "Unit ID"
// @Param   accountID query string false "Account ID"
// @Param   type query string false "INCOME or EXPENSE"
// @Param   category query string false "Category"
// @Param   from query string false "First date (YYYY-MM-DD)"
// @Param   to query string false "Last date (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/transactions/export [get]
func (h *transactionHandler) exportTransactions(c *gin.Context) {
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, "transaction export query", err)
		return
	}

	var buf bytes.Buffer
	if err := h.transactionService.ExportCSV(c.Request.Context(), params.ToFilter(), &buf); err != nil {
		respondError(c, err, "Transaction", "export transactions")
		return
	}

	filename := fmt.Sprintf("transactions-%s.csv", h.now().Format(dto.DateLayout))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.TransactionResponse}
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Router /api/v1/transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), c.Param("transactionID"))
	if err != nil {
		respondError(c, err, "Transaction", "retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToTransactionResponse(txn)))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.SuccessResponse{data=dto.TransactionResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Router /api/v1/transactions/{transactionID} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, "update transaction request", err)
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), c.Param("transactionID"), req)
	if err != nil {
		respondError(c, err, "Transaction", "update transaction")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToTransactionResponse(txn)))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Param   transactionID path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Router /api/v1/transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	transactionID := c.Param("transactionID")
	if err := h.transactionService.DeleteTransaction(c.Request.Context(), transactionID); err != nil {
		respondError(c, err, "Transaction", "delete transaction")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transaction deleted successfully", slog.String("transaction_id", transactionID))
	c.Status(http.StatusNoContent)
}
