package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/propbooks/propbooks_backend/internal/core/ports/services"
	"github.com/propbooks/propbooks_backend/internal/dto"
	"github.com/propbooks/propbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// documentHandler handles HTTP requests for the document posting adapters:
// invoices, receipts and expenses.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

// newDocumentHandler creates a new documentHandler.
func newDocumentHandler(ds portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{
		documentService: ds,
	}
}

// registerDocumentRoutes registers routes related to document posting.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)

	documents := rg.Group("/documents")
	{
		documents.POST("/invoices", h.postInvoice)
		documents.POST("/receipts", h.postReceipt)
		documents.POST("/expenses", h.postExpense)
	}
}

// postInvoice godoc
// @Summary Post a rent invoice
// @Description Translates a rent invoice into a posted journal: Dr Accounts Receivable / Cr Deferred Revenue
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   invoice body dto.PostInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Missing actor identity"
// @Failure 500 {object} map[string]string "Failed to post invoice"
// @Router /documents/invoices [post]
func (h *documentHandler) postInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to post invoice",
		slog.String("invoice_id", req.InvoiceID),
		slog.Any("amount", req.Amount),
	)

	journal, entries, err := h.documentService.PostInvoice(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, "Failed to post invoice", err)
		return
	}

	logger.Info("Invoice posted successfully", slog.String("journal_number", journal.JournalNumber))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal, entries))
}

// postReceipt godoc
// @Summary Post a cash receipt
// @Description Translates a cash receipt into a posted journal: cash application, revenue recognition and the category's commission/VAT split
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   receipt body dto.PostReceiptRequest true "Receipt details"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Missing actor identity"
// @Failure 500 {object} map[string]string "Failed to post receipt"
// @Router /documents/receipts [post]
func (h *documentHandler) postReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostReceipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to post receipt",
		slog.String("receipt_id", req.ReceiptID),
		slog.String("category_id", req.CategoryID),
		slog.Any("amount", req.Amount),
	)

	journal, entries, err := h.documentService.PostReceipt(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, "Failed to post receipt", err)
		return
	}

	logger.Info("Receipt posted successfully", slog.String("journal_number", journal.JournalNumber))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal, entries))
}

// postExpense godoc
// @Summary Post an expense payment
// @Description Translates an expense into a posted journal: Dr expense account / Cr paying account
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   expense body dto.PostExpenseRequest true "Expense details"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Missing actor identity"
// @Failure 500 {object} map[string]string "Failed to post expense"
// @Router /documents/expenses [post]
func (h *documentHandler) postExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to post expense",
		slog.String("expense_id", req.ExpenseID),
		slog.String("expense_account_id", req.ExpenseAccountID),
		slog.Any("amount", req.Amount),
	)

	journal, entries, err := h.documentService.PostExpense(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, "Failed to post expense", err)
		return
	}

	logger.Info("Expense posted successfully", slog.String("journal_number", journal.JournalNumber))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal, entries))
}
