package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plcoutant/compta_engine/internal/apperrors"
	portssvc "github.com/plcoutant/compta_engine/internal/core/ports/services"
	"github.com/plcoutant/compta_engine/internal/core/services"
	"github.com/plcoutant/compta_engine/internal/dto"
	"github.com/plcoutant/compta_engine/internal/middleware"
)

// documentHandler handles HTTP requests related to source documents and
// their generated journal lines.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

// newDocumentHandler creates a new documentHandler.
func newDocumentHandler(documentService portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{
		documentService: documentService,
	}
}

// generateEntries turns one source document into balanced journal lines and
// persists both atomically.
func (h *documentHandler) generateEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	req := dto.GenerateEntriesRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for GenerateEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("document_number", req.DocumentNumber))

	doc, classification, err := h.documentService.GenerateEntries(c.Request.Context(), ledgerID, req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInsufficientAmountData),
			errors.Is(err, services.ErrAmountsInconsistent),
			errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error generating entries", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNoPeriodFound):
			logger.Warn("No accounting period for operation date", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrPeriodClosed):
			logger.Warn("Target accounting period is closed", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Duplicate document number", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to generate entries in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate entries"})
		}
		return
	}

	logger.Info("Entries generated successfully",
		slog.Int("line_count", len(doc.Lines)),
		slog.Bool("classification_matched", classification.Matched),
	)
	c.JSON(http.StatusCreated, dto.GenerateEntriesResponse{
		Document:       dto.ToDocumentResponse(doc),
		Lines:          dto.ToJournalLineResponses(doc.Lines),
		Classification: dto.ToClassificationResponse(classification),
	})
}

// getDocument retrieves a document and its journal lines.
func (h *documentHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	documentNumber := c.Param("documentNumber")

	doc, err := h.documentService.GetDocument(c.Request.Context(), ledgerID, documentNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Document not found", slog.String("document_number", documentNumber))
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		logger.Error("Failed to get document from service", slog.String("error", err.Error()), slog.String("document_number", documentNumber))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve document"})
		return
	}

	logger.Debug("Document retrieved successfully", slog.String("document_number", documentNumber))

	resp := dto.ToDocumentResponse(doc)
	c.JSON(http.StatusOK, gin.H{
		"document": resp,
		"lines":    dto.ToJournalLineResponses(doc.Lines),
	})
}

// listPeriodDocuments lists the documents recorded in one accounting period.
func (h *documentHandler) listPeriodDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	periodID := c.Param("periodID")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	docs, err := h.documentService.ListDocumentsByPeriod(c.Request.Context(), ledgerID, periodID, limit)
	if err != nil {
		logger.Error("Failed to list documents for period", slog.String("error", err.Error()), slog.String("period_id", periodID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": dto.ToDocumentResponses(docs)})
}

// checkBalance audits the debit and credit legs of a persisted document.
func (h *documentHandler) checkBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	documentNumber := c.Param("documentNumber")

	report, err := h.documentService.CheckBalance(c.Request.Context(), ledgerID, documentNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Document not found for balance check", slog.String("document_number", documentNumber))
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		logger.Error("Failed to check balance", slog.String("error", err.Error()), slog.String("document_number", documentNumber))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceReportResponse(*report))
}

// registerDocumentRoutes registers document routes nested under a ledger.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)

	documents := rg.Group("/documents")
	{
		documents.POST("", h.generateEntries)
		documents.GET("/:documentNumber", h.getDocument)
		documents.GET("/:documentNumber/balance", h.checkBalance)
	}

	rg.GET("/periods/:periodID/documents", h.listPeriodDocuments)
}
