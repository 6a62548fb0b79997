package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plcoutant/compta_engine/internal/apperrors"
	portssvc "github.com/plcoutant/compta_engine/internal/core/ports/services"
	"github.com/plcoutant/compta_engine/internal/dto"
	"github.com/plcoutant/compta_engine/internal/middleware"
)

// ledgerHandler handles HTTP requests related to ledgers.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ledgerService,
	}
}

// createLedger creates a new ledger.
func (h *ledgerHandler) createLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CreateLedgerRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ledger, err := h.ledgerService.CreateLedger(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Error("Failed to create ledger in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ledger"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToLedgerResponse(ledger))
}

// getLedger retrieves one ledger by ID.
func (h *ledgerHandler) getLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	ledger, err := h.ledgerService.GetLedgerByID(c.Request.Context(), ledgerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Ledger not found", slog.String("ledger_id", ledgerID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Ledger not found"})
			return
		}
		logger.Error("Failed to get ledger from service", slog.String("error", err.Error()), slog.String("ledger_id", ledgerID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ledger"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

// listLedgers lists all ledgers.
func (h *ledgerHandler) listLedgers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ledgers, err := h.ledgerService.ListLedgers(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list ledgers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list ledgers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ledgers": dto.ToLedgerResponses(ledgers)})
}

// registerLedgerRoutes registers ledger routes and the document, period and
// suggestion routes nested under a specific ledger.
func registerLedgerRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newLedgerHandler(services.Ledger)

	ledgersTopLevel := rg.Group("/ledgers")
	{
		ledgersTopLevel.POST("", h.createLedger)
		ledgersTopLevel.GET("", h.listLedgers)
	}

	ledgerSpecific := rg.Group("/ledgers/:ledgerID")
	{
		ledgerSpecific.GET("", h.getLedger)

		registerPeriodRoutes(ledgerSpecific, services.Period)
		registerDocumentRoutes(ledgerSpecific, services.Document)
		registerSuggestionRoutes(ledgerSpecific, services.Suggestion)
	}
}
