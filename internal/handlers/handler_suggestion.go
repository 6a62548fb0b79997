package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plcoutant/compta_engine/internal/apperrors"
	"github.com/plcoutant/compta_engine/internal/core/domain"
	portssvc "github.com/plcoutant/compta_engine/internal/core/ports/services"
	"github.com/plcoutant/compta_engine/internal/dto"
	"github.com/plcoutant/compta_engine/internal/middleware"
)

// suggestionHandler handles HTTP requests for account suggestions.
type suggestionHandler struct {
	suggestionService portssvc.SuggestionSvcFacade
}

// newSuggestionHandler creates a new suggestionHandler.
func newSuggestionHandler(suggestionService portssvc.SuggestionSvcFacade) *suggestionHandler {
	return &suggestionHandler{
		suggestionService: suggestionService,
	}
}

// suggest returns ranked account suggestions for past documents of the same
// kind whose label contains the fragment.
func (h *suggestionHandler) suggest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	kind := domain.DocumentKind(c.Query("kind"))
	labelFragment := c.Query("label")

	usages, err := h.suggestionService.Suggest(c.Request.Context(), ledgerID, kind, labelFragment)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid suggestion query", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to compute suggestions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute suggestions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": dto.ToSuggestionResponses(usages)})
}

// registerSuggestionRoutes registers suggestion routes nested under a ledger.
func registerSuggestionRoutes(rg *gin.RouterGroup, suggestionService portssvc.SuggestionSvcFacade) {
	h := newSuggestionHandler(suggestionService)

	rg.GET("/suggestions", h.suggest)
}
