package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/plcoutant/compta_engine/internal/apperrors"
	"github.com/plcoutant/compta_engine/internal/core/domain"
	portssvc "github.com/plcoutant/compta_engine/internal/core/ports/services"
	"github.com/plcoutant/compta_engine/internal/core/services"
	"github.com/plcoutant/compta_engine/internal/core/taxonomy"
)

// --- Test Suite Setup ---
type SuggestionServiceTestSuite struct {
	suite.Suite
	mockDocumentRepo *MockDocumentRepository
	service          portssvc.SuggestionSvcFacade
	ledgerID         string
}

func (suite *SuggestionServiceTestSuite) SetupTest() {
	suite.mockDocumentRepo = new(MockDocumentRepository)
	suite.service = services.NewSuggestionService(suite.mockDocumentRepo)
	suite.ledgerID = uuid.NewString()
}

// --- Test Cases ---

func (suite *SuggestionServiceTestSuite) TestSuggest_ReturnsRankedUsage() {
	ctx := context.Background()
	usage := []domain.AccountUsage{
		{AccountCode: taxonomy.AccountRent, SampleLabel: "Loyer mars bureaux", Frequency: 12},
		{AccountCode: taxonomy.AccountFees, SampleLabel: "Honoraires avocat loyer", Frequency: 2},
	}

	suite.mockDocumentRepo.On("FindAccountUsage", ctx, suite.ledgerID, domain.PurchaseInvoice, "loyer", 5).
		Return(usage, nil).Once()

	got, err := suite.service.Suggest(ctx, suite.ledgerID, domain.PurchaseInvoice, "loyer")

	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal(taxonomy.AccountRent, got[0].AccountCode)
	suite.GreaterOrEqual(got[0].Frequency, got[1].Frequency)
	suite.mockDocumentRepo.AssertExpectations(suite.T())
}

func (suite *SuggestionServiceTestSuite) TestSuggest_TrimsFragment() {
	ctx := context.Background()

	suite.mockDocumentRepo.On("FindAccountUsage", ctx, suite.ledgerID, domain.SalesInvoice, "conseil", 5).
		Return([]domain.AccountUsage{}, nil).Once()

	got, err := suite.service.Suggest(ctx, suite.ledgerID, domain.SalesInvoice, "  conseil  ")

	suite.Require().NoError(err)
	suite.Empty(got)
	suite.mockDocumentRepo.AssertExpectations(suite.T())
}

func (suite *SuggestionServiceTestSuite) TestSuggest_RejectsUnknownKind() {
	ctx := context.Background()

	_, err := suite.service.Suggest(ctx, suite.ledgerID, domain.DocumentKind("GUESSWORK"), "loyer")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDocumentRepo.AssertNotCalled(suite.T(), "FindAccountUsage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSuggestionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SuggestionServiceTestSuite))
}
