package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/plcoutant/compta_engine/internal/apperrors"
	"github.com/plcoutant/compta_engine/internal/core/domain"
	portsrepo "github.com/plcoutant/compta_engine/internal/core/ports/repositories"
	portssvc "github.com/plcoutant/compta_engine/internal/core/ports/services"
	"github.com/plcoutant/compta_engine/internal/core/services"
	"github.com/plcoutant/compta_engine/internal/core/taxonomy"
	"github.com/plcoutant/compta_engine/internal/dto"
)

// --- Mock DocumentRepository ---
type MockDocumentRepository struct {
	mock.Mock
}

var _ portsrepo.DocumentRepositoryFacade = (*MockDocumentRepository)(nil)

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, doc domain.SourceDocument, lines []domain.JournalLine) error {
	args := m.Called(ctx, doc, lines)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocumentStatus(ctx context.Context, ledgerID, documentNumber string, status domain.DocumentStatus, updatedBy string) error {
	args := m.Called(ctx, ledgerID, documentNumber, status, updatedBy)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindDocumentByNumber(ctx context.Context, ledgerID, documentNumber string) (*domain.SourceDocument, error) {
	args := m.Called(ctx, ledgerID, documentNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SourceDocument), args.Error(1)
}

func (m *MockDocumentRepository) FindLinesByDocument(ctx context.Context, ledgerID, documentNumber string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, ledgerID, documentNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockDocumentRepository) ListDocumentsByPeriod(ctx context.Context, ledgerID, periodID string, limit int) ([]domain.SourceDocument, error) {
	args := m.Called(ctx, ledgerID, periodID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SourceDocument), args.Error(1)
}

func (m *MockDocumentRepository) FindAccountUsage(ctx context.Context, ledgerID string, kind domain.DocumentKind, labelFragment string, limit int) ([]domain.AccountUsage, error) {
	args := m.Called(ctx, ledgerID, kind, labelFragment, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountUsage), args.Error(1)
}

// --- Mock PeriodService ---
type MockPeriodService struct {
	mock.Mock
}

var _ portssvc.PeriodSvcFacade = (*MockPeriodService)(nil)

func (m *MockPeriodService) FindPeriodForDate(ctx context.Context, ledgerID string, date time.Time) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, ledgerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) ListPeriods(ctx context.Context, ledgerID string) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) CreatePeriod(ctx context.Context, ledgerID string, req dto.CreatePeriodRequest, creatorUserID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, ledgerID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) ClosePeriod(ctx context.Context, ledgerID, periodID string, userID string) error {
	args := m.Called(ctx, ledgerID, periodID, userID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type DocumentServiceTestSuite struct {
	suite.Suite
	mockDocumentRepo *MockDocumentRepository
	mockPeriodSvc    *MockPeriodService
	service          portssvc.DocumentSvcFacade
	ledgerID         string
	userID           string
	openPeriod       domain.AccountingPeriod
	operationDate    time.Time
}

func (suite *DocumentServiceTestSuite) SetupTest() {
	suite.mockDocumentRepo = new(MockDocumentRepository)
	suite.mockPeriodSvc = new(MockPeriodService)
	classifier := services.NewClassifier(taxonomy.Default())
	suite.service = services.NewDocumentService(suite.mockDocumentRepo, suite.mockPeriodSvc, classifier, decimal.NewFromInt(20))

	suite.ledgerID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.operationDate = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	suite.openPeriod = domain.AccountingPeriod{
		PeriodID:  uuid.NewString(),
		LedgerID:  suite.ledgerID,
		Name:      "2026-03",
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodOpen,
	}
}

// --- Test Cases ---

func (suite *DocumentServiceTestSuite) TestGenerateEntries_PurchaseInvoiceShape() {
	ctx := context.Background()
	req := dto.GenerateEntriesRequest{
		DocumentNumber: "FA-2026-001",
		Kind:           domain.PurchaseInvoice,
		OperationDate:  suite.operationDate,
		Label:          "Facture fournisseur papeterie",
		TaxExclusive:   decimalPtr(decimal.NewFromInt(100)),
		Tax:            decimalPtr(decimal.NewFromInt(20)),
	}

	suite.mockPeriodSvc.On("FindPeriodForDate", ctx, suite.ledgerID, suite.operationDate).Return(&suite.openPeriod, nil).Once()

	var savedLines []domain.JournalLine
	suite.mockDocumentRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.SourceDocument"), mock.AnythingOfType("[]domain.JournalLine")).
		Run(func(args mock.Arguments) {
			savedLines = args.Get(2).([]domain.JournalLine)
		}).
		Return(nil).Once()

	doc, classification, err := suite.service.GenerateEntries(ctx, suite.ledgerID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(doc)
	suite.Equal(suite.openPeriod.PeriodID, doc.PeriodID)
	suite.Equal(domain.StatusValid, doc.Status)
	suite.True(doc.TaxInclusive.Equal(decimal.NewFromInt(120)))
	suite.True(classification.Matched)
	suite.Equal(domain.JournalPurchases, classification.JournalCode)

	// Three lines: HT to the expense account, tax to VAT deductible, TTC
	// credited to the supplier.
	suite.Require().Len(savedLines, 3)
	suite.Equal(taxonomy.AccountPurchasedGoods, savedLines[0].AccountCode)
	suite.True(savedLines[0].Debit.Equal(decimal.NewFromInt(100)))
	suite.Equal(taxonomy.AccountVATDeductible, savedLines[1].AccountCode)
	suite.True(savedLines[1].Debit.Equal(decimal.NewFromInt(20)))
	suite.Equal(taxonomy.AccountTradePayables, savedLines[2].AccountCode)
	suite.True(savedLines[2].Credit.Equal(decimal.NewFromInt(120)))

	report := domain.NewBalanceReport(doc.DocumentNumber, savedLines)
	suite.True(report.Balanced)

	suite.mockPeriodSvc.AssertExpectations(suite.T())
	suite.mockDocumentRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestGenerateEntries_SalesInvoiceShape() {
	ctx := context.Background()
	req := dto.GenerateEntriesRequest{
		DocumentNumber: "FV-2026-042",
		Kind:           domain.SalesInvoice,
		OperationDate:  suite.operationDate,
		Label:          "Prestation de conseil mars",
		TaxInclusive:   decimalPtr(decimal.NewFromInt(1200)),
	}

	suite.mockPeriodSvc.On("FindPeriodForDate", ctx, suite.ledgerID, suite.operationDate).Return(&suite.openPeriod, nil).Once()

	var savedLines []domain.JournalLine
	suite.mockDocumentRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.SourceDocument"), mock.AnythingOfType("[]domain.JournalLine")).
		Run(func(args mock.Arguments) {
			savedLines = args.Get(2).([]domain.JournalLine)
		}).
		Return(nil).Once()

	doc, classification, err := suite.service.GenerateEntries(ctx, suite.ledgerID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(doc.TaxExclusive.Equal(decimal.NewFromInt(1000)))
	suite.True(doc.Tax.Equal(decimal.NewFromInt(200)))
	suite.Equal(taxonomy.AccountServicesSold, classification.CreditAccount)

	// TTC debited to the customer, HT and VAT credited.
	suite.Require().Len(savedLines, 3)
	suite.Equal(taxonomy.AccountTradeReceivables, savedLines[0].AccountCode)
	suite.True(savedLines[0].Debit.Equal(decimal.NewFromInt(1200)))
	suite.Equal(taxonomy.AccountServicesSold, savedLines[1].AccountCode)
	suite.True(savedLines[1].Credit.Equal(decimal.NewFromInt(1000)))
	suite.Equal(taxonomy.AccountVATCollected, savedLines[2].AccountCode)
	suite.True(savedLines[2].Credit.Equal(decimal.NewFromInt(200)))

	suite.mockDocumentRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestGenerateEntries_ZeroTaxTwoLines() {
	ctx := context.Background()
	zero := decimal.Zero
	req := dto.GenerateEntriesRequest{
		DocumentNumber: "BQ-2026-117",
		Kind:           domain.BankLine,
		OperationDate:  suite.operationDate,
		Label:          "Frais bancaire tenue de compte",
		TaxExclusive:   decimalPtr(decimal.RequireFromString("12.50")),
		TaxRate:        &zero,
	}

	suite.mockPeriodSvc.On("FindPeriodForDate", ctx, suite.ledgerID, suite.operationDate).Return(&suite.openPeriod, nil).Once()

	var savedLines []domain.JournalLine
	suite.mockDocumentRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.SourceDocument"), mock.AnythingOfType("[]domain.JournalLine")).
		Run(func(args mock.Arguments) {
			savedLines = args.Get(2).([]domain.JournalLine)
		}).
		Return(nil).Once()

	_, classification, err := suite.service.GenerateEntries(ctx, suite.ledgerID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.JournalBank, classification.JournalCode)

	// No tax line when the tax amount is zero.
	suite.Require().Len(savedLines, 2)
	suite.Equal(taxonomy.AccountBankFees, savedLines[0].AccountCode)
	suite.True(savedLines[0].Debit.Equal(decimal.RequireFromString("12.50")))
	suite.Equal(taxonomy.AccountBank, savedLines[1].AccountCode)
	suite.True(savedLines[1].Credit.Equal(decimal.RequireFromString("12.50")))

	suite.mockDocumentRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestGenerateEntries_EffectiveRateRecordedOverDefault() {
	ctx := context.Background()
	req := dto.GenerateEntriesRequest{
		DocumentNumber: "FA-2026-010",
		Kind:           domain.PurchaseInvoice,
		OperationDate:  suite.operationDate,
		Label:          "Facture fournisseur taux reduit",
		TaxExclusive:   decimalPtr(decimal.NewFromInt(200)),
		TaxInclusive:   decimalPtr(decimal.NewFromInt(220)),
	}

	suite.mockPeriodSvc.On("FindPeriodForDate", ctx, suite.ledgerID, suite.operationDate).Return(&suite.openPeriod, nil).Once()

	var savedDoc domain.SourceDocument
	suite.mockDocumentRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.SourceDocument"), mock.AnythingOfType("[]domain.JournalLine")).
		Run(func(args mock.Arguments) {
			savedDoc = args.Get(1).(domain.SourceDocument)
		}).
		Return(nil).Once()

	doc, _, err := suite.service.GenerateEntries(ctx, suite.ledgerID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(doc.Tax.Equal(decimal.NewFromInt(20)))

	// Both legs were supplied, so the stored rate is the effective 10%, not
	// the configured 20% default.
	suite.True(savedDoc.TaxRate.Equal(decimal.NewFromInt(10)), "rate: got %s", savedDoc.TaxRate)
	suite.True(savedDoc.Tax.Equal(decimal.NewFromInt(20)))
	suite.True(savedDoc.TaxExclusive.Mul(savedDoc.TaxRate).Div(decimal.NewFromInt(100)).Equal(savedDoc.Tax))

	suite.mockDocumentRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestGenerateEntries_NoPeriodPersistsNothing() {
	ctx := context.Background()
	req := dto.GenerateEntriesRequest{
		DocumentNumber: "FA-2026-002",
		Kind:           domain.PurchaseInvoice,
		OperationDate:  suite.operationDate,
		Label:          "Facture hors periode",
		TaxExclusive:   decimalPtr(decimal.NewFromInt(50)),
	}

	suite.mockPeriodSvc.On("FindPeriodForDate", ctx, suite.ledgerID, suite.operationDate).Return(nil, services.ErrNoPeriodFound).Once()

	doc, _, err := suite.service.GenerateEntries(ctx, suite.ledgerID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNoPeriodFound)
	suite.Nil(doc)

	// The store must never be touched.
	suite.mockDocumentRepo.AssertNotCalled(suite.T(), "SaveDocument", mock.Anything, mock.Anything, mock.Anything)
	suite.mockPeriodSvc.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestGenerateEntries_ClosedPeriodRejected() {
	ctx := context.Background()
	closed := suite.openPeriod
	closed.Status = domain.PeriodClosed

	req := dto.GenerateEntriesRequest{
		DocumentNumber: "FA-2026-003",
		Kind:           domain.PurchaseInvoice,
		OperationDate:  suite.operationDate,
		Label:          "Facture periode close",
		TaxExclusive:   decimalPtr(decimal.NewFromInt(50)),
	}

	suite.mockPeriodSvc.On("FindPeriodForDate", ctx, suite.ledgerID, suite.operationDate).Return(&closed, nil).Once()

	_, _, err := suite.service.GenerateEntries(ctx, suite.ledgerID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPeriodClosed)
	suite.mockDocumentRepo.AssertNotCalled(suite.T(), "SaveDocument", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestGenerateEntries_MissingAmountsRejectedEarly() {
	ctx := context.Background()
	req := dto.GenerateEntriesRequest{
		DocumentNumber: "FA-2026-004",
		Kind:           domain.PurchaseInvoice,
		OperationDate:  suite.operationDate,
		Label:          "Facture sans montant",
	}

	_, _, err := suite.service.GenerateEntries(ctx, suite.ledgerID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInsufficientAmountData)
	suite.mockPeriodSvc.AssertNotCalled(suite.T(), "FindPeriodForDate", mock.Anything, mock.Anything, mock.Anything)
	suite.mockDocumentRepo.AssertNotCalled(suite.T(), "SaveDocument", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestGenerateEntries_UnknownKindRejected() {
	ctx := context.Background()
	req := dto.GenerateEntriesRequest{
		DocumentNumber: "FA-2026-005",
		Kind:           domain.DocumentKind("TELEPATHY"),
		OperationDate:  suite.operationDate,
		Label:          "Facture de kind inconnu",
		TaxExclusive:   decimalPtr(decimal.NewFromInt(50)),
	}

	_, _, err := suite.service.GenerateEntries(ctx, suite.ledgerID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DocumentServiceTestSuite) TestGenerateEntries_DuplicateNumberSurfaces() {
	ctx := context.Background()
	req := dto.GenerateEntriesRequest{
		DocumentNumber: "FA-2026-001",
		Kind:           domain.PurchaseInvoice,
		OperationDate:  suite.operationDate,
		Label:          "Facture en doublon",
		TaxExclusive:   decimalPtr(decimal.NewFromInt(100)),
	}

	suite.mockPeriodSvc.On("FindPeriodForDate", ctx, suite.ledgerID, suite.operationDate).Return(&suite.openPeriod, nil).Once()
	suite.mockDocumentRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.SourceDocument"), mock.AnythingOfType("[]domain.JournalLine")).
		Return(apperrors.ErrDuplicate).Once()

	_, _, err := suite.service.GenerateEntries(ctx, suite.ledgerID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockDocumentRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestGenerateEntries_UnmatchedClassificationStillPersists() {
	ctx := context.Background()
	req := dto.GenerateEntriesRequest{
		DocumentNumber: "OD-2026-009",
		Kind:           domain.Adjustment,
		OperationDate:  suite.operationDate,
		Label:          "zzz illisible",
		TaxExclusive:   decimalPtr(decimal.NewFromInt(30)),
	}

	suite.mockPeriodSvc.On("FindPeriodForDate", ctx, suite.ledgerID, suite.operationDate).Return(&suite.openPeriod, nil).Once()
	suite.mockDocumentRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.SourceDocument"), mock.AnythingOfType("[]domain.JournalLine")).
		Return(nil).Once()

	doc, classification, err := suite.service.GenerateEntries(ctx, suite.ledgerID, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(doc)
	suite.False(classification.Matched)
	suite.Equal(taxonomy.AccountMiscExpense, classification.DebitAccount)
	suite.Equal(taxonomy.AccountBank, classification.CreditAccount)
	suite.mockDocumentRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestGetDocument_LoadsLines() {
	ctx := context.Background()
	doc := &domain.SourceDocument{
		DocumentNumber: "FA-2026-001",
		LedgerID:       suite.ledgerID,
		Kind:           domain.PurchaseInvoice,
	}
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), Debit: decimal.NewFromInt(100)},
		{LineID: uuid.NewString(), Credit: decimal.NewFromInt(100)},
	}

	suite.mockDocumentRepo.On("FindDocumentByNumber", ctx, suite.ledgerID, "FA-2026-001").Return(doc, nil).Once()
	suite.mockDocumentRepo.On("FindLinesByDocument", ctx, suite.ledgerID, "FA-2026-001").Return(lines, nil).Once()

	got, err := suite.service.GetDocument(ctx, suite.ledgerID, "FA-2026-001")

	suite.Require().NoError(err)
	suite.Len(got.Lines, 2)
	suite.mockDocumentRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestGetDocument_NotFound() {
	ctx := context.Background()

	suite.mockDocumentRepo.On("FindDocumentByNumber", ctx, suite.ledgerID, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetDocument(ctx, suite.ledgerID, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DocumentServiceTestSuite) TestListDocumentsByPeriod_PassesThrough() {
	ctx := context.Background()
	periodID := suite.openPeriod.PeriodID
	docs := []domain.SourceDocument{
		{DocumentNumber: "FA-2026-001", LedgerID: suite.ledgerID, PeriodID: periodID},
		{DocumentNumber: "FV-2026-042", LedgerID: suite.ledgerID, PeriodID: periodID},
	}

	suite.mockDocumentRepo.On("ListDocumentsByPeriod", ctx, suite.ledgerID, periodID, 10).Return(docs, nil).Once()

	got, err := suite.service.ListDocumentsByPeriod(ctx, suite.ledgerID, periodID, 10)

	suite.Require().NoError(err)
	suite.Len(got, 2)
	suite.mockDocumentRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestListDocumentsByPeriod_DefaultLimit() {
	ctx := context.Background()
	periodID := suite.openPeriod.PeriodID

	// A missing or absurd limit falls back to the server-side default of 100.
	suite.mockDocumentRepo.On("ListDocumentsByPeriod", ctx, suite.ledgerID, periodID, 100).Return([]domain.SourceDocument{}, nil).Twice()

	_, err := suite.service.ListDocumentsByPeriod(ctx, suite.ledgerID, periodID, 0)
	suite.Require().NoError(err)
	_, err = suite.service.ListDocumentsByPeriod(ctx, suite.ledgerID, periodID, 10000)
	suite.Require().NoError(err)

	suite.mockDocumentRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestCheckBalance_ReportsPersistedState() {
	ctx := context.Background()
	doc := &domain.SourceDocument{DocumentNumber: "FA-2026-001", LedgerID: suite.ledgerID}
	lines := []domain.JournalLine{
		{Debit: decimal.NewFromInt(100)},
		{Debit: decimal.NewFromInt(20)},
		{Credit: decimal.NewFromInt(120)},
	}

	suite.mockDocumentRepo.On("FindDocumentByNumber", ctx, suite.ledgerID, "FA-2026-001").Return(doc, nil).Once()
	suite.mockDocumentRepo.On("FindLinesByDocument", ctx, suite.ledgerID, "FA-2026-001").Return(lines, nil).Once()

	report, err := suite.service.CheckBalance(ctx, suite.ledgerID, "FA-2026-001")

	suite.Require().NoError(err)
	suite.True(report.Balanced)
	suite.True(report.TotalDebit.Equal(decimal.NewFromInt(120)))
	suite.True(report.TotalCredit.Equal(decimal.NewFromInt(120)))
	suite.True(report.Difference.IsZero())
}

func TestDocumentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}
