package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/plcoutant/compta_engine/internal/apperrors"
	"github.com/plcoutant/compta_engine/internal/core/domain"
	portsrepo "github.com/plcoutant/compta_engine/internal/core/ports/repositories"
	portssvc "github.com/plcoutant/compta_engine/internal/core/ports/services"
	"github.com/plcoutant/compta_engine/internal/core/services"
	"github.com/plcoutant/compta_engine/internal/core/taxonomy"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) UpsertAccounts(ctx context.Context, accounts []domain.LedgerAccount) error {
	args := m.Called(ctx, accounts)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, accountCode string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, accountCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.LedgerAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerAccount), args.Error(1)
}

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, taxonomy.Default())
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestSeedChartOfAccounts_UpsertsTaxonomy() {
	ctx := context.Background()

	var seeded []domain.LedgerAccount
	suite.mockAccountRepo.On("UpsertAccounts", ctx, mock.AnythingOfType("[]domain.LedgerAccount")).
		Run(func(args mock.Arguments) {
			seeded = args.Get(1).([]domain.LedgerAccount)
		}).
		Return(nil).Once()

	err := suite.service.SeedChartOfAccounts(ctx)

	suite.Require().NoError(err)
	suite.NotEmpty(seeded)

	codes := map[string]bool{}
	for _, acc := range seeded {
		codes[acc.AccountCode] = true
	}
	// Classification targets must be part of the seed.
	suite.True(codes[taxonomy.AccountPurchasedGoods])
	suite.True(codes[taxonomy.AccountVATDeductible])
	suite.True(codes[taxonomy.AccountVATCollected])
	suite.True(codes[taxonomy.AccountBank])
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByCode_NotFound() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "000").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetAccountByCode(ctx, "000")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccounts_PassesThrough() {
	ctx := context.Background()
	accounts := []domain.LedgerAccount{
		{AccountCode: taxonomy.AccountBank, Label: "Banque", Category: domain.CategoryAsset},
	}

	suite.mockAccountRepo.On("ListAccounts", ctx).Return(accounts, nil).Once()

	got, err := suite.service.ListAccounts(ctx)

	suite.Require().NoError(err)
	suite.Equal(accounts, got)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
