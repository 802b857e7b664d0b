package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ledgerbook/ledgerbook_backend/internal/apperrors"
	"github.com/ledgerbook/ledgerbook_backend/internal/core/domain"
	portssvc "github.com/ledgerbook/ledgerbook_backend/internal/core/ports/services"
	"github.com/ledgerbook/ledgerbook_backend/internal/core/services"
	"github.com/ledgerbook/ledgerbook_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAccountRepository is a mock type for the AccountRepository interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	args := m.Called(ctx, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAllActiveAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByParentID(ctx context.Context, parentID int64) ([]domain.Account, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ExistsAccountByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID int64) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

func activeAccount(id int64, code, name string, accountType domain.AccountType) *domain.Account {
	now := time.Now().UTC()
	return &domain.Account{
		AccountID:   id,
		Code:        code,
		Name:        name,
		AccountType: accountType,
		IsActive:    true,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
	}

	suite.mockRepo.On("ExistsAccountByCode", ctx, "1000").Return(false, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			account := args.Get(1).(domain.Account)
			suite.Equal(int64(0), account.AccountID)
			suite.True(account.IsActive)
		}).
		Return(activeAccount(1, "1000", "Cash", domain.Asset), nil).Once()

	created, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(int64(1), created.AccountID)
	suite.Equal("1000", created.Code)
	suite.True(created.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
	}

	suite.mockRepo.On("ExistsAccountByCode", ctx, "1000").Return(true, nil).Once()

	created, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, services.ErrDuplicateCode)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_WithActiveParent() {
	ctx := context.Background()
	parentID := int64(10)
	req := dto.CreateAccountRequest{
		Code:            "1001",
		Name:            "Petty Cash",
		AccountType:     domain.Asset,
		ParentAccountID: &parentID,
	}

	suite.mockRepo.On("ExistsAccountByCode", ctx, "1001").Return(false, nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, parentID).Return(activeAccount(parentID, "1000", "Cash", domain.Asset), nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(activeAccount(11, "1001", "Petty Cash", domain.Asset), nil).Once()

	created, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentNotFound() {
	ctx := context.Background()
	parentID := int64(99)
	req := dto.CreateAccountRequest{
		Code:            "1001",
		Name:            "Petty Cash",
		AccountType:     domain.Asset,
		ParentAccountID: &parentID,
	}

	suite.mockRepo.On("ExistsAccountByCode", ctx, "1001").Return(false, nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, parentID).Return(nil, apperrors.ErrNotFound).Once()

	created, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, services.ErrParentNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InactiveParent() {
	ctx := context.Background()
	parentID := int64(10)
	req := dto.CreateAccountRequest{
		Code:            "1001",
		Name:            "Petty Cash",
		AccountType:     domain.Asset,
		ParentAccountID: &parentID,
	}

	parent := activeAccount(parentID, "1000", "Cash", domain.Asset)
	parent.IsActive = false

	suite.mockRepo.On("ExistsAccountByCode", ctx, "1001").Return(false, nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, parentID).Return(parent, nil).Once()

	created, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, services.ErrInactiveParent)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_Success() {
	ctx := context.Background()
	existing := activeAccount(5, "5000", "Office Supplies", domain.Expense)
	req := dto.UpdateAccountRequest{Name: "Office Expenses"}

	suite.mockRepo.On("FindAccountByID", ctx, int64(5)).Return(existing, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			account := args.Get(1).(domain.Account)
			suite.Equal("Office Expenses", account.Name)
			suite.Equal("5000", account.Code) // code survives the rename
		}).
		Return(activeAccount(5, "5000", "Office Expenses", domain.Expense), nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, 5, req)

	suite.Require().NoError(err)
	suite.Equal("Office Expenses", updated.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_SelfParentRejected() {
	ctx := context.Background()
	existing := activeAccount(5, "5000", "Office Supplies", domain.Expense)
	selfID := int64(5)
	req := dto.UpdateAccountRequest{Name: "Office Supplies", ParentAccountID: &selfID}

	suite.mockRepo.On("FindAccountByID", ctx, int64(5)).Return(existing, nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, 5, req)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, services.ErrSelfParent)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NotFound() {
	ctx := context.Background()
	req := dto.UpdateAccountRequest{Name: "Whatever"}

	suite.mockRepo.On("FindAccountByID", ctx, int64(404)).Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.UpdateAccount(ctx, 404, req)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	existing := activeAccount(7, "7000", "Old Equipment", domain.Asset)

	deactivated := *existing
	deactivated.IsActive = false

	suite.mockRepo.On("FindAccountByID", ctx, int64(7)).Return(existing, nil).Once()
	suite.mockRepo.On("FindAccountsByParentID", ctx, int64(7)).Return([]domain.Account{}, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			account := args.Get(1).(domain.Account)
			suite.False(account.IsActive)
		}).
		Return(&deactivated, nil).Once()

	result, err := suite.service.DeactivateAccount(ctx, 7)

	suite.Require().NoError(err)
	suite.False(result.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_BlockedByChildren() {
	ctx := context.Background()
	existing := activeAccount(7, "7000", "Fixed Assets", domain.Asset)

	// An inactive child still blocks deactivation; any reference counts.
	child := *activeAccount(8, "7001", "Old Equipment", domain.Asset)
	child.IsActive = false

	suite.mockRepo.On("FindAccountByID", ctx, int64(7)).Return(existing, nil).Once()
	suite.mockRepo.On("FindAccountsByParentID", ctx, int64(7)).Return([]domain.Account{child}, nil).Once()

	result, err := suite.service.DeactivateAccount(ctx, 7)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, services.ErrHasActiveChildren)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccountsByType() {
	ctx := context.Background()
	accounts := []domain.Account{*activeAccount(1, "1000", "Cash", domain.Asset)}

	suite.mockRepo.On("FindAccountsByType", ctx, domain.Asset).Return(accounts, nil).Once()

	listed, err := suite.service.ListAccountsByType(ctx, domain.Asset)

	suite.Require().NoError(err)
	suite.Len(listed, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListActiveAccounts_EmptyResultIsNotNil() {
	ctx := context.Background()

	suite.mockRepo.On("FindAllActiveAccounts", ctx).Return(nil, nil).Once()

	listed, err := suite.service.ListActiveAccounts(ctx)

	suite.Require().NoError(err)
	suite.NotNil(listed)
	suite.Empty(listed)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
