package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ledgerbook/ledgerbook_backend/internal/apperrors"
	"github.com/ledgerbook/ledgerbook_backend/internal/core/domain"
	portsrepo "github.com/ledgerbook/ledgerbook_backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerbook/ledgerbook_backend/internal/core/ports/services"
	"github.com/ledgerbook/ledgerbook_backend/internal/core/services"
	"github.com/ledgerbook/ledgerbook_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockTransactionRepository is a mock type for the TransactionRepository interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByDateRange(ctx context.Context, start, end time.Time, page portsrepo.PageRequest) (*portsrepo.TransactionPage, error) {
	args := m.Called(ctx, start, end, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.TransactionPage), args.Error(1)
}

func (m *MockTransactionRepository) FindAllTransactions(ctx context.Context, page portsrepo.PageRequest) (*portsrepo.TransactionPage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.TransactionPage), args.Error(1)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID int64) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// MockTransactionRepositoryWithTx adds the unit-of-work entry point. WithTx
// runs the callback against the mock itself, so per-write expectations still
// apply inside the "transaction".
type MockTransactionRepositoryWithTx struct {
	MockTransactionRepository
	withTxCalls int
}

func (m *MockTransactionRepositoryWithTx) WithTx(ctx context.Context, fn func(repo portsrepo.TransactionRepository) error) error {
	m.withTxCalls++
	return fn(m)
}

// --- Test Suite Setup ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepositoryWithTx
	mockAccountRepo *MockAccountRepository
	service         portssvc.TransactionSvcFacade
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepositoryWithTx)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockAccountRepo)
}

func (suite *TransactionServiceTestSuite) cashAndRevenue(ctx context.Context) (*domain.Account, *domain.Account) {
	cash := activeAccount(1, "1000", "Cash", domain.Asset)
	revenue := activeAccount(2, "4000", "Sales Revenue", domain.Revenue)
	suite.mockAccountRepo.On("FindAccountByID", ctx, int64(1)).Return(cash, nil)
	suite.mockAccountRepo.On("FindAccountByID", ctx, int64(2)).Return(revenue, nil)
	return cash, revenue
}

func balancedEntryRequests(amount string) []dto.JournalEntryRequest {
	return []dto.JournalEntryRequest{
		{AccountID: 1, EntryType: domain.Debit, Amount: decimal.RequireFromString(amount)},
		{AccountID: 2, EntryType: domain.Credit, Amount: decimal.RequireFromString(amount)},
	}
}

func pendingTransaction(id int64, amount string) *domain.Transaction {
	now := time.Now().UTC()
	txn, err := domain.NewTransaction(now, "Cash sale", "INV-1", []domain.JournalEntry{
		{AccountID: 1, AccountCode: "1000", AccountName: "Cash", EntryType: domain.Debit, Amount: decimal.RequireFromString(amount)},
		{AccountID: 2, AccountCode: "4000", AccountName: "Sales Revenue", EntryType: domain.Credit, Amount: decimal.RequireFromString(amount)},
	}, domain.Pending, now)
	if err != nil {
		panic(err)
	}
	txn.TransactionID = id
	return &txn
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	suite.cashAndRevenue(ctx)

	req := dto.CreateTransactionRequest{
		Description: "Cash sale",
		Date:        time.Now().UTC(),
		Entries:     balancedEntryRequests("100.00"),
	}

	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) {
			txn := args.Get(1).(domain.Transaction)
			suite.Equal(domain.Pending, txn.Status)
			suite.Require().Len(txn.Entries, 2)
			// Account code and name are denormalized onto the entries.
			suite.Equal("1000", txn.Entries[0].AccountCode)
			suite.Equal("Cash", txn.Entries[0].AccountName)
			suite.True(txn.IsBalanced())
		}).
		Return(pendingTransaction(42, "100.00"), nil).Once()

	created, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(int64(42), created.TransactionID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownAccount() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, int64(1)).Return(nil, apperrors.ErrNotFound)

	req := dto.CreateTransactionRequest{
		Description: "Cash sale",
		Date:        time.Now().UTC(),
		Entries:     balancedEntryRequests("100.00"),
	}

	created, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, services.ErrAccountNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InactiveAccount() {
	ctx := context.Background()
	inactive := activeAccount(1, "1000", "Cash", domain.Asset)
	inactive.IsActive = false
	suite.mockAccountRepo.On("FindAccountByID", ctx, int64(1)).Return(inactive, nil)

	req := dto.CreateTransactionRequest{
		Description: "Cash sale",
		Date:        time.Now().UTC(),
		Entries:     balancedEntryRequests("100.00"),
	}

	created, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, services.ErrInactiveAccount)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Unbalanced() {
	ctx := context.Background()
	suite.cashAndRevenue(ctx)

	req := dto.CreateTransactionRequest{
		Description: "Does not balance",
		Date:        time.Now().UTC(),
		Entries: []dto.JournalEntryRequest{
			{AccountID: 1, EntryType: domain.Debit, Amount: decimal.RequireFromString("100.00")},
			{AccountID: 2, EntryType: domain.Credit, Amount: decimal.RequireFromString("60.00")},
		},
	}

	created, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, domain.ErrUnbalanced)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_Success() {
	ctx := context.Background()
	suite.cashAndRevenue(ctx)

	existing := pendingTransaction(42, "100.00")
	suite.mockTxnRepo.On("FindTransactionByID", ctx, int64(42)).Return(existing, nil).Once()

	req := dto.UpdateTransactionRequest{
		Description: "Corrected cash sale",
		Date:        time.Now().UTC(),
		Entries:     balancedEntryRequests("150.00"),
	}

	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) {
			txn := args.Get(1).(domain.Transaction)
			suite.Equal(int64(42), txn.TransactionID)
			suite.Equal(existing.CreatedAt, txn.CreatedAt) // creation time survives the rewrite
			suite.Equal("Corrected cash sale", txn.Description)
			suite.True(txn.TotalAmount().Equal(decimal.RequireFromString("150.00")))
		}).
		Return(existing, nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, 42, req)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NotPending() {
	ctx := context.Background()

	approved := pendingTransaction(42, "100.00")
	approved.Status = domain.Approved
	suite.mockTxnRepo.On("FindTransactionByID", ctx, int64(42)).Return(approved, nil).Once()

	req := dto.UpdateTransactionRequest{
		Description: "Corrected cash sale",
		Date:        time.Now().UTC(),
		Entries:     balancedEntryRequests("150.00"),
	}

	updated, err := suite.service.UpdateTransaction(ctx, 42, req)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, services.ErrTransactionNotPending)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCancelTransaction_Success() {
	ctx := context.Background()

	original := pendingTransaction(42, "100.00")
	suite.mockTxnRepo.On("FindTransactionByID", ctx, int64(42)).Return(original, nil).Once()

	var savedCancelled, savedReversal domain.Transaction
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.TransactionID == 42
	})).Run(func(args mock.Arguments) {
		savedCancelled = args.Get(1).(domain.Transaction)
	}).Return(original, nil).Once()

	reversalResult := pendingTransaction(43, "100.00")
	reversalResult.Status = domain.Approved
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.TransactionID == 0
	})).Run(func(args mock.Arguments) {
		savedReversal = args.Get(1).(domain.Transaction)
	}).Return(reversalResult, nil).Once()

	result, err := suite.service.CancelTransaction(ctx, 42, "entered against the wrong month")

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal("entered against the wrong month", result.CancelReason)

	// Both writes went through the unit of work.
	suite.Equal(1, suite.mockTxnRepo.withTxCalls)

	// The original flips to the terminal cancelled status.
	suite.Equal(domain.Cancelled, savedCancelled.Status)

	// The reversal is approved, keeps the original date, links back through
	// its reference, and carries the same entries with flipped directions.
	suite.Equal(domain.Approved, savedReversal.Status)
	suite.Equal(original.Date, savedReversal.Date)
	suite.Equal(fmt.Sprintf("CANCEL-%d", original.TransactionID), savedReversal.Reference)
	suite.Contains(savedReversal.Description, "Cancelled: ")
	suite.Require().Len(savedReversal.Entries, 2)
	suite.Equal(domain.Credit, savedReversal.Entries[0].EntryType)
	suite.Equal(domain.Debit, savedReversal.Entries[1].EntryType)
	suite.True(savedReversal.Entries[0].Amount.Equal(original.Entries[0].Amount))
	suite.True(savedReversal.IsBalanced())

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCancelTransaction_AlreadyCancelled() {
	ctx := context.Background()

	cancelled := pendingTransaction(42, "100.00")
	cancelled.Status = domain.Cancelled
	suite.mockTxnRepo.On("FindTransactionByID", ctx, int64(42)).Return(cancelled, nil).Once()

	result, err := suite.service.CancelTransaction(ctx, 42, "twice for good measure")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, services.ErrAlreadyCancelled)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCancelTransaction_NotFound() {
	ctx := context.Background()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, int64(404)).Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.CancelTransaction(ctx, 404, "nothing to cancel")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_DefaultsPageSize() {
	ctx := context.Background()

	expectedPage := portsrepo.PageRequest{Page: 0, Size: 20}
	suite.mockTxnRepo.On("FindAllTransactions", ctx, expectedPage).
		Return(&portsrepo.TransactionPage{Transactions: []domain.Transaction{}, Page: 0, Size: 20}, nil).Once()

	result, err := suite.service.ListTransactions(ctx, dto.ListTransactionsParams{Page: -1, Size: 0})

	suite.Require().NoError(err)
	suite.Equal(20, result.Size)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_DateRange() {
	ctx := context.Background()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	page := portsrepo.PageRequest{Page: 0, Size: 10}

	suite.mockTxnRepo.On("FindTransactionsByDateRange", ctx, start, end, page).
		Return(&portsrepo.TransactionPage{Transactions: []domain.Transaction{*pendingTransaction(1, "10.00")}, TotalCount: 1, Page: 0, Size: 10}, nil).Once()

	result, err := suite.service.ListTransactions(ctx, dto.ListTransactionsParams{
		StartDate: &start,
		EndDate:   &end,
		Size:      10,
	})

	suite.Require().NoError(err)
	suite.Equal(int64(1), result.TotalCount)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
