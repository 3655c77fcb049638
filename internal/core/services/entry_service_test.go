package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerbooks/bookkeeping_core/internal/apperrors"
	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/repositories"
	portssvc "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/services"
	"github.com/ledgerbooks/bookkeeping_core/internal/core/services"
	"github.com/ledgerbooks/bookkeeping_core/internal/dto"
)

// --- Mock EntryRepository ---

type MockEntryRepository struct {
	mock.Mock
}

var _ portsrepo.EntryRepository = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryLine), args.Error(1)
}

func (m *MockEntryRepository) FindEntryBySource(ctx context.Context, companyID, sourceCode, sourceEntryNumber string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, sourceCode, sourceEntryNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) ListEntries(ctx context.Context, companyID string, params portsrepo.ListEntriesParams) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		nextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), nextToken, args.Error(2)
}

func (m *MockEntryRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockEntryRepository) PostEntry(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, entry, balanceChanges)
	return args.Error(0)
}

func (m *MockEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockEntryRepository) CancelEntry(ctx context.Context, original domain.JournalEntry, reversing domain.JournalEntry, reversingLines []domain.EntryLine, balanceChanges map[string]decimal.Decimal) (*domain.JournalEntry, error) {
	args := m.Called(ctx, original, reversing, reversingLines, balanceChanges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepository = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, companyID, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, companyID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindJournalByCode(ctx context.Context, companyID, code string) (*domain.Journal, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListJournalCodes(ctx context.Context, companyID string) (map[string]string, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, companyID string, includeInactive bool) ([]domain.Journal, error) {
	args := m.Called(ctx, companyID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) UpdateJournal(ctx context.Context, journal domain.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *MockJournalRepository) CountEntries(ctx context.Context, journalID string) (int64, error) {
	args := m.Called(ctx, journalID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) DeleteJournal(ctx context.Context, journalID string) error {
	args := m.Called(ctx, journalID)
	return args.Error(0)
}

func (m *MockJournalRepository) DeactivateJournal(ctx context.Context, journalID, userID string, now time.Time) error {
	args := m.Called(ctx, journalID, userID, now)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, companyID, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountNumbers(ctx context.Context, companyID string) (map[string]string, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, companyID, accountID, userID string, now time.Time) error {
	args := m.Called(ctx, companyID, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, changes, userID, now)
	return args.Error(0)
}

// --- Test Suite ---

type EntryServiceTestSuite struct {
	suite.Suite
	mockEntryRepo   *MockEntryRepository
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.EntrySvcFacade

	companyID      string
	userID         string
	journal        domain.Journal
	bankAccount    domain.Account
	salesAccount   domain.Account
	expenseAccount domain.Account
}

func (s *EntryServiceTestSuite) SetupTest() {
	s.mockEntryRepo = new(MockEntryRepository)
	s.mockJournalRepo = new(MockJournalRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.service = services.NewEntryService(s.mockEntryRepo, s.mockJournalRepo, s.mockAccountRepo, "EUR")

	s.companyID = uuid.NewString()
	s.userID = uuid.NewString()

	s.journal = domain.Journal{
		JournalID:   uuid.NewString(),
		CompanyID:   s.companyID,
		Code:        "VE",
		Name:        "Ventes",
		JournalType: domain.JournalSale,
		IsActive:    true,
	}
	s.bankAccount = domain.Account{
		AccountID:     uuid.NewString(),
		CompanyID:     s.companyID,
		AccountNumber: "512000",
		AccountType:   domain.Asset,
		Class:         5,
		IsActive:      true,
	}
	s.salesAccount = domain.Account{
		AccountID:     uuid.NewString(),
		CompanyID:     s.companyID,
		AccountNumber: "707000",
		AccountType:   domain.Revenue,
		Class:         7,
		IsActive:      true,
	}
	s.expenseAccount = domain.Account{
		AccountID:     uuid.NewString(),
		CompanyID:     s.companyID,
		AccountNumber: "607000",
		AccountType:   domain.Expense,
		Class:         6,
		IsActive:      true,
	}
}

func (s *EntryServiceTestSuite) accountsMap(accounts ...domain.Account) map[string]domain.Account {
	m := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		m[a.AccountID] = a
	}
	return m
}

func (s *EntryServiceTestSuite) balancedRequest() dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		JournalID: s.journal.JournalID,
		EntryDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: s.bankAccount.AccountID, DebitAmount: decimal.NewFromInt(120)},
			{AccountID: s.salesAccount.AccountID, CreditAmount: decimal.NewFromInt(120)},
		},
	}
}

func (s *EntryServiceTestSuite) TestCreateEntrySuccess() {
	ctx := context.Background()
	req := s.balancedRequest()

	s.mockJournalRepo.On("FindJournalByID", ctx, s.companyID, s.journal.JournalID).Return(&s.journal, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", ctx, s.companyID, mock.AnythingOfType("[]string")).
		Return(s.accountsMap(s.bankAccount, s.salesAccount), nil).Once()
	s.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.EntryLine")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(domain.JournalEntry)
			s.Equal(domain.EntryDraft, entry.Status)
			s.True(entry.TotalAmount.Equal(decimal.NewFromInt(120)))
			lines := args.Get(2).([]domain.EntryLine)
			s.Len(lines, 2)
			s.Equal(1, lines[0].LineOrder)
			s.Equal("EUR", lines[0].CurrencyCode)
		}).
		Return(&domain.JournalEntry{EntryID: uuid.NewString(), EntryNumber: "VE-2024001", Status: domain.EntryDraft}, nil).Once()

	entry, err := s.service.CreateEntry(ctx, s.companyID, req, s.userID)

	s.Require().NoError(err)
	s.Equal("VE-2024001", entry.EntryNumber)
	s.mockEntryRepo.AssertExpectations(s.T())
}

func (s *EntryServiceTestSuite) TestCreateEntryUnbalanced() {
	ctx := context.Background()
	req := s.balancedRequest()
	req.Lines[1].CreditAmount = decimal.NewFromInt(100)

	s.mockJournalRepo.On("FindJournalByID", ctx, s.companyID, s.journal.JournalID).Return(&s.journal, nil).Once()

	_, err := s.service.CreateEntry(ctx, s.companyID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestCreateEntryBothSidesSet() {
	ctx := context.Background()
	req := s.balancedRequest()
	req.Lines[0].CreditAmount = decimal.NewFromInt(120)

	s.mockJournalRepo.On("FindJournalByID", ctx, s.companyID, s.journal.JournalID).Return(&s.journal, nil).Once()

	_, err := s.service.CreateEntry(ctx, s.companyID, req, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *EntryServiceTestSuite) TestCreateEntryInactiveJournal() {
	ctx := context.Background()
	inactive := s.journal
	inactive.IsActive = false

	s.mockJournalRepo.On("FindJournalByID", ctx, s.companyID, s.journal.JournalID).Return(&inactive, nil).Once()

	_, err := s.service.CreateEntry(ctx, s.companyID, s.balancedRequest(), s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *EntryServiceTestSuite) TestCreateEntryInactiveAccount() {
	ctx := context.Background()
	inactiveBank := s.bankAccount
	inactiveBank.IsActive = false

	s.mockJournalRepo.On("FindJournalByID", ctx, s.companyID, s.journal.JournalID).Return(&s.journal, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", ctx, s.companyID, mock.AnythingOfType("[]string")).
		Return(s.accountsMap(inactiveBank, s.salesAccount), nil).Once()

	_, err := s.service.CreateEntry(ctx, s.companyID, s.balancedRequest(), s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *EntryServiceTestSuite) TestCreateEntryRetriesOnCollision() {
	ctx := context.Background()

	s.mockJournalRepo.On("FindJournalByID", ctx, s.companyID, s.journal.JournalID).Return(&s.journal, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", ctx, s.companyID, mock.AnythingOfType("[]string")).
		Return(s.accountsMap(s.bankAccount, s.salesAccount), nil).Once()
	s.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.EntryLine")).
		Return(nil, apperrors.ErrCollision).Twice()
	s.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.EntryLine")).
		Return(&domain.JournalEntry{EntryID: uuid.NewString(), EntryNumber: "VE-2024003"}, nil).Once()

	entry, err := s.service.CreateEntry(ctx, s.companyID, s.balancedRequest(), s.userID)

	s.Require().NoError(err)
	s.Equal("VE-2024003", entry.EntryNumber)
	s.mockEntryRepo.AssertNumberOfCalls(s.T(), "SaveEntry", 3)
}

func (s *EntryServiceTestSuite) TestCreateEntryCollisionExhausted() {
	ctx := context.Background()

	s.mockJournalRepo.On("FindJournalByID", ctx, s.companyID, s.journal.JournalID).Return(&s.journal, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", ctx, s.companyID, mock.AnythingOfType("[]string")).
		Return(s.accountsMap(s.bankAccount, s.salesAccount), nil).Once()
	s.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.EntryLine")).
		Return(nil, apperrors.ErrCollision).Times(3)

	_, err := s.service.CreateEntry(ctx, s.companyID, s.balancedRequest(), s.userID)

	s.ErrorIs(err, apperrors.ErrCollision)
	s.mockEntryRepo.AssertNumberOfCalls(s.T(), "SaveEntry", 3)
}

func (s *EntryServiceTestSuite) TestPostEntrySuccess() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := domain.JournalEntry{
		EntryID:     entryID,
		CompanyID:   s.companyID,
		JournalID:   s.journal.JournalID,
		EntryNumber: "VE-2024001",
		Status:      domain.EntryDraft,
	}
	lines := []domain.EntryLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: s.bankAccount.AccountID, DebitAmount: decimal.NewFromInt(120), LineOrder: 1},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: s.salesAccount.AccountID, CreditAmount: decimal.NewFromInt(120), LineOrder: 2},
	}

	s.mockEntryRepo.On("FindEntryByID", ctx, s.companyID, entryID).Return(&draft, nil).Once()
	s.mockEntryRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", ctx, s.companyID, mock.AnythingOfType("[]string")).
		Return(s.accountsMap(s.bankAccount, s.salesAccount), nil).Once()
	s.mockEntryRepo.On("PostEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.EntryPosted && e.PostedAt != nil && e.PostedBy == s.userID
	}), mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		// Debit on an asset raises it, credit on revenue raises it too.
		return changes[s.bankAccount.AccountID].Equal(decimal.NewFromInt(120)) &&
			changes[s.salesAccount.AccountID].Equal(decimal.NewFromInt(120))
	})).Return(nil).Once()

	posted, err := s.service.PostEntry(ctx, s.companyID, entryID, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.EntryPosted, posted.Status)
	s.mockEntryRepo.AssertExpectations(s.T())
}

func (s *EntryServiceTestSuite) TestPostEntryAlreadyPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := domain.JournalEntry{EntryID: entryID, CompanyID: s.companyID, Status: domain.EntryPosted}

	s.mockEntryRepo.On("FindEntryByID", ctx, s.companyID, entryID).Return(&posted, nil).Once()

	_, err := s.service.PostEntry(ctx, s.companyID, entryID, s.userID)

	s.ErrorIs(err, apperrors.ErrImmutableState)
	s.mockEntryRepo.AssertNotCalled(s.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestUpdateEntryPostedIsImmutable() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := domain.JournalEntry{EntryID: entryID, CompanyID: s.companyID, Status: domain.EntryPosted}

	s.mockEntryRepo.On("FindEntryByID", ctx, s.companyID, entryID).Return(&posted, nil).Once()

	newDesc := "rewritten"
	_, err := s.service.UpdateEntry(ctx, s.companyID, entryID, dto.UpdateEntryRequest{Description: &newDesc}, s.userID)

	s.ErrorIs(err, apperrors.ErrImmutableState)
}

func (s *EntryServiceTestSuite) TestUpdateEntryDraftSuccess() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := domain.JournalEntry{EntryID: entryID, CompanyID: s.companyID, Status: domain.EntryDraft}
	lines := []domain.EntryLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: s.bankAccount.AccountID, DebitAmount: decimal.NewFromInt(80), LineOrder: 1},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: s.salesAccount.AccountID, CreditAmount: decimal.NewFromInt(80), LineOrder: 2},
	}

	s.mockEntryRepo.On("FindEntryByID", ctx, s.companyID, entryID).Return(&draft, nil).Once()
	s.mockEntryRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", ctx, s.companyID, mock.AnythingOfType("[]string")).
		Return(s.accountsMap(s.bankAccount, s.salesAccount), nil).Once()
	s.mockEntryRepo.On("UpdateEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), lines).Return(nil).Once()

	newDesc := "march invoice"
	updated, err := s.service.UpdateEntry(ctx, s.companyID, entryID, dto.UpdateEntryRequest{Description: &newDesc}, s.userID)

	s.Require().NoError(err)
	s.Equal("march invoice", updated.Description)
	s.mockEntryRepo.AssertExpectations(s.T())
}

func (s *EntryServiceTestSuite) TestDeleteEntryDraft() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := domain.JournalEntry{EntryID: entryID, CompanyID: s.companyID, Status: domain.EntryDraft}

	s.mockEntryRepo.On("FindEntryByID", ctx, s.companyID, entryID).Return(&draft, nil).Once()
	s.mockEntryRepo.On("DeleteEntry", ctx, entryID).Return(nil).Once()

	err := s.service.DeleteEntry(ctx, s.companyID, entryID, s.userID)

	s.Require().NoError(err)
	s.mockEntryRepo.AssertExpectations(s.T())
}

func (s *EntryServiceTestSuite) TestDeleteEntryPostedFails() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := domain.JournalEntry{EntryID: entryID, CompanyID: s.companyID, Status: domain.EntryPosted}

	s.mockEntryRepo.On("FindEntryByID", ctx, s.companyID, entryID).Return(&posted, nil).Once()

	err := s.service.DeleteEntry(ctx, s.companyID, entryID, s.userID)

	s.ErrorIs(err, apperrors.ErrImmutableState)
	s.mockEntryRepo.AssertNotCalled(s.T(), "DeleteEntry", mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestCancelEntryMirrorsLines() {
	ctx := context.Background()
	entryID := uuid.NewString()
	postedAt := time.Now()
	original := domain.JournalEntry{
		EntryID:     entryID,
		CompanyID:   s.companyID,
		JournalID:   s.journal.JournalID,
		EntryNumber: "VE-2024001",
		Status:      domain.EntryPosted,
		TotalAmount: decimal.NewFromInt(120),
		PostedAt:    &postedAt,
	}
	lines := []domain.EntryLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: s.bankAccount.AccountID, DebitAmount: decimal.NewFromInt(120), LineOrder: 1},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: s.salesAccount.AccountID, CreditAmount: decimal.NewFromInt(120), LineOrder: 2},
	}

	s.mockEntryRepo.On("FindEntryByID", ctx, s.companyID, entryID).Return(&original, nil).Once()
	s.mockEntryRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", ctx, s.companyID, mock.AnythingOfType("[]string")).
		Return(s.accountsMap(s.bankAccount, s.salesAccount), nil).Once()
	s.mockEntryRepo.On("CancelEntry", ctx, original,
		mock.MatchedBy(func(rev domain.JournalEntry) bool {
			return rev.Status == domain.EntryPosted && rev.OriginalEntryID != nil && *rev.OriginalEntryID == entryID
		}),
		mock.MatchedBy(func(revLines []domain.EntryLine) bool {
			// Debits and credits swap sides.
			return len(revLines) == 2 &&
				revLines[0].CreditAmount.Equal(decimal.NewFromInt(120)) &&
				revLines[1].DebitAmount.Equal(decimal.NewFromInt(120))
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes[s.bankAccount.AccountID].Equal(decimal.NewFromInt(-120)) &&
				changes[s.salesAccount.AccountID].Equal(decimal.NewFromInt(-120))
		})).
		Return(&domain.JournalEntry{EntryID: uuid.NewString(), EntryNumber: "VE-2024002", Status: domain.EntryPosted}, nil).Once()

	reversing, err := s.service.CancelEntry(ctx, s.companyID, entryID, dto.CancelEntryRequest{Reason: "wrong amount"}, s.userID)

	s.Require().NoError(err)
	s.Equal("VE-2024002", reversing.EntryNumber)
	s.mockEntryRepo.AssertExpectations(s.T())
}

func (s *EntryServiceTestSuite) TestCancelEntryDraftFails() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := domain.JournalEntry{EntryID: entryID, CompanyID: s.companyID, Status: domain.EntryDraft}

	s.mockEntryRepo.On("FindEntryByID", ctx, s.companyID, entryID).Return(&draft, nil).Once()

	_, err := s.service.CancelEntry(ctx, s.companyID, entryID, dto.CancelEntryRequest{}, s.userID)

	s.ErrorIs(err, apperrors.ErrImmutableState)
	s.mockEntryRepo.AssertNotCalled(s.T(), "CancelEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestCancelEntryToleratesDeactivatedAccount() {
	ctx := context.Background()
	entryID := uuid.NewString()
	original := domain.JournalEntry{
		EntryID:     entryID,
		CompanyID:   s.companyID,
		JournalID:   s.journal.JournalID,
		EntryNumber: "VE-2024001",
		Status:      domain.EntryPosted,
		TotalAmount: decimal.NewFromInt(120),
	}
	lines := []domain.EntryLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: s.bankAccount.AccountID, DebitAmount: decimal.NewFromInt(120), LineOrder: 1},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: s.salesAccount.AccountID, CreditAmount: decimal.NewFromInt(120), LineOrder: 2},
	}
	deactivatedBank := s.bankAccount
	deactivatedBank.IsActive = false

	s.mockEntryRepo.On("FindEntryByID", ctx, s.companyID, entryID).Return(&original, nil).Once()
	s.mockEntryRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()
	// Both lookups return the deactivated account; the second one is the
	// fallback that ignores the active flag.
	s.mockAccountRepo.On("FindAccountsByIDs", ctx, s.companyID, mock.AnythingOfType("[]string")).
		Return(s.accountsMap(deactivatedBank, s.salesAccount), nil).Twice()
	s.mockEntryRepo.On("CancelEntry", ctx, original, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.EntryLine"), mock.Anything).
		Return(&domain.JournalEntry{EntryID: uuid.NewString(), EntryNumber: "VE-2024002"}, nil).Once()

	_, err := s.service.CancelEntry(ctx, s.companyID, entryID, dto.CancelEntryRequest{}, s.userID)

	s.Require().NoError(err)
	s.mockAccountRepo.AssertNumberOfCalls(s.T(), "FindAccountsByIDs", 2)
}

func TestEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EntryServiceTestSuite))
}
