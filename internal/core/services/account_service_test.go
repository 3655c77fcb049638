package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerbooks/bookkeeping_core/internal/apperrors"
	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	portssvc "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/services"
	"github.com/ledgerbooks/bookkeeping_core/internal/core/services"
	"github.com/ledgerbooks/bookkeeping_core/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade

	companyID string
	userID    string
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.service = services.NewAccountService(s.mockAccountRepo, domain.StandardPCG, "EUR")
	s.companyID = uuid.NewString()
	s.userID = uuid.NewString()
}

func (s *AccountServiceTestSuite) TestCreateAccountDerivesClassAndType() {
	ctx := context.Background()

	tests := []struct {
		number    string
		wantClass int
		wantType  domain.AccountType
	}{
		{"101000", 1, domain.Equity},
		{"218300", 2, domain.Asset},
		{"371000", 3, domain.Asset},
		{"401000", 4, domain.Liability},
		{"411000", 4, domain.Asset},
		{"512000", 5, domain.Asset},
		{"607000", 6, domain.Expense},
		{"707000", 7, domain.Revenue},
	}

	for _, tt := range tests {
		s.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
			return a.AccountNumber == tt.number && a.Class == tt.wantClass && a.AccountType == tt.wantType
		})).Return(nil).Once()

		account, err := s.service.CreateAccount(ctx, s.companyID, dto.CreateAccountRequest{
			AccountNumber: tt.number,
			Name:          "Compte " + tt.number,
		}, s.userID)

		s.Require().NoError(err, "account %s", tt.number)
		s.Equal(tt.wantClass, account.Class)
		s.Equal(tt.wantType, account.AccountType)
		s.Equal("EUR", account.CurrencyCode)
		s.True(account.Balance.IsZero())
		s.True(account.IsActive)
	}
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestCreateAccountClassEightRejectedUnderPCG() {
	ctx := context.Background()

	_, err := s.service.CreateAccount(ctx, s.companyID, dto.CreateAccountRequest{
		AccountNumber: "801000",
		Name:          "Engagements",
	}, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockAccountRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestCreateAccountClassEightAllowedUnderSYSCOHADA() {
	ctx := context.Background()
	ohada := services.NewAccountService(s.mockAccountRepo, domain.StandardSYSCOHADA, "XOF")

	s.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Class == 8 && a.AccountType == domain.Expense && a.CurrencyCode == "XOF"
	})).Return(nil).Once()

	account, err := ohada.CreateAccount(ctx, s.companyID, dto.CreateAccountRequest{
		AccountNumber: "801000",
		Name:          "Engagements",
	}, s.userID)

	s.Require().NoError(err)
	s.Equal(8, account.Class)
}

func (s *AccountServiceTestSuite) TestCreateAccountInvalidLeadingDigit() {
	ctx := context.Background()

	_, err := s.service.CreateAccount(ctx, s.companyID, dto.CreateAccountRequest{
		AccountNumber: "012000",
		Name:          "Bogus",
	}, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AccountServiceTestSuite) TestCreateAccountDuplicateNumber() {
	ctx := context.Background()

	s.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := s.service.CreateAccount(ctx, s.companyID, dto.CreateAccountRequest{
		AccountNumber: "512000",
		Name:          "Banque",
	}, s.userID)

	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *AccountServiceTestSuite) TestUpdateAccountKeepsNumberAndClass() {
	ctx := context.Background()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		CompanyID:     s.companyID,
		AccountNumber: "512000",
		Name:          "Banque",
		AccountType:   domain.Asset,
		Class:         5,
		IsActive:      true,
	}
	newName := "Banque principale"

	s.mockAccountRepo.On("FindAccountByID", ctx, s.companyID, account.AccountID).Return(&account, nil).Once()
	s.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountNumber == "512000" && a.Class == 5 && a.Name == newName
	})).Return(nil).Once()

	updated, err := s.service.UpdateAccount(ctx, s.companyID, account.AccountID, dto.UpdateAccountRequest{Name: &newName}, s.userID)

	s.Require().NoError(err)
	s.Equal(newName, updated.Name)
	s.Equal(5, updated.Class)
}

func (s *AccountServiceTestSuite) TestDeactivateAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()

	s.mockAccountRepo.On("DeactivateAccount", ctx, s.companyID, accountID, s.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := s.service.DeactivateAccount(ctx, s.companyID, accountID, s.userID)

	s.Require().NoError(err)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
