package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/repositories"
	portssvc "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/services"
	"github.com/ledgerbooks/bookkeeping_core/internal/core/services"
)

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, companyID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetBalanceSheetData(ctx context.Context, companyID string, asOf time.Time) (assets, liabilities, equity []domain.AccountAmount, err error) {
	args := m.Called(ctx, companyID, asOf)
	get := func(i int) []domain.AccountAmount {
		if args.Get(i) == nil {
			return nil
		}
		return args.Get(i).([]domain.AccountAmount)
	}
	return get(0), get(1), get(2), args.Error(3)
}

func (m *MockReportingRepository) GetIncomeStatementData(ctx context.Context, companyID string, from, to time.Time) (revenue, expenses []domain.AccountAmount, err error) {
	args := m.Called(ctx, companyID, from, to)
	get := func(i int) []domain.AccountAmount {
		if args.Get(i) == nil {
			return nil
		}
		return args.Get(i).([]domain.AccountAmount)
	}
	return get(0), get(1), args.Error(2)
}

// --- Test Suite ---

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	service           portssvc.ReportingSvc

	companyID string
	asOf      time.Time
}

func (s *ReportingServiceTestSuite) SetupTest() {
	s.mockReportingRepo = new(MockReportingRepository)
	s.service = services.NewReportingService(s.mockReportingRepo)
	s.companyID = uuid.NewString()
	s.asOf = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
}

func (s *ReportingServiceTestSuite) TestTrialBalanceTotalsAndBalance() {
	ctx := context.Background()
	rows := []domain.TrialBalanceRow{
		{AccountNumber: "512000", AccountType: domain.Asset, Class: 5, DebitTotal: decimal.NewFromInt(1000), CreditTotal: decimal.NewFromInt(200)},
		{AccountNumber: "707000", AccountType: domain.Revenue, Class: 7, DebitTotal: decimal.Zero, CreditTotal: decimal.NewFromInt(800)},
	}

	s.mockReportingRepo.On("GetTrialBalanceData", ctx, s.companyID, s.asOf).Return(rows, nil).Once()

	report, err := s.service.GetTrialBalance(ctx, s.companyID, s.asOf)

	s.Require().NoError(err)
	s.True(report.TotalDebit.Equal(decimal.NewFromInt(1000)))
	s.True(report.TotalCredit.Equal(decimal.NewFromInt(1000)))
	s.True(report.IsBalanced)
	s.Len(report.Rows, 2)
}

func (s *ReportingServiceTestSuite) TestTrialBalanceDetectsImbalance() {
	ctx := context.Background()
	rows := []domain.TrialBalanceRow{
		{AccountNumber: "512000", DebitTotal: decimal.NewFromInt(1000), CreditTotal: decimal.Zero},
		{AccountNumber: "707000", DebitTotal: decimal.Zero, CreditTotal: decimal.NewFromInt(999)},
	}

	s.mockReportingRepo.On("GetTrialBalanceData", ctx, s.companyID, s.asOf).Return(rows, nil).Once()

	report, err := s.service.GetTrialBalance(ctx, s.companyID, s.asOf)

	s.Require().NoError(err)
	s.False(report.IsBalanced)
}

func (s *ReportingServiceTestSuite) TestBalanceSheetIdentityWithRetainedEarnings() {
	ctx := context.Background()
	assets := []domain.AccountAmount{
		{AccountNumber: "218300", Class: 2, NetAmount: decimal.NewFromInt(500)},
		{AccountNumber: "512000", Class: 5, NetAmount: decimal.NewFromInt(700)},
	}
	liabilities := []domain.AccountAmount{
		{AccountNumber: "164000", Class: 1, NetAmount: decimal.NewFromInt(300)},
		{AccountNumber: "401000", Class: 4, NetAmount: decimal.NewFromInt(200)},
	}
	equity := []domain.AccountAmount{
		{AccountNumber: "101000", Class: 1, NetAmount: decimal.NewFromInt(400)},
	}
	revenue := []domain.AccountAmount{
		{AccountNumber: "707000", Class: 7, NetAmount: decimal.NewFromInt(900)},
	}
	expenses := []domain.AccountAmount{
		{AccountNumber: "607000", Class: 6, NetAmount: decimal.NewFromInt(600)},
	}

	s.mockReportingRepo.On("GetBalanceSheetData", ctx, s.companyID, s.asOf).Return(assets, liabilities, equity, nil).Once()
	s.mockReportingRepo.On("GetIncomeStatementData", ctx, s.companyID, time.Time{}, s.asOf).Return(revenue, expenses, nil).Once()

	report, err := s.service.GetBalanceSheet(ctx, s.companyID, s.asOf)

	s.Require().NoError(err)
	s.True(report.TotalAssets.Equal(decimal.NewFromInt(1200)))
	s.True(report.TotalLiabilities.Equal(decimal.NewFromInt(500)))
	s.True(report.RetainedEarnings.Equal(decimal.NewFromInt(300)))
	// 400 of contributed equity plus 300 retained.
	s.True(report.TotalEquity.Equal(decimal.NewFromInt(700)))
	s.True(report.IdentityHolds)

	// Fixed assets are non-current, bank is current.
	s.Len(report.Assets.NonCurrent, 1)
	s.Len(report.Assets.Current, 1)
	// Borrowings are non-current, payables current.
	s.Len(report.Liabilities.NonCurrent, 1)
	s.Len(report.Liabilities.Current, 1)
}

func (s *ReportingServiceTestSuite) TestBalanceSheetIdentityBrokenIsReported() {
	ctx := context.Background()
	assets := []domain.AccountAmount{{AccountNumber: "512000", Class: 5, NetAmount: decimal.NewFromInt(1000)}}
	liabilities := []domain.AccountAmount{{AccountNumber: "401000", Class: 4, NetAmount: decimal.NewFromInt(100)}}

	s.mockReportingRepo.On("GetBalanceSheetData", ctx, s.companyID, s.asOf).Return(assets, liabilities, []domain.AccountAmount{}, nil).Once()
	s.mockReportingRepo.On("GetIncomeStatementData", ctx, s.companyID, time.Time{}, s.asOf).Return([]domain.AccountAmount{}, []domain.AccountAmount{}, nil).Once()

	report, err := s.service.GetBalanceSheet(ctx, s.companyID, s.asOf)

	s.Require().NoError(err)
	s.False(report.IdentityHolds)
}

func (s *ReportingServiceTestSuite) TestIncomeStatement() {
	ctx := context.Background()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	revenue := []domain.AccountAmount{
		{AccountNumber: "707000", Class: 7, NetAmount: decimal.NewFromInt(900)},
		{AccountNumber: "706000", Class: 7, NetAmount: decimal.NewFromInt(100)},
	}
	expenses := []domain.AccountAmount{
		{AccountNumber: "607000", Class: 6, NetAmount: decimal.NewFromInt(400)},
	}

	s.mockReportingRepo.On("GetIncomeStatementData", ctx, s.companyID, from, s.asOf).Return(revenue, expenses, nil).Once()

	report, err := s.service.GetIncomeStatement(ctx, s.companyID, from, s.asOf)

	s.Require().NoError(err)
	s.True(report.TotalRevenue.Equal(decimal.NewFromInt(1000)))
	s.True(report.TotalExpenses.Equal(decimal.NewFromInt(400)))
	s.True(report.NetIncome.Equal(decimal.NewFromInt(600)))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
