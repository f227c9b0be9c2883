package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/propbooks/propbooks_backend/internal/apperrors"
	"github.com/propbooks/propbooks_backend/internal/core/domain"
	portssvc "github.com/propbooks/propbooks_backend/internal/core/ports/services"
	"github.com/propbooks/propbooks_backend/internal/core/services"
	"github.com/propbooks/propbooks_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	categoryRepo *MockCategoryRepository
	accountRepo  *MockAccountRepository
	auditRepo    *MockAuditRepository
	service      portssvc.CategorySvcFacade
	ctx          context.Context
	actorID      string

	incomeAccount domain.Account
}

func (s *CategoryServiceTestSuite) SetupTest() {
	s.categoryRepo = new(MockCategoryRepository)
	s.accountRepo = new(MockAccountRepository)
	s.auditRepo = new(MockAuditRepository)
	s.service = services.NewCategoryService(s.categoryRepo, s.accountRepo, services.NewAuditRecorder(s.auditRepo))
	s.ctx = context.Background()
	s.actorID = uuid.NewString()

	s.auditRepo.On("SaveAuditRecord", mock.Anything, mock.Anything).Return(nil).Maybe()

	s.incomeAccount = domain.Account{AccountID: uuid.NewString(), Code: "4000", Name: "Rental Income", AccountType: domain.Revenue, IsActive: true}
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}

func (s *CategoryServiceTestSuite) TestCreateCategory_DefaultsToRentalIncome() {
	s.accountRepo.On("FindAccountByCode", s.ctx, domain.SystemAccountRentalIncome).Return(&s.incomeAccount, nil)
	s.categoryRepo.On("SaveCategory", s.ctx, mock.MatchedBy(func(c domain.IncomeCategory) bool {
		return c.Name == "Residential Rent" && c.IncomeAccountID == s.incomeAccount.AccountID && c.IsActive
	})).Return(nil)

	category, err := s.service.CreateCategory(s.ctx, dto.CreateCategoryRequest{
		Name:           "Residential Rent",
		CommissionRate: decimal.NewFromInt(10),
		VATRate:        decimal.NewFromInt(15),
	}, s.actorID)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), s.incomeAccount.AccountID, category.IncomeAccountID)
	s.categoryRepo.AssertExpectations(s.T())
}

func (s *CategoryServiceTestSuite) TestCreateCategory_CommissionRateOutOfRange() {
	_, err := s.service.CreateCategory(s.ctx, dto.CreateCategoryRequest{
		Name:           "Bad Rate",
		CommissionRate: decimal.NewFromInt(101),
	}, s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	s.categoryRepo.AssertNotCalled(s.T(), "SaveCategory", mock.Anything, mock.Anything)
}

func (s *CategoryServiceTestSuite) TestCreateCategory_NegativeVATRate() {
	_, err := s.service.CreateCategory(s.ctx, dto.CreateCategoryRequest{
		Name:    "Bad VAT",
		VATRate: decimal.NewFromInt(-1),
	}, s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *CategoryServiceTestSuite) TestCreateCategory_NonRevenueIncomeAccount() {
	cash := domain.Account{AccountID: uuid.NewString(), Code: "1000", AccountType: domain.Asset, IsActive: true}
	s.accountRepo.On("FindAccountByID", s.ctx, cash.AccountID).Return(&cash, nil)

	_, err := s.service.CreateCategory(s.ctx, dto.CreateCategoryRequest{
		Name:            "Wrong Account",
		IncomeAccountID: cash.AccountID,
	}, s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	assert.ErrorContains(s.T(), err, "not a revenue account")
}

func (s *CategoryServiceTestSuite) TestCreateCategory_InactiveIncomeAccount() {
	inactive := s.incomeAccount
	inactive.IsActive = false
	s.accountRepo.On("FindAccountByID", s.ctx, inactive.AccountID).Return(&inactive, nil)

	_, err := s.service.CreateCategory(s.ctx, dto.CreateCategoryRequest{
		Name:            "Inactive Account",
		IncomeAccountID: inactive.AccountID,
	}, s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}
