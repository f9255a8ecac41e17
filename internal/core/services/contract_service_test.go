package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/SscSPs/scaffold_erp/internal/core/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/events"
)

const (
	frameID = "7d1c4a52-8e0b-4e41-9f0e-3a9b1f6c2a01"
	braceID = "7d1c4a52-8e0b-4e41-9f0e-3a9b1f6c2a02"
)

type ContractServiceTestSuite struct {
	suite.Suite
	contractRepo *MockContractRepository
	customerRepo *MockCustomerRepository
	scaffoldRepo *MockScaffoldRepository
	publisher    *recordingPublisher
	service      *services.ContractService
	ctx          context.Context
	now          time.Time
}

func (s *ContractServiceTestSuite) SetupTest() {
	s.contractRepo = new(MockContractRepository)
	s.customerRepo = new(MockCustomerRepository)
	s.scaffoldRepo = new(MockScaffoldRepository)
	s.publisher = &recordingPublisher{}
	s.now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s.service = services.NewContractService(s.contractRepo, s.customerRepo, s.scaffoldRepo, s.publisher,
		services.WithClock(fixedClock(s.now)))
	s.ctx = context.Background()
}

func TestContractServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ContractServiceTestSuite))
}

func (s *ContractServiceTestSuite) scaffolds() map[string]domain.Scaffold {
	return map[string]domain.Scaffold{
		frameID: {ScaffoldID: frameID, Code: "FRM-170", IsActive: true, TotalQuantity: 100, AvailableQuantity: 80,
			DailyRentalPrice: decimal.NewFromInt(5000), SalePrice: decimal.NewFromInt(450000), UnitCost: decimal.NewFromInt(300000)},
		braceID: {ScaffoldID: braceID, Code: "CB-220", IsActive: true, TotalQuantity: 200, AvailableQuantity: 200,
			DailyRentalPrice: decimal.NewFromInt(1000), SalePrice: decimal.NewFromInt(90000), UnitCost: decimal.NewFromInt(60000)},
	}
}

func (s *ContractServiceTestSuite) TestCreateContract_PricesRentalPerDay() {
	s.customerRepo.On("FindCustomerByID", s.ctx, "cust-1").Return(&domain.Customer{CustomerID: "cust-1", IsActive: true}, nil)
	s.scaffoldRepo.On("FindScaffoldsByIDs", s.ctx, []string{frameID, braceID}).Return(s.scaffolds(), nil)
	s.contractRepo.On("SaveContract", s.ctx, mock.AnythingOfType("domain.Contract")).Return(nil)

	override := decimal.NewFromInt(800)
	contract, err := s.service.CreateContract(s.ctx, dto.CreateContractRequest{
		CustomerID:   "cust-1",
		ContractType: domain.ContractRental,
		StartDate:    dto.NewDate(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:      dto.NewDate(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)),
		Items: []dto.ContractItemRequest{
			{ScaffoldID: frameID, Quantity: 10},
			{ScaffoldID: braceID, Quantity: 20, UnitPrice: &override},
		},
		Discount: decimal.NewFromInt(10000),
	}, "user-1")

	s.Require().NoError(err)
	// 10 days: 10*5000*10 + 20*800*10 = 500000 + 160000
	s.True(decimal.NewFromInt(660000).Equal(contract.Subtotal), contract.Subtotal.String())
	s.True(decimal.NewFromInt(650000).Equal(contract.TotalAmount), contract.TotalAmount.String())
	s.Equal(domain.ContractDraft, contract.Status)
	s.Equal(domain.PaymentUnpaid, contract.PaymentStatus)
	s.Require().Len(contract.Items, 2)
	s.Equal(10, contract.Items[0].Days)
	s.Equal(contract.ContractID, contract.Items[1].ContractID)
	s.Contains(contract.ContractNumber, "CT-")
}

func (s *ContractServiceTestSuite) TestCreateContract_RentalNeedsEndDate() {
	s.customerRepo.On("FindCustomerByID", s.ctx, "cust-1").Return(&domain.Customer{CustomerID: "cust-1", IsActive: true}, nil)

	_, err := s.service.CreateContract(s.ctx, dto.CreateContractRequest{
		CustomerID:   "cust-1",
		ContractType: domain.ContractRental,
		StartDate:    dto.NewDate(s.now),
		Items:        []dto.ContractItemRequest{{ScaffoldID: frameID, Quantity: 1}},
	}, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.contractRepo.AssertNotCalled(s.T(), "SaveContract", mock.Anything, mock.Anything)
}

func (s *ContractServiceTestSuite) TestCreateContract_DiscountAboveSubtotal() {
	s.customerRepo.On("FindCustomerByID", s.ctx, "cust-1").Return(&domain.Customer{CustomerID: "cust-1", IsActive: true}, nil)
	s.scaffoldRepo.On("FindScaffoldsByIDs", s.ctx, []string{frameID}).Return(s.scaffolds(), nil)

	_, err := s.service.CreateContract(s.ctx, dto.CreateContractRequest{
		CustomerID:   "cust-1",
		ContractType: domain.ContractSale,
		StartDate:    dto.NewDate(s.now),
		Items:        []dto.ContractItemRequest{{ScaffoldID: frameID, Quantity: 1}},
		Discount:     decimal.NewFromInt(450001),
	}, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ContractServiceTestSuite) TestCreateContract_InactiveCustomer() {
	s.customerRepo.On("FindCustomerByID", s.ctx, "cust-2").Return(&domain.Customer{CustomerID: "cust-2"}, nil)

	_, err := s.service.CreateContract(s.ctx, dto.CreateContractRequest{
		CustomerID:   "cust-2",
		ContractType: domain.ContractSale,
		StartDate:    dto.NewDate(s.now),
		Items:        []dto.ContractItemRequest{{ScaffoldID: frameID, Quantity: 1}},
	}, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func draftRental() *domain.Contract {
	return &domain.Contract{
		ContractID:     "c-1",
		ContractNumber: "CT-20260301-AAAA",
		ContractType:   domain.ContractRental,
		Status:         domain.ContractDraft,
		Items: []domain.ContractItem{
			{ScaffoldID: frameID, Quantity: 4},
			{ScaffoldID: braceID, Quantity: 6},
			{ScaffoldID: frameID, Quantity: 3},
		},
		TotalAmount: decimal.NewFromInt(100000),
		PaidAmount:  decimal.Zero,
	}
}

func (s *ContractServiceTestSuite) TestSignContract_ReservesAggregatedQuantities() {
	s.contractRepo.On("FindContractByID", s.ctx, "c-1").Return(draftRental(), nil)
	s.contractRepo.On("TransitionContract", s.ctx,
		mock.MatchedBy(func(c domain.Contract) bool { return c.Status == domain.ContractSigned && c.SignedAt != nil }),
		domain.ContractDraft,
		mock.MatchedBy(func(stock []domain.StockChange) bool {
			return len(stock) == 2 &&
				stock[0].ScaffoldID == frameID && stock[0].AvailableDelta == -7 && stock[0].TotalDelta == 0 &&
				stock[1].ScaffoldID == braceID && stock[1].AvailableDelta == -6 &&
				stock[0].Reason == domain.MovementRentalOut
		})).Return(nil)

	contract, err := s.service.SignContract(s.ctx, "c-1", "user-1")

	s.Require().NoError(err)
	s.Equal(domain.ContractSigned, contract.Status)
	s.contractRepo.AssertExpectations(s.T())
}

func (s *ContractServiceTestSuite) TestSignContract_ShortageIsConflict() {
	s.contractRepo.On("FindContractByID", s.ctx, "c-1").Return(draftRental(), nil)
	s.contractRepo.On("TransitionContract", s.ctx, mock.Anything, domain.ContractDraft, mock.Anything).
		Return(services.ErrInsufficientStock)

	_, err := s.service.SignContract(s.ctx, "c-1", "user-1")

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *ContractServiceTestSuite) TestSignContract_OnlyFromDraft() {
	c := draftRental()
	c.Status = domain.ContractInvoiced
	s.contractRepo.On("FindContractByID", s.ctx, "c-1").Return(c, nil)

	_, err := s.service.SignContract(s.ctx, "c-1", "user-1")

	s.ErrorIs(err, apperrors.ErrConflict)
	s.contractRepo.AssertNotCalled(s.T(), "TransitionContract", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ContractServiceTestSuite) TestInvoiceContract_PublishesEvent() {
	c := draftRental()
	c.Status = domain.ContractSigned
	s.contractRepo.On("FindContractByID", s.ctx, "c-1").Return(c, nil)
	s.contractRepo.On("TransitionContract", s.ctx, mock.Anything, domain.ContractSigned, []domain.StockChange(nil)).Return(nil)

	contract, err := s.service.InvoiceContract(s.ctx, "c-1", "user-1")

	s.Require().NoError(err)
	s.Require().NotNil(contract.InvoiceNumber)
	s.Require().Len(s.publisher.published, 1)
	env := s.publisher.published[0]
	s.Equal(events.ContractInvoiced, env.Type)
	s.Equal("c-1", env.SourceID)
	s.True(decimal.NewFromInt(100000).Equal(env.Amount))
	s.Equal(*contract.InvoiceNumber, env.Reference)
	s.Equal(string(domain.ContractRental), env.Attr(events.AttrContractType))
}

func (s *ContractServiceTestSuite) TestRecordPayment_RejectsOverpayment() {
	c := draftRental()
	c.Status = domain.ContractInvoiced
	c.PaidAmount = decimal.NewFromInt(60000)
	s.contractRepo.On("FindContractByID", s.ctx, "c-1").Return(c, nil)

	_, _, err := s.service.RecordPayment(s.ctx, "c-1", dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(40001),
		Method: domain.MethodCash,
	}, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.contractRepo.AssertNotCalled(s.T(), "AddPayment", mock.Anything, mock.Anything)
	s.Empty(s.publisher.published)
}

func (s *ContractServiceTestSuite) TestRecordPayment_SettlesAndPublishes() {
	c := draftRental()
	c.Status = domain.ContractInvoiced
	inv := "INV-20260305-BBBB"
	c.InvoiceNumber = &inv
	c.PaidAmount = decimal.NewFromInt(60000)
	updated := *c
	updated.PaidAmount = c.TotalAmount
	updated.PaymentStatus = domain.PaymentPaid

	s.contractRepo.On("FindContractByID", s.ctx, "c-1").Return(c, nil)
	s.contractRepo.On("AddPayment", s.ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.ContractID == "c-1" && p.Amount.Equal(decimal.NewFromInt(40000)) &&
			p.PaymentDate.Equal(domain.DateOnly(s.now))
	})).Return(&updated, nil)

	payment, contract, err := s.service.RecordPayment(s.ctx, "c-1", dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(40000),
		Method: domain.MethodBankTransfer,
	}, "user-1")

	s.Require().NoError(err)
	s.Equal(domain.PaymentPaid, contract.PaymentStatus)
	s.Require().Len(s.publisher.published, 1)
	env := s.publisher.published[0]
	s.Equal(events.PaymentReceived, env.Type)
	s.Equal(payment.PaymentID, env.SourceID)
	s.Equal(string(domain.MethodBankTransfer), env.Method)
	s.Equal(inv, env.Reference)
}

func (s *ContractServiceTestSuite) TestRecordPayment_RejectsCreditMethod() {
	_, _, err := s.service.RecordPayment(s.ctx, "c-1", dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(1),
		Method: domain.MethodCredit,
	}, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ContractServiceTestSuite) TestCompleteContract_SaleRemovesStockAndPublishesCost() {
	c := draftRental()
	c.ContractType = domain.ContractSale
	c.Status = domain.ContractInvoiced
	s.contractRepo.On("FindContractByID", s.ctx, "c-1").Return(c, nil)
	s.contractRepo.On("TransitionContract", s.ctx, mock.Anything, domain.ContractInvoiced,
		mock.MatchedBy(func(stock []domain.StockChange) bool {
			return len(stock) == 2 && stock[0].TotalDelta == -7 && stock[0].AvailableDelta == 0 &&
				stock[0].Reason == domain.MovementSale
		})).Return(nil)
	s.scaffoldRepo.On("FindScaffoldsByIDs", s.ctx, mock.Anything).Return(s.scaffolds(), nil)

	contract, err := s.service.CompleteContract(s.ctx, "c-1", "user-1")

	s.Require().NoError(err)
	s.Equal(domain.ContractCompleted, contract.Status)
	s.Require().Len(s.publisher.published, 1)
	env := s.publisher.published[0]
	s.Equal(events.SaleDelivered, env.Type)
	// 7 frames at 300000 + 6 braces at 60000
	s.True(decimal.NewFromInt(2460000).Equal(env.Amount), env.Amount.String())
}

func (s *ContractServiceTestSuite) TestCancelContract_SignedReleasesReservation() {
	c := draftRental()
	c.Status = domain.ContractSigned
	s.contractRepo.On("FindContractByID", s.ctx, "c-1").Return(c, nil)
	s.contractRepo.On("TransitionContract", s.ctx, mock.Anything, domain.ContractSigned,
		mock.MatchedBy(func(stock []domain.StockChange) bool {
			return len(stock) == 2 && stock[0].AvailableDelta == 7 && stock[0].Reason == domain.MovementRentalReturn
		})).Return(nil)

	contract, err := s.service.CancelContract(s.ctx, "c-1", "user-1")

	s.Require().NoError(err)
	s.Equal(domain.ContractCancelled, contract.Status)
	s.contractRepo.AssertExpectations(s.T())
}

func (s *ContractServiceTestSuite) TestCancelContract_InvoicedIsConflict() {
	c := draftRental()
	c.Status = domain.ContractInvoiced
	s.contractRepo.On("FindContractByID", s.ctx, "c-1").Return(c, nil)

	_, err := s.service.CancelContract(s.ctx, "c-1", "user-1")

	s.ErrorIs(err, apperrors.ErrConflict)
}
