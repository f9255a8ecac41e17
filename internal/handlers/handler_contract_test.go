package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/SscSPs/scaffold_erp/internal/core/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
)

type ContractHandlerTestSuite struct {
	apiSuite
}

func TestContractHandler(t *testing.T) {
	suite.Run(t, new(ContractHandlerTestSuite))
}

func invoicedContract(total, paid int64) *domain.Contract {
	invoice := "INV-000042"
	status := domain.PaymentUnpaid
	if paid > 0 {
		status = domain.PaymentPartial
	}
	if paid == total {
		status = domain.PaymentPaid
	}
	return &domain.Contract{
		ContractID:     uuid.NewString(),
		ContractNumber: "CT-000042",
		CustomerID:     uuid.NewString(),
		ContractType:   domain.ContractRental,
		Status:         domain.ContractInvoiced,
		StartDate:      time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		TotalAmount:    decimal.NewFromInt(total),
		PaidAmount:     decimal.NewFromInt(paid),
		PaymentStatus:  status,
		InvoiceNumber:  &invoice,
	}
}

func (s *ContractHandlerTestSuite) TestSignContract() {
	s.Run("reserves stock", func() {
		contract := invoicedContract(1500, 0)
		contract.Status = domain.ContractSigned
		s.contractService.On("SignContract", mock.Anything, contract.ContractID, testUserID).Return(contract, nil).Once()

		w := s.do(http.MethodPost, "/api/v1/contracts/"+contract.ContractID+"/sign", nil)

		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		var resp domain.Contract
		s.decode(w, &resp)
		s.Equal(domain.ContractSigned, resp.Status)
	})

	s.Run("insufficient stock", func() {
		contractID := uuid.NewString()
		s.contractService.On("SignContract", mock.Anything, contractID, testUserID).
			Return(nil, services.ErrInsufficientStock).Once()

		w := s.do(http.MethodPost, "/api/v1/contracts/"+contractID+"/sign", nil)

		s.Equal(http.StatusConflict, w.Code)
		s.Contains(s.errorMessage(w), "insufficient stock")
	})
}

func (s *ContractHandlerTestSuite) TestCompleteContract_InvalidTransition() {
	contractID := uuid.NewString()
	s.contractService.On("CompleteContract", mock.Anything, contractID, testUserID).
		Return(nil, services.ErrInvalidTransition).Once()

	w := s.do(http.MethodPost, "/api/v1/contracts/"+contractID+"/complete", nil)

	s.Equal(http.StatusConflict, w.Code)
}

func (s *ContractHandlerTestSuite) TestCancelContract_UsesCancelAction() {
	contract := invoicedContract(900, 0)
	contract.Status = domain.ContractCancelled
	s.contractService.On("CancelContract", mock.Anything, contract.ContractID, testUserID).Return(contract, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/contracts/"+contract.ContractID+"/cancel", nil)

	s.Equal(http.StatusOK, w.Code)
	s.contractService.AssertNotCalled(s.T(), "SignContract", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ContractHandlerTestSuite) TestRecordPayment_Success() {
	contract := invoicedContract(1500, 500)
	payment := &domain.Payment{
		PaymentID:   uuid.NewString(),
		ContractID:  contract.ContractID,
		Amount:      decimal.NewFromInt(500),
		PaymentDate: time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		Method:      domain.MethodBankTransfer,
		Reference:   "TRX-881",
	}
	s.contractService.On("RecordPayment", mock.Anything, contract.ContractID, mock.MatchedBy(func(req dto.RecordPaymentRequest) bool {
		return req.Amount.Equal(decimal.NewFromInt(500)) &&
			req.Method == domain.MethodBankTransfer &&
			req.PaymentDate.Equal(time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC))
	}), testUserID).Return(payment, contract, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/contracts/"+contract.ContractID+"/payments",
		`{"amount":"500.00","paymentDate":"2026-05-10","method":"BANK_TRANSFER","reference":"TRX-881"}`)

	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.RecordPaymentResponse
	s.decode(w, &resp)
	s.Equal(payment.PaymentID, resp.Payment.PaymentID)
	s.Equal(domain.PaymentPartial, resp.Contract.PaymentStatus)
	s.True(resp.Contract.Outstanding().Equal(decimal.NewFromInt(1000)))
}

func (s *ContractHandlerTestSuite) TestRecordPayment_InvalidBody() {
	contractID := uuid.NewString()
	tests := []struct {
		name string
		body string
	}{
		{"zero amount", `{"amount":"0","method":"CASH"}`},
		{"negative amount", `{"amount":"-25","method":"CASH"}`},
		{"credit is for purchases only", `{"amount":"25","method":"CREDIT"}`},
		{"missing method", `{"amount":"25"}`},
		{"bad date", `{"amount":"25","method":"CASH","paymentDate":"10/05/2026"}`},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(http.MethodPost, "/api/v1/contracts/"+contractID+"/payments", tt.body)
			s.Equal(http.StatusBadRequest, w.Code)
		})
	}
	s.contractService.AssertNotCalled(s.T(), "RecordPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ContractHandlerTestSuite) TestListPayments_EmptyIsArray() {
	contractID := uuid.NewString()
	s.contractService.On("ListPayments", mock.Anything, contractID, testUserID).Return(nil, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/contracts/"+contractID+"/payments", nil)

	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

func (s *ContractHandlerTestSuite) TestListContracts_Pagination() {
	signed := domain.ContractSigned
	s.contractService.On("ListContracts", mock.Anything, mock.MatchedBy(func(p dto.ListContractsParams) bool {
		return p.Limit == 2 && p.Offset == 4 && p.Status != nil && *p.Status == signed
	}), testUserID).Return([]domain.Contract{*invoicedContract(100, 0), *invoicedContract(200, 0)}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/contracts?status=SIGNED&limit=2&offset=4", nil)

	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ListContractsResponse
	s.decode(w, &resp)
	s.Len(resp.Items, 2)
	s.Equal(2, resp.Limit)
	s.Equal(4, resp.Offset)
}
