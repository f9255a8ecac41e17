package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/handlers"
	"github.com/SscSPs/scaffold_erp/internal/middleware"
	"github.com/SscSPs/scaffold_erp/internal/platform/config"
	"github.com/SscSPs/scaffold_erp/internal/utils"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testUserID = "7d3f0a52-8a0e-4c55-9d59-1f6f0e1c2b3a"
)

// apiSuite builds the full router with mocked services. Services a test does not
// configure are never reached by its requests.
type apiSuite struct {
	suite.Suite
	router *gin.Engine

	authService        *MockAuthService
	accountService     *MockAccountService
	journalService     *MockJournalService
	autoPostingService *MockAutoPostingService
	contractService    *MockContractService
	reportingService   *MockReportingService
	payrollService     *MockPayrollService
}

func (s *apiSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.authService = new(MockAuthService)
	s.accountService = new(MockAccountService)
	s.journalService = new(MockJournalService)
	s.autoPostingService = new(MockAutoPostingService)
	s.contractService = new(MockContractService)
	s.reportingService = new(MockReportingService)
	s.payrollService = new(MockPayrollService)

	cfg := &config.Config{
		JWTSecret:      testSecret,
		LoginRateLimit: "3-M",
		IsProduction:   true,
	}
	services := &portssvc.ServiceContainer{
		Auth:        s.authService,
		Account:     s.accountService,
		Journal:     s.journalService,
		AutoPosting: s.autoPostingService,
		Contract:    s.contractService,
		Reporting:   s.reportingService,
		Payroll:     s.payrollService,
	}

	s.router = gin.New()
	s.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewJSONHandler(io.Discard, nil))))
	s.Require().NoError(handlers.RegisterRoutes(s.router, cfg, services))
}

func (s *apiSuite) TearDownTest() {
	s.authService.AssertExpectations(s.T())
	s.accountService.AssertExpectations(s.T())
	s.journalService.AssertExpectations(s.T())
	s.autoPostingService.AssertExpectations(s.T())
	s.contractService.AssertExpectations(s.T())
	s.reportingService.AssertExpectations(s.T())
	s.payrollService.AssertExpectations(s.T())
}

// generateTestToken creates a signed JWT for userID.
func (s *apiSuite) generateTestToken(userID string) string {
	token, err := utils.GenerateJWT(userID, testSecret, time.Hour, "erp-test")
	s.Require().NoError(err)
	return token.Token
}

// do sends a request as testUserID. A string body is sent verbatim, anything else as JSON.
func (s *apiSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	return s.doAs(testUserID, method, path, body)
}

func (s *apiSuite) doAs(userID, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+s.generateTestToken(userID))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *apiSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *apiSuite) errorMessage(w *httptest.ResponseRecorder) string {
	var resp handlers.ErrorResponse
	s.decode(w, &resp)
	return resp.Error
}
