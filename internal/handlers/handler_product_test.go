package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/velorashop/velora_backend/internal/core/domain"
	portssvc "github.com/velorashop/velora_backend/internal/core/ports/services"
	"github.com/velorashop/velora_backend/internal/dto"
	"github.com/velorashop/velora_backend/internal/handlers"
	"github.com/velorashop/velora_backend/internal/platform/config"
	"github.com/velorashop/velora_backend/internal/utils"
)

type ProductHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockToken      *MockTokenService
	mockPermission *MockPermissionService
	mockProduct    *MockProductService
}

func (suite *ProductHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.mockToken = new(MockTokenService)
	suite.mockPermission = new(MockPermissionService)
	suite.mockProduct = new(MockProductService)

	container := &portssvc.ServiceContainer{
		User:               new(MockUserService),
		TokenService:       suite.mockToken,
		Wallet:             new(MockWalletService),
		PasswordReset:      new(MockPasswordResetService),
		Permission:         suite.mockPermission,
		GoogleOAuthHandler: new(MockGoogleOAuthService),
		Verification:       new(MockVerificationService),
		Mailer:             new(MockMailerService),
		Product:            suite.mockProduct,
	}

	cfg := &config.Config{
		FrontendBaseURL: "https://shop.example.com",
		IsProduction:    true,
	}

	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *ProductHandlerTestSuite) authorize(userID string) {
	claims := &utils.AccessClaims{UserID: userID, Email: "staff@example.com", Role: string(domain.RoleUser)}
	suite.mockToken.On("ValidateAccessToken", mock.Anything, "test-token").Return(claims, nil).Once()
}

func (suite *ProductHandlerTestSuite) TestListProducts_IsPublic() {
	products := []domain.Product{
		{ProductID: uuid.NewString(), SKU: "VLR-TEE-001", Name: "Velora Tee", Price: decimal.NewFromFloat(29.99)},
	}
	suite.mockProduct.On("ListProducts", mock.Anything, 20, 0).Return(products, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/products", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp []dto.ProductResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("VLR-TEE-001", resp[0].SKU)
	suite.mockToken.AssertNotCalled(suite.T(), "ValidateAccessToken")
}

func (suite *ProductHandlerTestSuite) TestListProducts_ClampsBadLimit() {
	suite.mockProduct.On("ListProducts", mock.Anything, 20, 0).Return([]domain.Product{}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/products?limit=9999", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockProduct.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestCreateProduct_RequiresPermission() {
	userID := uuid.NewString()
	suite.authorize(userID)
	suite.mockPermission.On("HasPermission", mock.Anything, userID, "product", "create").Return(false, nil).Once()

	body, _ := json.Marshal(dto.CreateProductRequest{SKU: "VLR-TEE-001", Name: "Velora Tee", Price: decimal.NewFromInt(30)})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-token")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockProduct.AssertNotCalled(suite.T(), "CreateProduct")
}

func (suite *ProductHandlerTestSuite) TestCreateProduct_Success() {
	userID := uuid.NewString()
	created := &domain.Product{ProductID: uuid.NewString(), SKU: "VLR-TEE-001", Name: "Velora Tee", Price: decimal.NewFromInt(30)}

	suite.authorize(userID)
	suite.mockPermission.On("HasPermission", mock.Anything, userID, "product", "create").Return(true, nil).Once()
	suite.mockProduct.On("CreateProduct", mock.Anything, mock.MatchedBy(func(req dto.CreateProductRequest) bool {
		return req.SKU == "VLR-TEE-001"
	})).Return(created, nil).Once()

	body, _ := json.Marshal(dto.CreateProductRequest{SKU: "VLR-TEE-001", Name: "Velora Tee", Price: decimal.NewFromInt(30)})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-token")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.ProductResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.ProductID, resp.ProductID)
	suite.mockProduct.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestCreateProduct_Unauthenticated() {
	body, _ := json.Marshal(dto.CreateProductRequest{SKU: "VLR-TEE-001", Name: "Velora Tee", Price: decimal.NewFromInt(30)})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockPermission.AssertNotCalled(suite.T(), "HasPermission")
}

func TestProductHandler(t *testing.T) {
	suite.Run(t, new(ProductHandlerTestSuite))
}
