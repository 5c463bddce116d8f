package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/velorashop/velora_backend/internal/apperrors"
	"github.com/velorashop/velora_backend/internal/core/domain"
	portsrepo "github.com/velorashop/velora_backend/internal/core/ports/repositories"
	portssvc "github.com/velorashop/velora_backend/internal/core/ports/services"
	"github.com/velorashop/velora_backend/internal/core/services"
	"github.com/velorashop/velora_backend/internal/dto"
)

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	var product *domain.Product
	if args.Get(0) != nil {
		product = args.Get(0).(*domain.Product)
	}
	return product, args.Error(1)
}

func (m *MockProductRepository) FindProducts(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, limit, offset)
	var products []domain.Product
	if args.Get(0) != nil {
		products = args.Get(0).([]domain.Product)
	}
	return products, args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) MarkProductDeleted(ctx context.Context, productID string, deletedAt time.Time) error {
	args := m.Called(ctx, productID, deletedAt)
	return args.Error(0)
}

var _ portsrepo.ProductRepository = (*MockProductRepository)(nil)

type ProductServiceTestSuite struct {
	suite.Suite
	mockProductRepo *MockProductRepository
	service         portssvc.ProductSvcFacade
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.mockProductRepo = new(MockProductRepository)
	suite.service = services.NewProductService(suite.mockProductRepo)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_Success() {
	ctx := context.Background()
	req := dto.CreateProductRequest{
		SKU:   "VLR-TEE-001",
		Name:  "Velora Tee",
		Price: decimal.NewFromFloat(29.99),
		Stock: 40,
	}

	suite.mockProductRepo.On("SaveProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.SKU == "VLR-TEE-001" && p.ProductID != "" && p.Price.Equal(req.Price)
	})).Return(nil).Once()

	product, err := suite.service.CreateProduct(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("Velora Tee", product.Name)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestCreateProduct_DuplicateSKU() {
	ctx := context.Background()
	req := dto.CreateProductRequest{SKU: "VLR-TEE-001", Name: "Velora Tee", Price: decimal.NewFromInt(30)}

	suite.mockProductRepo.On("SaveProduct", ctx, mock.AnythingOfType("domain.Product")).Return(apperrors.ErrDuplicate).Once()

	product, err := suite.service.CreateProduct(ctx, req)

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_NoChangesWritesNothing() {
	ctx := context.Background()
	productID := uuid.NewString()
	existing := &domain.Product{
		ProductID: productID,
		SKU:       "VLR-TEE-001",
		Name:      "Velora Tee",
		Price:     decimal.NewFromFloat(29.99),
		Stock:     40,
	}
	sameName := "Velora Tee"
	// Same value in a different decimal representation must not count as a
	// change.
	samePrice := decimal.NewFromFloat(29.990)

	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(existing, nil).Once()

	product, err := suite.service.UpdateProduct(ctx, productID, dto.UpdateProductRequest{Name: &sameName, Price: &samePrice})

	suite.Require().NoError(err)
	suite.Equal("Velora Tee", product.Name)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "UpdateProduct")
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_PriceChange() {
	ctx := context.Background()
	productID := uuid.NewString()
	existing := &domain.Product{
		ProductID: productID,
		Name:      "Velora Tee",
		Price:     decimal.NewFromFloat(29.99),
	}
	newPrice := decimal.NewFromFloat(24.99)

	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(existing, nil).Once()
	suite.mockProductRepo.On("UpdateProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.Price.Equal(newPrice)
	})).Return(nil).Once()

	product, err := suite.service.UpdateProduct(ctx, productID, dto.UpdateProductRequest{Price: &newPrice})

	suite.Require().NoError(err)
	suite.True(product.Price.Equal(newPrice))
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_NotFound() {
	ctx := context.Background()
	productID := uuid.NewString()

	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(nil, apperrors.ErrNotFound).Once()

	product, err := suite.service.UpdateProduct(ctx, productID, dto.UpdateProductRequest{})

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ProductServiceTestSuite) TestDeleteProduct_SoftDeletes() {
	ctx := context.Background()
	productID := uuid.NewString()

	suite.mockProductRepo.On("MarkProductDeleted", ctx, productID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteProduct(ctx, productID)

	suite.Require().NoError(err)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
