package handler_test

import (
	"context"
	"errors"
	"food-inventory/internal/model"

	"github.com/stretchr/testify/mock"
)

type authServiceMock struct{ mock.Mock }

func (m *authServiceMock) Login(ctx context.Context, email, password string) (*model.SessionResult, error) {
	args := m.Called(ctx, email, password)
	result, _ := args.Get(0).(*model.SessionResult)
	return result, args.Error(1)
}

func (m *authServiceMock) Register(ctx context.Context, info *model.RegisterInfo, password string) (*model.SessionResult, error) {
	args := m.Called(ctx, info, password)
	result, _ := args.Get(0).(*model.SessionResult)
	return result, args.Error(1)
}

type refreshServiceMock struct{ mock.Mock }

func (m *refreshServiceMock) Refresh(ctx context.Context, accessToken, refreshToken string) (*model.SessionResult, error) {
	args := m.Called(ctx, accessToken, refreshToken)
	result, _ := args.Get(0).(*model.SessionResult)
	return result, args.Error(1)
}

type passwordServiceMock struct{ mock.Mock }

func (m *passwordServiceMock) UpdatePassword(ctx context.Context, uuid, newPassword string) error {
	return m.Called(ctx, uuid, newPassword).Error(0)
}

func (m *passwordServiceMock) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *passwordServiceMock) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	return m.Called(ctx, email, token, newPassword).Error(0)
}

type userServiceMock struct{ mock.Mock }

func (m *userServiceMock) GetUser(ctx context.Context, uuid string) (*model.User, error) {
	args := m.Called(ctx, uuid)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *userServiceMock) ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error) {
	args := m.Called(ctx, cursor, limit)
	users, _ := args.Get(0).([]*model.User)
	return users, args.String(1), args.Error(2)
}

func (m *userServiceMock) UpdateUser(ctx context.Context, uuid string, update *model.UserUpdate) (*model.User, error) {
	args := m.Called(ctx, uuid, update)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *userServiceMock) DeleteUser(ctx context.Context, uuid string) error {
	return m.Called(ctx, uuid).Error(0)
}

func (m *userServiceMock) ListRoles(ctx context.Context) ([]model.Role, error) {
	args := m.Called(ctx)
	roles, _ := args.Get(0).([]model.Role)
	return roles, args.Error(1)
}

type inventoryServiceMock struct{ mock.Mock }

func (m *inventoryServiceMock) ListCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]model.Category)
	return categories, args.Error(1)
}

func (m *inventoryServiceMock) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	args := m.Called(ctx, id)
	category, _ := args.Get(0).(*model.Category)
	return category, args.Error(1)
}

func (m *inventoryServiceMock) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	args := m.Called(ctx, category)
	created, _ := args.Get(0).(*model.Category)
	return created, args.Error(1)
}

func (m *inventoryServiceMock) UpdateCategory(ctx context.Context, category *model.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *inventoryServiceMock) DeleteCategory(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *inventoryServiceMock) ListProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *inventoryServiceMock) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*model.Product)
	return product, args.Error(1)
}

func (m *inventoryServiceMock) ProductsByCategoryIDs(ctx context.Context, categoryIDs []int64) ([]model.Product, error) {
	args := m.Called(ctx, categoryIDs)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *inventoryServiceMock) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	args := m.Called(ctx, product)
	created, _ := args.Get(0).(*model.Product)
	return created, args.Error(1)
}

func (m *inventoryServiceMock) UpdateProduct(ctx context.Context, product *model.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *inventoryServiceMock) DeleteProduct(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *inventoryServiceMock) ListStocks(ctx context.Context) ([]model.Stock, error) {
	args := m.Called(ctx)
	stocks, _ := args.Get(0).([]model.Stock)
	return stocks, args.Error(1)
}

func (m *inventoryServiceMock) GetStock(ctx context.Context, id int64) (*model.Stock, error) {
	args := m.Called(ctx, id)
	stock, _ := args.Get(0).(*model.Stock)
	return stock, args.Error(1)
}

func (m *inventoryServiceMock) AddStocks(ctx context.Context, productIDs []int64, userName string) ([]model.Stock, error) {
	args := m.Called(ctx, productIDs, userName)
	stocks, _ := args.Get(0).([]model.Stock)
	return stocks, args.Error(1)
}

func (m *inventoryServiceMock) UpdateStock(ctx context.Context, id int64, status model.StockStatus, userName string) (*model.Stock, error) {
	args := m.Called(ctx, id, status, userName)
	stock, _ := args.Get(0).(*model.Stock)
	return stock, args.Error(1)
}

func (m *inventoryServiceMock) ListHistoricals(ctx context.Context) ([]model.Historical, error) {
	args := m.Called(ctx)
	historicals, _ := args.Get(0).([]model.Historical)
	return historicals, args.Error(1)
}

// tokenTable : access токен -> claims, вместо подписи JWT
type tokenTable map[string][]model.Claim

func (t tokenTable) ValidateAccessToken(token string) ([]model.Claim, error) {
	claims, ok := t[token]
	if !ok {
		return nil, errors.New("unknown token")
	}
	return claims, nil
}
