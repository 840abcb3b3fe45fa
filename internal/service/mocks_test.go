package service_test

import (
	"context"
	"food-inventory/internal/model"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

// ===== DATABASE =====

// fakeDB : транзакция это сама fakeDB, commit только считается
type fakeDB struct {
	sqlx.ExtContext
	mu        sync.Mutex
	beginErr  error
	commitErr error
	commits   int
}

func (d *fakeDB) BeginTX(context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	if d.beginErr != nil {
		return nil, nil, nil, d.beginErr
	}
	rollback := func() error { return nil }
	commit := func() error {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.commitErr != nil {
			return d.commitErr
		}
		d.commits++
		return nil
	}
	return d, rollback, commit, nil
}

// ===== MOCKS =====

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	args := m.Called(ctx, exec, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error) {
	args := m.Called(ctx, exec, uuid)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error) {
	args := m.Called(ctx, exec, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByUserName(ctx context.Context, exec sqlx.ExtContext, userName string) (*model.User, error) {
	args := m.Called(ctx, exec, userName)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) ExistsByUserName(ctx context.Context, exec sqlx.ExtContext, userName string) (bool, error) {
	args := m.Called(ctx, exec, userName)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) SaveRefreshToken(ctx context.Context, exec sqlx.ExtContext, uuid, refreshToken string, expiry time.Time) error {
	args := m.Called(ctx, exec, uuid, refreshToken, expiry)
	return args.Error(0)
}

func (m *MockUserRepository) RotateRefreshToken(ctx context.Context, exec sqlx.ExtContext, uuid, oldToken, newToken string, now, newExpiry time.Time) (bool, error) {
	args := m.Called(ctx, exec, uuid, oldToken, newToken, now, newExpiry)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, exec sqlx.ExtContext, user *model.User) error {
	args := m.Called(ctx, exec, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, exec sqlx.ExtContext, uuid, newPasswordHash string) error {
	args := m.Called(ctx, exec, uuid, newPasswordHash)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	args := m.Called(ctx, exec, uuid)
	return args.Error(0)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, exec sqlx.ExtContext, cursor string, limit int) ([]*model.User, string, error) {
	args := m.Called(ctx, exec, cursor, limit)
	if users, ok := args.Get(0).([]*model.User); ok {
		return users, args.String(1), args.Error(2)
	}
	return nil, "", args.Error(2)
}

type MockClaimRepository struct {
	mock.Mock
}

func (m *MockClaimRepository) GetClaims(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]model.Claim, error) {
	args := m.Called(ctx, exec, userUUID)
	if c, ok := args.Get(0).([]model.Claim); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClaimRepository) AddClaim(ctx context.Context, exec sqlx.ExtContext, userUUID string, claim model.Claim) error {
	args := m.Called(ctx, exec, userUUID, claim)
	return args.Error(0)
}

func (m *MockClaimRepository) ReplaceClaim(ctx context.Context, exec sqlx.ExtContext, userUUID string, oldClaim, newClaim model.Claim) error {
	args := m.Called(ctx, exec, userUUID, oldClaim, newClaim)
	return args.Error(0)
}

func (m *MockClaimRepository) DeleteClaims(ctx context.Context, exec sqlx.ExtContext, userUUID string) error {
	args := m.Called(ctx, exec, userUUID)
	return args.Error(0)
}

type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) ListRoles(ctx context.Context, exec sqlx.ExtContext) ([]model.Role, error) {
	args := m.Called(ctx, exec)
	if r, ok := args.Get(0).([]model.Role); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRoleRepository) GetUserRoles(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]string, error) {
	args := m.Called(ctx, exec, userUUID)
	if r, ok := args.Get(0).([]string); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRoleRepository) GetRolesByUsers(ctx context.Context, exec sqlx.ExtContext, userUUIDs []string) (map[string][]string, error) {
	args := m.Called(ctx, exec, userUUIDs)
	if r, ok := args.Get(0).(map[string][]string); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRoleRepository) AddToRole(ctx context.Context, exec sqlx.ExtContext, userUUID, roleName string) error {
	args := m.Called(ctx, exec, userUUID, roleName)
	return args.Error(0)
}

func (m *MockRoleRepository) RemoveFromRoles(ctx context.Context, exec sqlx.ExtContext, userUUID string) error {
	args := m.Called(ctx, exec, userUUID)
	return args.Error(0)
}

type MockResetTokenRepository struct {
	mock.Mock
}

func (m *MockResetTokenRepository) Save(ctx context.Context, token, userUUID string, ttl time.Duration) error {
	args := m.Called(ctx, token, userUUID, ttl)
	return args.Error(0)
}

func (m *MockResetTokenRepository) Consume(ctx context.Context, token, userUUID string) error {
	args := m.Called(ctx, token, userUUID)
	return args.Error(0)
}

type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) IssueAccessToken(claims []model.Claim) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

func (m *MockJWTService) IssueRefreshToken() string {
	return m.Called().String(0)
}

func (m *MockJWTService) RefreshTokenTTL() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

func (m *MockJWTService) ExtractPrincipal(token string) ([]model.Claim, error) {
	args := m.Called(token)
	if c, ok := args.Get(0).([]model.Claim); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJWTService) ValidateAccessToken(token string) ([]model.Claim, error) {
	args := m.Called(token)
	if c, ok := args.Get(0).([]model.Claim); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) SetProduct(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockCacheRepository) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*model.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCacheRepository) DeleteProduct(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context, exec sqlx.ExtContext) ([]model.Category, error) {
	args := m.Called(ctx, exec)
	if c, ok := args.Get(0).([]model.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.Category, error) {
	args := m.Called(ctx, exec, id)
	if c, ok := args.Get(0).(*model.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, exec sqlx.ExtContext, category *model.Category) (int64, error) {
	args := m.Called(ctx, exec, category)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, exec sqlx.ExtContext, category *model.Category) error {
	args := m.Called(ctx, exec, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	args := m.Called(ctx, exec, id)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, exec sqlx.ExtContext) ([]model.Product, error) {
	args := m.Called(ctx, exec)
	if p, ok := args.Get(0).([]model.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.Product, error) {
	args := m.Called(ctx, exec, id)
	if p, ok := args.Get(0).(*model.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) ListByCategoryIDs(ctx context.Context, exec sqlx.ExtContext, categoryIDs []int64) ([]model.Product, error) {
	args := m.Called(ctx, exec, categoryIDs)
	if p, ok := args.Get(0).([]model.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, exec sqlx.ExtContext, product *model.Product) (int64, error) {
	args := m.Called(ctx, exec, product)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, exec sqlx.ExtContext, product *model.Product) error {
	args := m.Called(ctx, exec, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	args := m.Called(ctx, exec, id)
	return args.Error(0)
}

type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) ListInProgress(ctx context.Context, exec sqlx.ExtContext) ([]model.Stock, error) {
	args := m.Called(ctx, exec)
	if s, ok := args.Get(0).([]model.Stock); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStockRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.Stock, error) {
	args := m.Called(ctx, exec, id)
	if s, ok := args.Get(0).(*model.Stock); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStockRepository) Create(ctx context.Context, exec sqlx.ExtContext, stock *model.Stock) (int64, error) {
	args := m.Called(ctx, exec, stock)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockRepository) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id int64, status model.StockStatus, userModification string) error {
	args := m.Called(ctx, exec, id, status, userModification)
	return args.Error(0)
}

type MockHistoricalRepository struct {
	mock.Mock
}

func (m *MockHistoricalRepository) List(ctx context.Context, exec sqlx.ExtContext) ([]model.Historical, error) {
	args := m.Called(ctx, exec)
	if h, ok := args.Get(0).([]model.Historical); ok {
		return h, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockHistoricalRepository) ListByStockIDs(ctx context.Context, exec sqlx.ExtContext, stockIDs []int64) ([]model.Historical, error) {
	args := m.Called(ctx, exec, stockIDs)
	if h, ok := args.Get(0).([]model.Historical); ok {
		return h, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockHistoricalRepository) Create(ctx context.Context, exec sqlx.ExtContext, historical *model.Historical) error {
	args := m.Called(ctx, exec, historical)
	return args.Error(0)
}

type recordingNotifier struct {
	sent chan model.Message
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{sent: make(chan model.Message, 4)}
}

func (n *recordingNotifier) Send(_ context.Context, message model.Message) error {
	n.sent <- message
	return nil
}
