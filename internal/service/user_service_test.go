package service_test

import (
	"context"
	"errors"
	"food-inventory/internal/model"
	"food-inventory/internal/security"
	"food-inventory/internal/service"
	pkgerrors "food-inventory/pkg/errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func principalCtx(userUUID, userName string, roles ...string) context.Context {
	claims := []model.Claim{
		{Type: model.ClaimUserID, Value: userUUID},
		{Type: model.ClaimUsername, Value: userName},
	}
	for _, role := range roles {
		claims = append(claims, model.Claim{Type: model.ClaimRole, Value: role})
	}
	return security.WithPrincipal(context.Background(), security.NewPrincipal(claims))
}

func newTestUserService(d *authDeps) *service.UserService {
	synchronizer := service.NewClaimSynchronizer(d.claims, d.roles)
	return service.NewUserService(d.db, d.users, d.claims, d.roles, synchronizer)
}

func TestUserService_GetUser(t *testing.T) {
	tests := []struct {
		name       string
		ctx        context.Context
		uuid       string
		setupMocks func(d *authDeps)
		wantErr    error
	}{
		{
			name:    "без аутентификации",
			ctx:     context.Background(),
			uuid:    "user-1",
			wantErr: pkgerrors.ErrUnauthorized,
		},
		{
			name:    "чужой профиль",
			ctx:     principalCtx("user-2", "bob", model.RoleUser),
			uuid:    "user-1",
			wantErr: pkgerrors.ErrAccessDenied,
		},
		{
			name: "не найден",
			ctx:  principalCtx("admin-1", "admin", model.RoleAdmin),
			uuid: "user-1",
			setupMocks: func(d *authDeps) {
				d.users.On("FindByUUID", mock.Anything, mock.Anything, "user-1").Return(nil, pkgerrors.ErrUserNotFound)
			},
			wantErr: pkgerrors.ErrUserNotFound,
		},
		{
			name: "свой профиль",
			ctx:  principalCtx("user-1", "alice", model.RoleUser),
			uuid: "user-1",
			setupMocks: func(d *authDeps) {
				d.users.On("FindByUUID", mock.Anything, mock.Anything, "user-1").Return(&model.User{UUID: "user-1", UserName: "alice"}, nil)
				d.roles.On("GetUserRoles", mock.Anything, mock.Anything, "user-1").Return([]string{model.RoleUser}, nil)
			},
		},
		{
			name: "администратор видит чужой профиль",
			ctx:  principalCtx("admin-1", "admin", model.RoleAdmin),
			uuid: "user-1",
			setupMocks: func(d *authDeps) {
				d.users.On("FindByUUID", mock.Anything, mock.Anything, "user-1").Return(&model.User{UUID: "user-1", UserName: "alice"}, nil)
				d.roles.On("GetUserRoles", mock.Anything, mock.Anything, "user-1").Return([]string{model.RoleUser}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newAuthDeps()
			if tt.setupMocks != nil {
				tt.setupMocks(d)
			}

			user, err := newTestUserService(d).GetUser(tt.ctx, tt.uuid)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "user-1", user.UUID)
				assert.Equal(t, []string{model.RoleUser}, user.Roles)
			}
			d.assertExpectations(t)
		})
	}
}

func TestUserService_ListUsers(t *testing.T) {
	d := newAuthDeps()
	users := []*model.User{{UUID: "user-1"}, {UUID: "user-2"}}
	d.users.On("ListUsers", mock.Anything, mock.Anything, "", 100).Return(users, "next", nil)
	d.roles.On("GetRolesByUsers", mock.Anything, mock.Anything, []string{"user-1", "user-2"}).
		Return(map[string][]string{"user-1": {model.RoleAdmin, model.RoleUser}, "user-2": {model.RoleUser}}, nil)

	list, cursor, err := newTestUserService(d).ListUsers(principalCtx("user-1", "alice", model.RoleUser), "", 0)
	require.NoError(t, err)

	assert.Equal(t, "next", cursor)
	require.Len(t, list, 2)
	assert.Equal(t, []string{model.RoleAdmin, model.RoleUser}, list[0].Roles)
	assert.Equal(t, []string{model.RoleUser}, list[1].Roles)
	d.assertExpectations(t)
}

func TestUserService_UpdateUser(t *testing.T) {
	stored := func() *model.User {
		return &model.User{UUID: "user-1", UserName: "alice", Email: "alice@example.com", FirstName: "Alice"}
	}
	storedClaims := []model.Claim{
		{Type: model.ClaimUsername, Value: "alice"},
		{Type: model.ClaimEmail, Value: "alice@example.com"},
	}

	tests := []struct {
		name        string
		ctx         context.Context
		update      *model.UserUpdate
		setupMocks  func(d *authDeps)
		wantErr     error
		wantCommits int
	}{
		{
			name:    "чужой профиль",
			ctx:     principalCtx("user-2", "bob", model.RoleUser),
			update:  &model.UserUpdate{FirstName: "Mallory"},
			wantErr: pkgerrors.ErrAccessDenied,
		},
		{
			name:    "смена роли без прав",
			ctx:     principalCtx("user-1", "alice", model.RoleUser),
			update:  &model.UserUpdate{Role: model.RoleAdmin},
			wantErr: pkgerrors.ErrAccessDenied,
		},
		{
			name:    "неверный email",
			ctx:     principalCtx("user-1", "alice", model.RoleUser),
			update:  &model.UserUpdate{Email: "broken"},
			wantErr: pkgerrors.ErrInvalidInput,
		},
		{
			name:   "имя занято",
			ctx:    principalCtx("user-1", "alice", model.RoleUser),
			update: &model.UserUpdate{UserName: "bobby"},
			setupMocks: func(d *authDeps) {
				d.users.On("FindByUUID", mock.Anything, mock.Anything, "user-1").Return(stored(), nil)
				d.users.On("UpdateProfile", mock.Anything, mock.Anything, mock.Anything).Return(pkgerrors.ErrUsernameExists)
			},
			wantErr: pkgerrors.ErrUsernameExists,
		},
		{
			name:   "ошибка синхронизации откатывает все",
			ctx:    principalCtx("user-1", "alice", model.RoleUser),
			update: &model.UserUpdate{UserName: "alice2"},
			setupMocks: func(d *authDeps) {
				d.users.On("FindByUUID", mock.Anything, mock.Anything, "user-1").Return(stored(), nil)
				d.users.On("UpdateProfile", mock.Anything, mock.Anything, mock.Anything).Return(nil)
				d.claims.On("GetClaims", mock.Anything, mock.Anything, "user-1").Return(storedClaims, nil)
				d.claims.On("ReplaceClaim", mock.Anything, mock.Anything, "user-1", mock.Anything, mock.Anything).Return(errors.New("db down"))
			},
			wantErr: errors.New("db down"),
		},
		{
			name:   "владелец меняет имя и email",
			ctx:    principalCtx("user-1", "alice", model.RoleUser),
			update: &model.UserUpdate{UserName: "alice2", Email: "alice2@example.com"},
			setupMocks: func(d *authDeps) {
				d.users.On("FindByUUID", mock.Anything, mock.Anything, "user-1").Return(stored(), nil)
				d.users.On("UpdateProfile", mock.Anything, mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.UserName == "alice2" && u.Email == "alice2@example.com" && u.FirstName == "Alice"
				})).Return(nil)
				d.claims.On("GetClaims", mock.Anything, mock.Anything, "user-1").Return(storedClaims, nil)
				d.claims.On("ReplaceClaim", mock.Anything, mock.Anything, "user-1",
					model.Claim{Type: model.ClaimUsername, Value: "alice"},
					model.Claim{Type: model.ClaimUsername, Value: "alice2"}).Return(nil)
				d.claims.On("ReplaceClaim", mock.Anything, mock.Anything, "user-1",
					model.Claim{Type: model.ClaimEmail, Value: "alice@example.com"},
					model.Claim{Type: model.ClaimEmail, Value: "alice2@example.com"}).Return(nil)
				d.roles.On("GetUserRoles", mock.Anything, mock.Anything, "user-1").Return([]string{model.RoleUser}, nil)
			},
			wantCommits: 1,
		},
		{
			name:   "администратор меняет роль",
			ctx:    principalCtx("admin-1", "admin", model.RoleAdmin),
			update: &model.UserUpdate{Role: model.RoleAdmin},
			setupMocks: func(d *authDeps) {
				d.users.On("FindByUUID", mock.Anything, mock.Anything, "user-1").Return(stored(), nil)
				d.users.On("UpdateProfile", mock.Anything, mock.Anything, mock.Anything).Return(nil)
				d.claims.On("GetClaims", mock.Anything, mock.Anything, "user-1").Return(storedClaims, nil)
				d.roles.On("GetUserRoles", mock.Anything, mock.Anything, "user-1").Return([]string{model.RoleUser}, nil).Once()
				d.roles.On("RemoveFromRoles", mock.Anything, mock.Anything, "user-1").Return(nil)
				d.roles.On("AddToRole", mock.Anything, mock.Anything, "user-1", model.RoleAdmin).Return(nil)
				d.roles.On("GetUserRoles", mock.Anything, mock.Anything, "user-1").Return([]string{model.RoleAdmin}, nil).Once()
			},
			wantCommits: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newAuthDeps()
			if tt.setupMocks != nil {
				tt.setupMocks(d)
			}

			user, err := newTestUserService(d).UpdateUser(tt.ctx, "user-1", tt.update)

			if tt.wantErr != nil {
				assert.Error(t, err)
				if errors.Is(tt.wantErr, pkgerrors.ErrAccessDenied) || errors.Is(tt.wantErr, pkgerrors.ErrInvalidInput) ||
					errors.Is(tt.wantErr, pkgerrors.ErrUsernameExists) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.ErrorContains(t, err, tt.wantErr.Error())
				}
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, user)
			}
			assert.Equal(t, tt.wantCommits, d.db.commits)
			d.assertExpectations(t)
		})
	}
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Run("только администратор", func(t *testing.T) {
		d := newAuthDeps()
		err := newTestUserService(d).DeleteUser(principalCtx("user-1", "alice", model.RoleUser), "user-1")
		assert.ErrorIs(t, err, pkgerrors.ErrAccessDenied)
	})

	t.Run("удаляет claims, роли и пользователя", func(t *testing.T) {
		d := newAuthDeps()
		d.claims.On("DeleteClaims", mock.Anything, mock.Anything, "user-1").Return(nil)
		d.roles.On("RemoveFromRoles", mock.Anything, mock.Anything, "user-1").Return(nil)
		d.users.On("DeleteUser", mock.Anything, mock.Anything, "user-1").Return(nil)

		err := newTestUserService(d).DeleteUser(principalCtx("admin-1", "admin", model.RoleAdmin), "user-1")
		require.NoError(t, err)
		assert.Equal(t, 1, d.db.commits)
		d.assertExpectations(t)
	})

	t.Run("не найден", func(t *testing.T) {
		d := newAuthDeps()
		d.claims.On("DeleteClaims", mock.Anything, mock.Anything, "user-1").Return(nil)
		d.roles.On("RemoveFromRoles", mock.Anything, mock.Anything, "user-1").Return(nil)
		d.users.On("DeleteUser", mock.Anything, mock.Anything, "user-1").Return(pkgerrors.ErrUserNotFound)

		err := newTestUserService(d).DeleteUser(principalCtx("admin-1", "admin", model.RoleAdmin), "user-1")
		assert.ErrorIs(t, err, pkgerrors.ErrUserNotFound)
		assert.Equal(t, 0, d.db.commits)
	})
}

func TestUserService_ListRoles(t *testing.T) {
	d := newAuthDeps()
	d.roles.On("ListRoles", mock.Anything, mock.Anything).Return([]model.Role{{ID: 1, Name: model.RoleAdmin}, {ID: 2, Name: model.RoleUser}}, nil)
	svc := newTestUserService(d)

	_, err := svc.ListRoles(principalCtx("user-1", "alice", model.RoleUser))
	assert.ErrorIs(t, err, pkgerrors.ErrAccessDenied)

	roles, err := svc.ListRoles(principalCtx("admin-1", "admin", model.RoleAdmin))
	require.NoError(t, err)
	assert.Len(t, roles, 2)
}

func TestClaimSynchronizer_Sync(t *testing.T) {
	t.Run("добавляет отсутствующий claim", func(t *testing.T) {
		claims := new(MockClaimRepository)
		roles := new(MockRoleRepository)
		claims.On("GetClaims", mock.Anything, mock.Anything, "user-1").Return([]model.Claim{}, nil)
		claims.On("AddClaim", mock.Anything, mock.Anything, "user-1", model.Claim{Type: model.ClaimEmail, Value: "a@example.com"}).Return(nil)

		err := service.NewClaimSynchronizer(claims, roles).Sync(context.Background(), &fakeDB{}, "user-1", &model.UserUpdate{Email: "a@example.com"})
		require.NoError(t, err)
		claims.AssertExpectations(t)
	})

	t.Run("одинаковые значения не трогает", func(t *testing.T) {
		claims := new(MockClaimRepository)
		roles := new(MockRoleRepository)
		claims.On("GetClaims", mock.Anything, mock.Anything, "user-1").Return([]model.Claim{{Type: model.ClaimUsername, Value: "alice"}}, nil)
		roles.On("GetUserRoles", mock.Anything, mock.Anything, "user-1").Return([]string{model.RoleUser}, nil)

		err := service.NewClaimSynchronizer(claims, roles).Sync(context.Background(), &fakeDB{}, "user-1",
			&model.UserUpdate{UserName: "alice", Role: model.RoleUser})
		require.NoError(t, err)
		claims.AssertNotCalled(t, "ReplaceClaim", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		roles.AssertNotCalled(t, "RemoveFromRoles", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("неизвестная роль", func(t *testing.T) {
		claims := new(MockClaimRepository)
		roles := new(MockRoleRepository)
		claims.On("GetClaims", mock.Anything, mock.Anything, "user-1").Return([]model.Claim{}, nil)
		roles.On("GetUserRoles", mock.Anything, mock.Anything, "user-1").Return([]string{model.RoleUser}, nil)
		roles.On("RemoveFromRoles", mock.Anything, mock.Anything, "user-1").Return(nil)
		roles.On("AddToRole", mock.Anything, mock.Anything, "user-1", "Chef").Return(pkgerrors.ErrNotFound)

		err := service.NewClaimSynchronizer(claims, roles).Sync(context.Background(), &fakeDB{}, "user-1", &model.UserUpdate{Role: "Chef"})
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidInput)
	})
}
