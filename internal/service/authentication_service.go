package service

import (
	"context"
	"errors"
	"fmt"
	"food-inventory/config"
	"food-inventory/internal/model"
	"food-inventory/internal/observability"
	"food-inventory/internal/ports"
	"food-inventory/internal/security"
	"food-inventory/internal/util"
	pkgerrors "food-inventory/pkg/errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/trace"
)

const (
	MsgLoginFailed        = "incorrect email or password"
	MsgRegisterMissing    = "user information or password is missing"
	MsgUsernameExists     = "username already exists"
	MsgUserCreated        = "user created successfully"
	MsgUserCreationFailed = "user creation failed because: "
)

type AuthenticationService struct {
	db              ports.Database
	userRepository  ports.UserRepository
	claimRepository ports.ClaimRepository
	roleRepository  ports.RoleRepository
	jwtService      ports.JWTServiceInterface
	now             func() time.Time
}

func NewAuthenticationService(
	db ports.Database,
	userRepository ports.UserRepository,
	claimRepository ports.ClaimRepository,
	roleRepository ports.RoleRepository,
	jwtService ports.JWTServiceInterface,
) *AuthenticationService {
	return &AuthenticationService{
		db:              db,
		userRepository:  userRepository,
		claimRepository: claimRepository,
		roleRepository:  roleRepository,
		jwtService:      jwtService,
		now:             time.Now,
	}
}

// Login : вход по email и паролю.
// Неизвестный email и неверный пароль неразличимы для вызывающего.
// error возвращается только при отказе инфраструктуры или конфигурации
func (s *AuthenticationService) Login(ctx context.Context, email, password string) (*model.SessionResult, error) {
	ctx, span := observability.StartSpan(ctx, "Login")
	defer span.End()

	user, err := s.userRepository.FindByEmail(ctx, s.db, email)
	if errors.Is(err, pkgerrors.ErrUserNotFound) {
		security.SpendPasswordCheck(password)
		log.Printf("[AuthenticationService] вход отклонен: пользователь не найден")
		return s.loginRejected(span), nil
	}
	if err != nil {
		observability.LoginTotal.WithLabelValues(observability.ResultError).Inc()
		observability.FailSpan(span, err, "user lookup failed")
		return nil, fmt.Errorf("[AuthenticationService] ошибка поиска пользователя: %w", err)
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		log.Printf("[AuthenticationService] вход отклонен: неверный пароль для %s", user.UUID)
		return s.loginRejected(span), nil
	}

	result, err := s.issueSession(ctx, user)
	if err != nil {
		observability.LoginTotal.WithLabelValues(observability.ResultError).Inc()
		observability.FailSpan(span, err, "token issuance failed")
		return nil, err
	}

	observability.LoginTotal.WithLabelValues(observability.ResultSuccess).Inc()
	return result, nil
}

func (s *AuthenticationService) loginRejected(span trace.Span) *model.SessionResult {
	observability.LoginTotal.WithLabelValues(observability.ResultRejected).Inc()
	span.AddEvent("login rejected")
	return model.FailedSession(MsgLoginFailed)
}

// issueSession : выдает пару токенов и безусловно перезаписывает refresh токен пользователя
func (s *AuthenticationService) issueSession(ctx context.Context, user *model.User) (*model.SessionResult, error) {
	claims, err := principalClaims(ctx, s.db, s.claimRepository, s.roleRepository, user)
	if err != nil {
		return nil, fmt.Errorf("[AuthenticationService] ошибка загрузки claims: %w", err)
	}

	accessToken, err := s.jwtService.IssueAccessToken(claims)
	if err != nil {
		return nil, fmt.Errorf("[AuthenticationService] ошибка выдачи access токена: %w", err)
	}

	refreshToken := s.jwtService.IssueRefreshToken()
	expiry := s.now().Add(s.jwtService.RefreshTokenTTL())
	if err := s.userRepository.SaveRefreshToken(ctx, s.db, user.UUID, refreshToken, expiry); err != nil {
		return nil, fmt.Errorf("[AuthenticationService] ошибка сохранения refresh токена: %w", err)
	}

	return &model.SessionResult{
		IsSucceed:    true,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Register : создает пользователя с ролью User и claims Username/email в одной транзакции.
// Токены не выдаются, после регистрации нужен отдельный вход
func (s *AuthenticationService) Register(ctx context.Context, info *model.RegisterInfo, password string) (*model.SessionResult, error) {
	ctx, span := observability.StartSpan(ctx, "Register")
	defer span.End()

	reject := func(message string) (*model.SessionResult, error) {
		observability.RegisterTotal.WithLabelValues(observability.ResultRejected).Inc()
		observability.FailSpan(span, nil, message)
		return model.FailedSession(message), nil
	}
	fail := func(err error) (*model.SessionResult, error) {
		observability.RegisterTotal.WithLabelValues(observability.ResultError).Inc()
		observability.FailSpan(span, err, "registration failed")
		return nil, err
	}

	if info == nil || password == "" {
		return reject(MsgRegisterMissing)
	}

	exists, err := s.userRepository.ExistsByUserName(ctx, s.db, info.UserName)
	if err != nil {
		return fail(fmt.Errorf("[AuthenticationService] ошибка проверки имени пользователя: %w", err))
	}
	if exists {
		return reject(MsgUsernameExists)
	}

	if err := security.ValidatePasswordPolicy(password); err != nil {
		return reject(security.PasswordPolicyMessage)
	}

	var problems []string
	if p := userNameProblem(info.UserName); p != "" {
		problems = append(problems, p)
	}
	if p := emailProblem(info.Email); p != "" {
		problems = append(problems, p)
	}
	if len(problems) > 0 {
		return reject(MsgUserCreationFailed + strings.Join(problems, " "))
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return fail(fmt.Errorf("[AuthenticationService] %w", err))
	}

	user := &model.User{
		UUID:         uuid.New().String(),
		UserName:     info.UserName,
		Email:        info.Email,
		PasswordHash: hash,
		FirstName:    info.FirstName,
		LastName:     info.LastName,
	}

	tx, rollback, commit, err := s.db.BeginTX(ctx)
	if err != nil {
		return fail(util.LogError("[AuthenticationService] не удалось открыть транзакцию", err))
	}
	defer rollback()

	created, err := s.userRepository.CreateUser(ctx, tx, user)
	if err != nil {
		if storeErr, ok := pkgerrors.AsStoreError(err); ok {
			return reject(MsgUserCreationFailed + strings.Join(storeErr.Descriptions, " "))
		}
		return fail(fmt.Errorf("[AuthenticationService] ошибка создания пользователя: %w", err))
	}

	if err := s.grantDefaults(ctx, tx, created, model.RoleUser); err != nil {
		return fail(err)
	}

	if err := commit(); err != nil {
		return fail(util.LogError("[AuthenticationService] не удалось зафиксировать транзакцию", err))
	}

	observability.RegisterTotal.WithLabelValues(observability.ResultSuccess).Inc()
	return &model.SessionResult{IsSucceed: true, Message: MsgUserCreated}, nil
}

// grantDefaults : роли и claims нового пользователя
func (s *AuthenticationService) grantDefaults(ctx context.Context, exec sqlx.ExtContext, user *model.User, roles ...string) error {
	for _, role := range roles {
		if err := s.roleRepository.AddToRole(ctx, exec, user.UUID, role); err != nil {
			return fmt.Errorf("[AuthenticationService] ошибка назначения роли %s: %w", role, err)
		}
	}
	for _, claim := range []model.Claim{
		{Type: model.ClaimUsername, Value: user.UserName},
		{Type: model.ClaimEmail, Value: user.Email},
	} {
		if err := s.claimRepository.AddClaim(ctx, exec, user.UUID, claim); err != nil {
			return fmt.Errorf("[AuthenticationService] ошибка добавления claim %s: %w", claim.Type, err)
		}
	}
	return nil
}

// EnsureAdmin : создает администратора из конфигурации, если его еще нет
func (s *AuthenticationService) EnsureAdmin(ctx context.Context, cfg *config.AdminConfig) error {
	if cfg == nil || cfg.Email == "" {
		return nil
	}

	_, err := s.userRepository.FindByEmail(ctx, s.db, cfg.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pkgerrors.ErrUserNotFound) {
		return fmt.Errorf("[AuthenticationService] ошибка поиска администратора: %w", err)
	}

	if err := security.ValidatePasswordPolicy(cfg.Password); err != nil {
		return fmt.Errorf("[AuthenticationService] пароль администратора: %w", err)
	}
	hash, err := security.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("[AuthenticationService] %w", err)
	}

	tx, rollback, commit, err := s.db.BeginTX(ctx)
	if err != nil {
		return util.LogError("[AuthenticationService] не удалось открыть транзакцию", err)
	}
	defer rollback()

	admin, err := s.userRepository.CreateUser(ctx, tx, &model.User{
		UUID:         uuid.New().String(),
		UserName:     cfg.UserName,
		Email:        cfg.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return fmt.Errorf("[AuthenticationService] ошибка создания администратора: %w", err)
	}
	if err := s.grantDefaults(ctx, tx, admin, model.RoleAdmin, model.RoleUser); err != nil {
		return err
	}
	if err := commit(); err != nil {
		return util.LogError("[AuthenticationService] не удалось зафиксировать транзакцию", err)
	}

	log.Printf("[AuthenticationService] создан администратор %s", admin.UserName)
	return nil
}
