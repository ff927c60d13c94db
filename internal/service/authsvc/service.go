package authsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
	userRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/user"
	"github.com/m04kA/ParkEase-Backend/internal/service/authsvc/models"
)

// Service сервис регистрации и входа
type Service struct {
	userRepo UserRepository
	tokens   TokenIssuer
	logger   Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(userRepo UserRepository, tokens TokenIssuer, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register регистрирует водителя или провайдера.
// Админов через публичную регистрацию создать нельзя.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	s.logger.Info("Register: email=%s, role=%s", email, req.Role)

	role := domain.Role(req.Role)
	if role != domain.RoleDriver && role != domain.RoleProvider {
		return nil, fmt.Errorf("%w: role must be driver or provider", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInternal, err)
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         role,
		Status:       domain.UserStatusActive,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			s.logger.Warn("Register: email %s already registered", email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Register: repository error: %v", err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	token, err := s.tokens.Generate(created.ID, created.Role)
	if err != nil {
		s.logger.Error("Register: failed to issue token for user=%d: %v", created.ID, err)
		return nil, fmt.Errorf("%w: Register - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("Register: user id=%d registered as %s", created.ID, created.Role)
	return &models.AuthResponse{Token: token, User: models.FromDomainUser(created)}, nil
}

// Login проверяет пару email/пароль и выпускает токен.
// Не раскрывает, что именно неверно: email или пароль.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	s.logger.Info("Login: email=%s", email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown email %s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for user=%d", user.ID)
		return nil, ErrInvalidCredentials
	}

	if user.IsSuspended() {
		s.logger.Warn("Login: suspended account user=%d", user.ID)
		return nil, ErrAccountSuspended
	}

	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		s.logger.Error("Login: failed to issue token for user=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Login - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: user id=%d logged in", user.ID)
	return &models.AuthResponse{Token: token, User: models.FromDomainUser(user)}, nil
}

// Verify возвращает данные пользователя по уже проверенному токену
func (s *Service) Verify(ctx context.Context, userID int64) (*models.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("Verify: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Verify - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainUser(user), nil
}
