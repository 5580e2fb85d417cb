package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"memo-drafting-be/internal/dto"
	"memo-drafting-be/internal/entity"
	"memo-drafting-be/internal/pkg/logger"
	"memo-drafting-be/internal/repository/memory"
	"memo-drafting-be/internal/repository/specification"
	"memo-drafting-be/internal/repository/unitofwork"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, userId uuid.UUID) error
}

type authService struct {
	uowFactory   unitofwork.RepositoryFactory
	liveSessions *memory.SessionRepository
	jwtSecret    string
	log          logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, liveSessions *memory.SessionRepository, jwtSecret string, log logger.ILogger) IAuthService {
	return &authService{
		uowFactory:   uowFactory,
		liveSessions: liveSessions,
		jwtSecret:    jwtSecret,
		log:          log,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := uow.UserRepository().Create(ctx, &user); err != nil {
		return nil, err
	}

	s.log.Info("auth", "user registered", map[string]interface{}{"user_id": user.Id})

	return s.issueToken(&user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// Logout evicts the live session state. The persisted session is untouched;
// the next authenticated request rehydrates it from the database.
func (s *authService) Logout(ctx context.Context, userId uuid.UUID) error {
	s.liveSessions.Delete(userId.String())
	s.log.Info("auth", "user logged out", map[string]interface{}{"user_id": userId})
	return nil
}

func (s *authService) issueToken(user *entity.User) (*dto.LoginResponse, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"email":   user.Email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:    signedToken,
		UserId:   user.Id,
		FullName: user.FullName,
	}, nil
}
