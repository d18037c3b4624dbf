package services

import (
	"errors"
	"strings"
	"time"

	"github.com/evinas93/Fuji-PoS-sub001/entity"
	"github.com/evinas93/Fuji-PoS-sub001/repository"
	"github.com/evinas93/Fuji-PoS-sub001/utils"
	"golang.org/x/crypto/bcrypt"
)

// AuthService จัดการ login/register ของ staff
type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		userRepo:  repo,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

// Register สร้าง staff ใหม่ ถ้า email ซ้ำจะ error
func (s *AuthService) Register(email, password, firstName, lastName, role string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !entity.ValidRole(role) {
		return nil, errors.New("unknown role")
	}

	count, err := s.userRepo.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("hash password failed")
	}

	user := &entity.User{
		Email:     email,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Role:      role,
		IsActive:  true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login ตรวจสอบ user + สร้าง JWT
func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}
	if !user.IsActive {
		return "", nil, errors.New("account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, errors.New("cannot generate token")
	}

	return token, user, nil
}

func (s *AuthService) GetProfile(userID uint) (*entity.User, error) {
	return s.userRepo.FindByID(userID)
}
