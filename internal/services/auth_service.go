package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/employeems/employee-management-api/internal/constants"
	"github.com/employeems/employee-management-api/internal/models"
	"github.com/employeems/employee-management-api/internal/repository"
	"github.com/employeems/employee-management-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailRequired        = errors.New("email and password are required")
	ErrInvalidEmail         = errors.New("invalid email format")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrEmailTaken           = errors.New("an account with this email already exists")
	ErrInvalidCredentials   = errors.New("wrong email or password")
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// bcryptCost matches the cost factor the stored hashes were created with.
const bcryptCost = 10

var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService handles credential storage and session token issuance for
// both admins and employees.
type AuthService struct {
	adminRepo    repository.AdminRepository
	employeeRepo repository.EmployeeRepository
	secret       []byte
	tokenTTL     time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(adminRepo repository.AdminRepository, employeeRepo repository.EmployeeRepository, secret []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		adminRepo:    adminRepo,
		employeeRepo: employeeRepo,
		secret:       secret,
		tokenTTL:     tokenTTL,
	}
}

// TokenTTL returns the session token lifetime.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

// RegisterAdmin creates a new admin account.
func (s *AuthService) RegisterAdmin(email, password string) (*models.Admin, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrEmailRequired
	}
	if !emailRx.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.adminRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	admin := &models.Admin{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	return admin, nil
}

// LoginAdmin verifies admin credentials and returns the account with a
// signed session token.
func (s *AuthService) LoginAdmin(email, password string) (*models.Admin, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", ErrEmailRequired
	}
	if !emailRx.MatchString(email) {
		return nil, "", ErrInvalidEmail
	}

	admin, err := s.adminRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(constants.RoleAdmin, admin.ID, admin.Email)
	if err != nil {
		return nil, "", err
	}
	return admin, token, nil
}

// LoginEmployee verifies employee credentials and returns the account
// with a signed session token.
func (s *AuthService) LoginEmployee(email, password string) (*models.Employee, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", ErrEmailRequired
	}
	if !emailRx.MatchString(email) {
		return nil, "", ErrInvalidEmail
	}

	employee, err := s.employeeRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find employee: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(constants.RoleEmployee, employee.ID, "")
	if err != nil {
		return nil, "", err
	}
	return employee, token, nil
}

// RegisterEmployeeInput holds the fields of employee self-registration.
type RegisterEmployeeInput struct {
	Name     string
	Email    string
	Password string
	Address  string
}

// RegisterEmployee creates an employee account with default salary and no
// category or image. Admins fill those in later.
func (s *AuthService) RegisterEmployee(input RegisterEmployeeInput) (*models.Employee, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, ErrEmailRequired
	}
	if !emailRx.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.employeeRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	employee := &models.Employee{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Address:      strings.TrimSpace(input.Address),
	}
	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee, nil
}

// IssueToken signs a session token for the given identity.
func (s *AuthService) IssueToken(role string, id uint64, email string) (string, error) {
	token, err := utils.IssueSessionToken(s.secret, role, id, email, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to issue session token: %w", err)
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
