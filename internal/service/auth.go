package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"user-account-service/internal/models"
	"user-account-service/internal/repository"
	"user-account-service/internal/util"
)

// PasswordHasher hashes and verifies credentials.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Check(plain, hashed string) bool
}

// TokenService signs and verifies bearer tokens carrying a sanitized
// user snapshot.
type TokenService interface {
	Sign(u *models.User) (string, error)
	Verify(tokenStr string) (*util.Claims, error)
}

// AuthService orchestrates login, session validation and user/role
// management over the repository seam.
type AuthService struct {
	repo         repository.UserRepository
	hasher       PasswordHasher
	tokens       TokenService
	pageSize     int
	strictDelete bool
}

// NewAuthService wires the service. pageSize defaults to 10 when not
// positive. strictDelete selects whether deleting a missing user is a
// not-found error or an idempotent no-op.
func NewAuthService(repo repository.UserRepository, hasher PasswordHasher, tokens TokenService, pageSize int, strictDelete bool) *AuthService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &AuthService{
		repo:         repo,
		hasher:       hasher,
		tokens:       tokens,
		pageSize:     pageSize,
		strictDelete: strictDelete,
	}
}

// LoginData is the projected user view returned alongside the token.
type LoginData struct {
	Username   string        `json:"username"`
	Email      string        `json:"email"`
	CreateTime time.Time     `json:"create_time"`
	DNI        string        `json:"dni"`
	Roles      []models.Role `json:"roles"`
}

// LoginResponse is the success payload of a login.
type LoginResponse struct {
	Token   string    `json:"token"`
	Message string    `json:"message"`
	Status  int       `json:"status"`
	Data    LoginData `json:"data"`
}

// StatusResponse is the payload of create/update operations.
type StatusResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// UserPage is one page of the user listing.
type UserPage struct {
	Users       []models.User `json:"users"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	PageSize    int           `json:"pageSize"`
}

// CreateUserInput carries the fields of a new account.
type CreateUserInput struct {
	Username   string
	Email      string
	Password   string
	DNI        string
	CreateTime time.Time
}

// UpdateUserInput carries the scalar fields to update plus the full
// replacement list of role ids.
type UpdateUserInput struct {
	ID       uint
	Username string
	Email    string
	DNI      string
	RoleIDs  []uint
}

// Login verifies the credentials and issues a token embedding the
// sanitized user record. Unknown email, wrong password and storage
// failures are indistinguishable to the caller: all come back as
// ErrUnauthorized. The true cause is logged here, not returned.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Printf("login %q: storage failure: %v", email, err)
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if user == nil {
		log.Printf("login %q: user not found", email)
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		log.Printf("login %q: invalid password", email)
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, err := s.tokens.Sign(user)
	if err != nil {
		log.Printf("login %q: sign token: %v", email, err)
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	return &LoginResponse{
		Token:   token,
		Message: "login successful",
		Status:  http.StatusOK,
		Data: LoginData{
			Username:   user.Username,
			Email:      user.Email,
			CreateTime: user.CreateTime,
			DNI:        user.DNI,
			Roles:      user.Roles,
		},
	}, nil
}

// ValidateSession verifies a raw token and returns its claims. Any
// verification failure maps to ErrUnauthorized.
func (s *AuthService) ValidateSession(tokenStr string) (*util.Claims, error) {
	claims, err := s.tokens.Verify(tokenStr)
	if err != nil {
		log.Printf("validate session: %v", err)
		return nil, fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
	}
	return claims, nil
}

// GetUser returns the user with nested role and permission data, or
// (nil, nil) when no row matches. Callers must handle the missing case.
func (s *AuthService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return user, nil
}

// ListUsers returns one 1-indexed page of users. The password column is
// excluded by the repository at the query level.
func (s *AuthService) ListUsers(ctx context.Context, page int) (*UserPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page number must be greater than or equal to 1", ErrValidation)
	}

	users, err := s.repo.FindPage(ctx, (page-1)*s.pageSize, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	totalPages := int((total + int64(s.pageSize) - 1) / int64(s.pageSize))

	return &UserPage{
		Users:       users,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    s.pageSize,
	}, nil
}

// ListRoles returns all roles with nested permissions.
func (s *AuthService) ListRoles(ctx context.Context) ([]models.Role, error) {
	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return roles, nil
}

// AllUsers returns the complete user directory for exports.
func (s *AuthService) AllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return users, nil
}

// CreateUser hashes the password and persists the account. The
// plaintext never reaches storage.
func (s *AuthService) CreateUser(ctx context.Context, in CreateUserInput) (*StatusResponse, error) {
	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	createTime := in.CreateTime
	if createTime.IsZero() {
		createTime = time.Now()
	}

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hashed,
		CreateTime:   createTime,
		DNI:          in.DNI,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return &StatusResponse{
		Message: "user created successfully",
		Status:  http.StatusCreated,
	}, nil
}

// UpdateUser updates the scalar fields and replaces the role
// assignments with the supplied list, atomically. The role list is a
// full replacement, never a diff.
func (s *AuthService) UpdateUser(ctx context.Context, in UpdateUserInput) (*StatusResponse, error) {
	if in.ID == 0 {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if in.RoleIDs == nil {
		return nil, fmt.Errorf("%w: role list is required", ErrValidation)
	}

	user := models.User{
		ID:       in.ID,
		Username: in.Username,
		Email:    in.Email,
		DNI:      in.DNI,
	}
	if err := s.repo.UpdateWithRoles(ctx, &user, in.RoleIDs); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d does not exist", ErrNotFound, in.ID)
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return &StatusResponse{
		Message: "user updated successfully",
		Status:  http.StatusOK,
	}, nil
}

// DeleteUser removes a user and returns the deleted record. When the
// target is missing the behavior depends on configuration: strict mode
// reports ErrNotFound, otherwise the delete succeeds with a nil record.
func (s *AuthService) DeleteUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if user == nil {
		if s.strictDelete {
			return nil, fmt.Errorf("%w: user %d does not exist", ErrNotFound, id)
		}
		return nil, nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		// the row can vanish between the presence check and the delete
		if errors.Is(err, repository.ErrNotFound) {
			if s.strictDelete {
				return nil, fmt.Errorf("%w: user %d does not exist", ErrNotFound, id)
			}
			return user, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return user, nil
}
