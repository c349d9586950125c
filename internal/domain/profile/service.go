package profile

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"tutorhub/internal/database"
)

type tokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}

// Service contains account and identity business logic.
type Service struct {
	users Repository
	jwt   tokenIssuer
}

func NewService(users Repository, jwt tokenIssuer) *Service {
	return &Service{users: users, jwt: jwt}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         Role(req.Role),
	}

	if err := s.users.Create(ctx, u); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, User: u}, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.users.GetByID(ctx, id)
}

// ListUsers is admin-only; the handler enforces the role.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.users.List(ctx)
}

// UpdateUser lets a user edit their own profile; only admins can change roles
// or other accounts.
func (s *Service) UpdateUser(ctx context.Context, actorID int64, actorRole Role, targetID int64, req UpdateUserRequest) (*User, error) {
	if actorRole != RoleAdmin && actorID != targetID {
		return nil, ErrForbidden
	}
	if req.Role != nil && actorRole != RoleAdmin {
		return nil, ErrForbidden
	}

	u, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len(name) < 3 {
			return nil, ErrValidation
		}
		u.Name = name
	}
	if req.Role != nil {
		if !ValidRole(*req.Role) {
			return nil, ErrValidation
		}
		u.Role = Role(*req.Role)
	}
	if req.AvatarURL != nil {
		u.AvatarURL = req.AvatarURL
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}
