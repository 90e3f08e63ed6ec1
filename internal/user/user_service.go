package user

import (
	"context"
	"errors"

	"github.com/ZBee-Tech/e-Conges/internal/domain"
	"github.com/ZBee-Tech/e-Conges/internal/shared/contextutil"
	usererrors "github.com/ZBee-Tech/e-Conges/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context, actor domain.Actor, filter ListUsersFilter) ([]UserResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (UserResponse, error)
	Update(ctx context.Context, actor domain.Actor, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// canManage limits account management to the CEO (own organization) and
// the Admin (any organization).
func canManage(actor domain.Actor) bool {
	return actor.Role == domain.RoleCEO || actor.Role == domain.RoleAdmin
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, nil)

	if !canManage(actor) {
		return UserResponse{}, usererrors.ErrNotAManager
	}

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	organizationID := req.OrganizationID
	if organizationID == "" || actor.Role != domain.RoleAdmin {
		// A CEO always creates accounts inside its own organization.
		organizationID = actor.OrganizationID
	}

	l.Info("creating user",
		zap.String("username", req.Username),
		zap.String("role", string(role)),
		zap.String("organization_id", organizationID),
	)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error("failed to hash password", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		FullName:       req.FullName,
		Username:       req.Username,
		Email:          req.Email,
		Password:       string(hashedPassword),
		Role:           string(role),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		l.Error("failed to create user", zap.Error(err))
		return UserResponse{}, err
	}

	l.Info("user created", zap.String("user_id", u.ID.String()))
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Actor, filter ListUsersFilter) ([]UserResponse, error) {
	if !canManage(actor) {
		return nil, usererrors.ErrNotAManager
	}

	// A CEO stays inside its own organization; an Admin sees everything
	// unless it asks for one organization.
	var (
		users []User
		err   error
	)
	switch {
	case actor.Role != domain.RoleAdmin:
		users, err = s.repo.FindAllByOrganization(ctx, actor.OrganizationID)
	case filter.OrganizationID != "":
		users, err = s.repo.FindAllByOrganization(ctx, filter.OrganizationID)
	default:
		users, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (UserResponse, error) {
	u, err := s.findScoped(ctx, actor, id)
	if err != nil {
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, actor domain.Actor, id string, req UpdateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, nil)

	u, err := s.findScoped(ctx, actor, id)
	if err != nil {
		return UserResponse{}, err
	}

	// Only the profile fields move; email, role and organization are
	// immutable after creation.
	u.FullName = req.FullName
	u.Username = req.Username

	if err := s.repo.Update(ctx, u); err != nil {
		l.Error("failed to update user", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}

	return mapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if _, err := s.findScoped(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) findScoped(ctx context.Context, actor domain.Actor, id string) (*User, error) {
	if !canManage(actor) {
		return nil, usererrors.ErrNotAManager
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		return nil, err
	}

	if actor.Role != domain.RoleAdmin && u.OrganizationID != actor.OrganizationID {
		return nil, usererrors.ErrWrongOrganization
	}

	return u, nil
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:             u.ID.String(),
		FullName:       u.FullName,
		Username:       u.Username,
		Email:          u.Email,
		Role:           u.Role,
		OrganizationID: u.OrganizationID,
		CreatedAt:      u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
