package auth_test

import (
	"context"
	"testing"

	"github.com/ZBee-Tech/e-Conges/internal/auth"
	autherrors "github.com/ZBee-Tech/e-Conges/internal/auth/errors"
	"github.com/ZBee-Tech/e-Conges/internal/domain"
	"github.com/ZBee-Tech/e-Conges/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeAuthRepository struct {
	getByLoginFn func(ctx context.Context, login string) (*user.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*user.User, error)
}

func (f *fakeAuthRepository) GetByLogin(ctx context.Context, login string) (*user.User, error) {
	if f.getByLoginFn != nil {
		return f.getByLoginFn(ctx, login)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func hashedUser(t *testing.T, password string) *user.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)
	return &user.User{
		ID:             uuid.New(),
		OrganizationID: "org-dakar",
		FullName:       "Moussa Ndiaye",
		Username:       "moussa",
		Email:          "moussa@example.com",
		Password:       string(hashed),
		Role:           string(domain.RoleHOD),
	}
}

func parseClaims(t *testing.T, token, secret string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	return claims
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success carries actor context in claims", func(t *testing.T) {
		u := hashedUser(t, "s3cret-pass")
		repo := &fakeAuthRepository{
			getByLoginFn: func(ctx context.Context, login string) (*user.User, error) {
				assert.Equal(t, "moussa", login)
				return u, nil
			},
		}
		svc := auth.NewService(repo)

		accessToken, refreshToken, resp, err := svc.Login(ctx, "moussa", "s3cret-pass")

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, u.ID.String(), resp.ID)
		assert.Equal(t, "HOD", resp.Role)
		assert.Equal(t, "org-dakar", resp.OrganizationID)

		claims := parseClaims(t, accessToken, "test-secret")
		assert.Equal(t, u.ID.String(), claims["user_id"])
		assert.Equal(t, "HOD", claims["role"])
		assert.Equal(t, "org-dakar", claims["organization_id"])
		assert.Equal(t, "Moussa Ndiaye", claims["full_name"])
	})

	t.Run("negative wrong password", func(t *testing.T) {
		u := hashedUser(t, "s3cret-pass")
		repo := &fakeAuthRepository{
			getByLoginFn: func(ctx context.Context, login string) (*user.User, error) {
				return u, nil
			},
		}
		svc := auth.NewService(repo)

		_, _, _, err := svc.Login(ctx, "moussa", "wrong-pass")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown login", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{})

		_, _, _, err := svc.Login(ctx, "ghost", "whatever")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success rotates both tokens", func(t *testing.T) {
		u := hashedUser(t, "s3cret-pass")
		repo := &fakeAuthRepository{
			getByLoginFn: func(ctx context.Context, login string) (*user.User, error) {
				return u, nil
			},
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) {
				assert.Equal(t, u.ID, id)
				return u, nil
			},
		}
		svc := auth.NewService(repo)

		_, refreshToken, _, err := svc.Login(ctx, "moussa", "s3cret-pass")
		assert.NoError(t, err)

		newAccess, newRefresh, resp, err := svc.RefreshToken(ctx, refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, u.ID.String(), resp.ID)

		claims := parseClaims(t, newAccess, "test-secret")
		assert.Equal(t, "HOD", claims["role"])
	})

	t.Run("negative garbage token", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{})

		_, _, _, err := svc.RefreshToken(ctx, "not-a-jwt")

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		u := hashedUser(t, "s3cret-pass")
		repo := &fakeAuthRepository{
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) {
				return u, nil
			},
		}
		svc := auth.NewService(repo)

		resp, err := svc.GetMe(ctx, u.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, u.Username, resp.Username)
		assert.Equal(t, u.Email, resp.Email)
	})

	t.Run("negative invalid id", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{})

		_, err := svc.GetMe(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})

	t.Run("negative unknown user", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{})

		_, err := svc.GetMe(ctx, uuid.New().String())

		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}
