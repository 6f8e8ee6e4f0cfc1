package auth_test

import (
	"context"
	"testing"

	"github.com/dapphari007/LMS/internal/auth"
	autherrors "github.com/dapphari007/LMS/internal/auth/errors"
	"github.com/dapphari007/LMS/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	byEmail map[string]*user.User
	byID    map[uuid.UUID]*user.User
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindActiveByRoleIDs(ctx context.Context, roleIDs []uuid.UUID, departmentID *uuid.UUID) ([]user.User, error) {
	return nil, nil
}

func (s *stubUserRepo) FindManagerOf(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func newTestUser(t *testing.T, password string, active bool) *user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &user.User{
		ID:           uuid.New(),
		Name:         "Asha Pillai",
		Email:        "asha@example.com",
		PasswordHash: string(hash),
		RoleID:       uuid.New(),
		RoleName:     "employee",
		IsActive:     active,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success", func(t *testing.T) {
		u := newTestUser(t, "s3cret", true)
		repo := &stubUserRepo{byEmail: map[string]*user.User{u.Email: u}}
		service := auth.NewService(repo)

		access, refresh, resp, err := service.Login(ctx, u.Email, "s3cret")

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, u.ID.String(), resp.ID)
		assert.Equal(t, "employee", resp.Role)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		u := newTestUser(t, "s3cret", true)
		repo := &stubUserRepo{byEmail: map[string]*user.User{u.Email: u}}
		service := auth.NewService(repo)

		_, _, _, err := service.Login(ctx, u.Email, "wrong")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email fails identically", func(t *testing.T) {
		service := auth.NewService(&stubUserRepo{byEmail: map[string]*user.User{}})

		_, _, _, err := service.Login(ctx, "nobody@example.com", "whatever")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative inactive user", func(t *testing.T) {
		u := newTestUser(t, "s3cret", false)
		repo := &stubUserRepo{byEmail: map[string]*user.User{u.Email: u}}
		service := auth.NewService(repo)

		_, _, _, err := service.Login(ctx, u.Email, "s3cret")

		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success round trip", func(t *testing.T) {
		u := newTestUser(t, "s3cret", true)
		repo := &stubUserRepo{
			byEmail: map[string]*user.User{u.Email: u},
			byID:    map[uuid.UUID]*user.User{u.ID: u},
		}
		service := auth.NewService(repo)

		_, refresh, _, err := service.Login(ctx, u.Email, "s3cret")
		assert.NoError(t, err)

		access, newRefresh, resp, err := service.RefreshToken(ctx, refresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, u.ID.String(), resp.ID)
	})

	t.Run("negative garbage token", func(t *testing.T) {
		service := auth.NewService(&stubUserRepo{})

		_, _, _, err := service.RefreshToken(ctx, "not-a-jwt")

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("negative user deactivated since issue", func(t *testing.T) {
		u := newTestUser(t, "s3cret", true)
		repo := &stubUserRepo{
			byEmail: map[string]*user.User{u.Email: u},
			byID:    map[uuid.UUID]*user.User{u.ID: u},
		}
		service := auth.NewService(repo)

		_, refresh, _, err := service.Login(ctx, u.Email, "s3cret")
		assert.NoError(t, err)

		u.IsActive = false
		_, _, _, err = service.RefreshToken(ctx, refresh)

		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		u := newTestUser(t, "s3cret", true)
		repo := &stubUserRepo{byID: map[uuid.UUID]*user.User{u.ID: u}}
		service := auth.NewService(repo)

		resp, err := service.GetMe(ctx, u.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, u.Email, resp.Email)
	})

	t.Run("negative unknown user", func(t *testing.T) {
		service := auth.NewService(&stubUserRepo{byID: map[uuid.UUID]*user.User{}})

		_, err := service.GetMe(ctx, uuid.NewString())

		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}
