package service_test

import (
	"context"
	"testing"

	"github.com/IAmPiHi/StockSystem/internal/config"
	"github.com/IAmPiHi/StockSystem/internal/dto"
	"github.com/IAmPiHi/StockSystem/internal/model"
	"github.com/IAmPiHi/StockSystem/internal/repository"
	"github.com/IAmPiHi/StockSystem/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func buildAuthSvc(t *testing.T) (service.AuthService, *stubUserRepo) {
	t.Helper()
	repo := newStubUserRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &model.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
	}))
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return service.NewAuthService(repo, cfg), repo
}

func TestLogin_Success(t *testing.T) {
	svc, _ := buildAuthSvc(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "secret123"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "admin", resp.User.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := buildAuthSvc(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := buildAuthSvc(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "x"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestRefresh_IssuesNewPair(t *testing.T) {
	svc, _ := buildAuthSvc(t)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "secret123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.User.ID, refreshed.User.ID)
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc, _ := buildAuthSvc(t)

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}
