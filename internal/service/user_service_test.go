package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/thomasasfar/api-apotek/internal/apierror"
	"github.com/thomasasfar/api-apotek/internal/config"
	"github.com/thomasasfar/api-apotek/internal/dto"
	"github.com/thomasasfar/api-apotek/internal/model"
	"github.com/thomasasfar/api-apotek/internal/repository"
	"github.com/thomasasfar/api-apotek/internal/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
	}
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

func (r *stubUserRepo) CountByUsername(_ context.Context, username string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Username == username {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) Search(_ context.Context, _ dto.UserFilter) ([]model.User, int64, error) {
	var out []model.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func buildUserSvc() (UserService, *stubUserRepo, *config.Config) {
	repo := newStubUserRepo()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 1}
	return NewUserService(repo, cfg), repo, cfg
}

func TestLogin_IssuesTokenWithRole(t *testing.T) {
	svc, _, cfg := buildUserSvc()
	_, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Username: "ani",
		Password: "rahasia1",
		Name:     "Ani",
		Role:     model.RolePramuniaga,
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ani", Password: "rahasia1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := token.Parse(cfg.JWTSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, model.RolePramuniaga, claims.Role)
	assert.Equal(t, resp.ID, claims.Subject)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := buildUserSvc()
	_, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Username: "budi",
		Password: "rahasia1",
		Name:     "Budi",
		Role:     model.RoleSuperadmin,
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "budi", Password: "salah"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apierror.StatusOf(err))
	assert.Equal(t, "invalid username or password", err.Error())
}

func TestLogin_UnknownUsernameSameMessage(t *testing.T) {
	svc, _, _ := buildUserSvc()

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "whatever"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apierror.StatusOf(err))
	assert.Equal(t, "invalid username or password", err.Error())
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	svc, _, _ := buildUserSvc()
	req := dto.CreateUserRequest{
		Username: "citra",
		Password: "rahasia1",
		Name:     "Citra",
		Role:     model.RolePramuniaga,
	}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apierror.StatusOf(err))
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreateUser_PasswordIsHashed(t *testing.T) {
	svc, repo, _ := buildUserSvc()
	resp, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Username: "dewi",
		Password: "rahasia1",
		Name:     "Dewi",
		Role:     model.RolePramuniaga,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Token)

	stored := repo.users[mustParseUUID(t, resp.ID)]
	assert.NotEqual(t, "rahasia1", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestCurrent_UserGone(t *testing.T) {
	svc, _, _ := buildUserSvc()

	_, err := svc.Current(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apierror.StatusOf(err))
}
