package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/oahornets/crosstrack-api/internal/models"
	appErrors "github.com/oahornets/crosstrack-api/pkg/errors"
)

type mockUserRepo struct {
	users      map[string]models.User
	lastLogins map[int]time.Time
}

func newMockUserRepo(users ...models.User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[string]models.User), lastLogins: make(map[int]time.Time)}
	for _, u := range users {
		m.users[u.Username] = u
	}
	return m
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if u, ok := m.users[username]; ok {
		return &u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id int, at time.Time) error {
	m.lastLogins[id] = at
	return nil
}

func testAuthService(t *testing.T, users ...models.User) (*AuthService, *mockUserRepo) {
	t.Helper()
	repo := newMockUserRepo(users...)
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		Secret:     "test-secret",
		Issuer:     "crosstrack-api",
		Audience:   "crosstrack-admin",
		Expiration: time.Hour,
	})
	return svc, repo
}

func hashedPassword(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthLoginIssuesValidToken(t *testing.T) {
	first := "Pat"
	svc, repo := testAuthService(t, models.User{
		ID: 7, Username: "coach", PasswordHash: hashedPassword(t, "s3cret"), FirstName: &first,
	})

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "coach", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, 7, resp.UserID)
	assert.Equal(t, "coach", resp.Username)
	assert.Equal(t, "Pat", resp.FirstName)
	assert.NotEmpty(t, resp.Token)
	assert.Contains(t, repo.lastLogins, 7)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "coach", claims.Username)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc, _ := testAuthService(t, models.User{
		ID: 7, Username: "coach", PasswordHash: hashedPassword(t, "s3cret"),
	})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "coach", Password: "wrong"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 401, appErr.Status)
	assert.Equal(t, "invalid username or password", appErr.Message)
}

func TestAuthLoginUnknownUserSameError(t *testing.T) {
	svc, _ := testAuthService(t, models.User{
		ID: 7, Username: "coach", PasswordHash: hashedPassword(t, "s3cret"),
	})

	_, wrongPass := svc.Login(context.Background(), LoginRequest{Username: "coach", Password: "wrong"})
	_, unknownUser := svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "wrong"})
	require.Error(t, wrongPass)
	require.Error(t, unknownUser)
	// Both failures must be indistinguishable to the caller.
	assert.Equal(t, appErrors.FromError(wrongPass).Message, appErrors.FromError(unknownUser).Message)
	assert.Equal(t, appErrors.FromError(wrongPass).Status, appErrors.FromError(unknownUser).Status)
}

func TestAuthValidateTokenRejectsTampering(t *testing.T) {
	svc, _ := testAuthService(t, models.User{
		ID: 7, Username: "coach", PasswordHash: hashedPassword(t, "s3cret"),
	})

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "coach", Password: "s3cret"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.Token + "x")
	require.Error(t, err)
	assert.Equal(t, 401, appErrors.FromError(err).Status)
}

func TestAuthLoginRequiresCredentials(t *testing.T) {
	svc, _ := testAuthService(t)

	_, err := svc.Login(context.Background(), LoginRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
