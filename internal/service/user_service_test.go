package service

import (
	"context"
	"testing"

	"angaza/internal/access"
	"angaza/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) UserService {
	return NewUserService(repository.NewUserRepository(db))
}

func TestCreateUserAndLogin_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, CreateUserRequest{
		Username: "amina",
		Email:    "amina@angaza.org",
		Password: "secret123",
		Role:     access.RoleProgramManager,
	})
	require.NoError(t, err)
	assert.Equal(t, access.RoleProgramManager, created.Role)

	tokens, err := svc.Login(ctx, LoginUserRequest{Email: "amina@angaza.org", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, tokens.Token)
	require.NotEmpty(t, tokens.RefreshToken)

	// the access token must carry the subject and role claims
	parsed, err := jwt.Parse(tokens.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("default_super_secret_key"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, created.ID.String(), claims["sub"])
	assert.Equal(t, access.RoleProgramManager, claims["role"])

	_, err = svc.Login(ctx, LoginUserRequest{Email: "amina@angaza.org", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginUserRequest{Email: "nobody@angaza.org", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateUser_RejectsUnknownRoleAndDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserRequest{
		Username: "joe", Email: "joe@angaza.org", Password: "secret123", Role: "superuser",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateUser(ctx, CreateUserRequest{
		Username: "joe", Email: "joe@angaza.org", Password: "secret123", Role: access.RoleBoard,
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, CreateUserRequest{
		Username: "joe", Email: "other@angaza.org", Password: "secret123", Role: access.RoleBoard,
	})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = svc.CreateUser(ctx, CreateUserRequest{
		Username: "joe2", Email: "joe@angaza.org", Password: "secret123", Role: access.RoleBoard,
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestRefreshToken_RotatesAndRejectsReuse(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserRequest{
		Username: "otieno", Email: "otieno@angaza.org", Password: "secret123", Role: access.RoleHRLead,
	})
	require.NoError(t, err)

	tokens, err := svc.Login(ctx, LoginUserRequest{Email: "otieno@angaza.org", Password: "secret123"})
	require.NoError(t, err)

	rotated, err := svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	// the spent token is gone
	_, err = svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// logout revokes the current one
	require.NoError(t, svc.Logout(ctx, rotated.RefreshToken))
	_, err = svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: rotated.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateUser_RoleValidatedAgainstPolicy(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, CreateUserRequest{
		Username: "wanjiku", Email: "wanjiku@angaza.org", Password: "secret123", Role: access.RoleFieldOfficer,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateUser(ctx, created.ID.String(), UpdateUserRequest{Role: access.RoleProgramManager})
	require.NoError(t, err)
	assert.Equal(t, access.RoleProgramManager, updated.Role)

	_, err = svc.UpdateUser(ctx, created.ID.String(), UpdateUserRequest{Role: "overlord"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// the fallback entry is not assignable either
	_, err = svc.UpdateUser(ctx, created.ID.String(), UpdateUserRequest{Role: "default"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteUser_SoftDeleteBlocksLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, CreateUserRequest{
		Username: "gone", Email: "gone@angaza.org", Password: "secret123", Role: access.RoleBoard,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, created.ID.String()))

	_, err = svc.GetUserByID(ctx, created.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Login(ctx, LoginUserRequest{Email: "gone@angaza.org", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
