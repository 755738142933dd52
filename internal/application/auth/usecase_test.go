package auth_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/freelanceflow/internal/application/auth"
	"github.com/tu-usuario/freelanceflow/internal/application/dto"
	"github.com/tu-usuario/freelanceflow/internal/domain"
	"github.com/tu-usuario/freelanceflow/internal/domain/entity"
	pkgjwt "github.com/tu-usuario/freelanceflow/pkg/jwt"
)

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testIssuer   = "freelanceflow-test"
	testPassword = "super-secreta-123"
)

type fakeUserRepo struct {
	users     map[string]*entity.User
	lookupErr error // si está seteado, GetByUsername y GetByEmail fallan
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func buildUseCase() (*auth.UseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     testIssuer,
	})
	return uc, repo
}

func registeredUser(t *testing.T, uc *auth.UseCase) *dto.UserResponse {
	t.Helper()
	resp, err := uc.Register(dto.RegisterRequest{
		Username: "freelancer",
		Email:    "freelancer@test.com",
		Password: testPassword,
	})
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaUsuarioConRolUser(t *testing.T) {
	uc, repo := buildUseCase()

	resp := registeredUser(t, uc)

	assert.Equal(t, entity.RoleUser, resp.Role)
	assert.Equal(t, "freelancer", resp.Username)

	stored, _ := repo.GetByID(resp.ID)
	require.NotNil(t, stored)
	assert.True(t, stored.IsActive)
	assert.NotEqual(t, testPassword, stored.PasswordHash, "el password nunca se guarda en claro")
}

func TestRegister_UsernameDuplicado(t *testing.T) {
	uc, _ := buildUseCase()
	registeredUser(t, uc)

	_, err := uc.Register(dto.RegisterRequest{
		Username: "freelancer",
		Email:    "otro@test.com",
		Password: testPassword,
	})
	assert.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := buildUseCase()
	registeredUser(t, uc)

	_, err := uc.Register(dto.RegisterRequest{
		Username: "otro",
		Email:    "freelancer@test.com",
		Password: testPassword,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_FalloDeLecturaDeUnicidad_Propagado(t *testing.T) {
	uc, repo := buildUseCase()
	repo.lookupErr = errors.New("conexión perdida")

	_, err := uc.Register(dto.RegisterRequest{
		Username: "freelancer",
		Email:    "freelancer@test.com",
		Password: testPassword,
	})
	assert.ErrorIs(t, err, repo.lookupErr,
		"un fallo de lectura no debe interpretarse como username libre")
	assert.Empty(t, repo.users, "nada debe persistirse")
}

func TestRegister_PasswordCorto(t *testing.T) {
	uc, _ := buildUseCase()

	_, err := uc.Register(dto.RegisterRequest{
		Username: "freelancer",
		Email:    "freelancer@test.com",
		Password: "corta",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_TokenValidoConClaims(t *testing.T) {
	uc, _ := buildUseCase()
	user := registeredUser(t, uc)

	resp, err := uc.Login(dto.LoginRequest{Username: "freelancer", Password: testPassword})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, 5*time.Second)

	claims, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "freelancer", claims.Username)
	assert.Equal(t, entity.RoleUser, claims.Role)
}

func TestLogin_ActualizaUltimoLogin(t *testing.T) {
	uc, repo := buildUseCase()
	user := registeredUser(t, uc)

	_, err := uc.Login(dto.LoginRequest{Username: "freelancer", Password: testPassword})
	require.NoError(t, err)

	stored, _ := repo.GetByID(user.ID)
	require.NotNil(t, stored.LastLoginAt)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, _ := buildUseCase()
	registeredUser(t, uc)

	_, err := uc.Login(dto.LoginRequest{Username: "freelancer", Password: "equivocada12345"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := buildUseCase()

	_, err := uc.Login(dto.LoginRequest{Username: "fantasma", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"usuario inexistente y password malo devuelven el mismo error")
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, repo := buildUseCase()
	user := registeredUser(t, uc)

	stored, _ := repo.GetByID(user.ID)
	stored.IsActive = false
	require.NoError(t, repo.Update(stored))

	_, err := uc.Login(dto.LoginRequest{Username: "freelancer", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// ChangePassword / Me
// ──────────────────────────────────────────────────────────────────────────────

func TestChangePassword_RotaElHash(t *testing.T) {
	uc, _ := buildUseCase()
	user := registeredUser(t, uc)

	err := uc.ChangePassword(user.ID, dto.ChangePasswordRequest{
		CurrentPassword: testPassword,
		NewPassword:     "nueva-clave-456",
	})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Username: "freelancer", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "el password anterior deja de servir")

	_, err = uc.Login(dto.LoginRequest{Username: "freelancer", Password: "nueva-clave-456"})
	assert.NoError(t, err)
}

func TestChangePassword_ActualIncorrecto(t *testing.T) {
	uc, _ := buildUseCase()
	user := registeredUser(t, uc)

	err := uc.ChangePassword(user.ID, dto.ChangePasswordRequest{
		CurrentPassword: "equivocada12345",
		NewPassword:     "nueva-clave-456",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestChangePassword_NuevoCorto(t *testing.T) {
	uc, _ := buildUseCase()
	user := registeredUser(t, uc)

	err := uc.ChangePassword(user.ID, dto.ChangePasswordRequest{
		CurrentPassword: testPassword,
		NewPassword:     "corta",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMe_DevuelvePerfilSinHash(t *testing.T) {
	uc, _ := buildUseCase()
	user := registeredUser(t, uc)

	resp, err := uc.Me(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, resp.Username)
	assert.Equal(t, user.Email, resp.Email)
}

func TestMe_UsuarioInexistente(t *testing.T) {
	uc, _ := buildUseCase()

	_, err := uc.Me("00000000-0000-0000-0000-00000000dead")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
