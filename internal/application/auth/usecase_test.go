package auth_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/auth"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/ventas-api/pkg/jwt"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

type fakeUserRepo struct {
	users  map[string]*entity.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

type fakeAuditRepo struct {
	entries []*entity.AuditLog
	failing bool
}

func (r *fakeAuditRepo) Create(entry *entity.AuditLog) error {
	if r.failing {
		return errors.New("auditoría caída")
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeAuditRepo) List(limit, offset int) ([]*entity.AuditLog, error) {
	return r.entries, nil
}

func newAuthUC() (*auth.AuthUseCase, *fakeUserRepo, *fakeAuditRepo) {
	users := newFakeUserRepo()
	audit := &fakeAuditRepo{}
	uc := auth.NewAuthUseCase(users, audit, auth.JWTConfig{
		Secret:     "unit-test-secret",
		ExpMinutes: 60,
		Issuer:     "ventas-api-test",
	}, logger.NewNop())
	return uc, users, audit
}

func registerSales(t *testing.T, uc *auth.AuthUseCase) *dto.UserResponse {
	t.Helper()
	user, err := uc.RegisterUser(context.Background(), "admin-1", dto.RegisterRequest{
		Username: "jperez",
		Email:    "jperez@example.com",
		Password: "secreto123",
		FullName: "Juan Pérez",
		Role:     "sales",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterUser_HasheaPasswordYAudita(t *testing.T) {
	uc, users, audit := newAuthUC()

	got := registerSales(t, uc)
	assert.Equal(t, "jperez", got.Username)
	assert.Equal(t, "sales", got.Role)
	assert.True(t, got.IsActive)

	// El hash nunca es el password en claro.
	stored := users.users[got.ID]
	assert.NotEqual(t, "secreto123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "user.register", audit.entries[0].Action)
}

func TestRegisterUser_AuditaConIPDelCliente(t *testing.T) {
	uc, _, audit := newAuthUC()

	ctx := entity.WithClientIP(context.Background(), "203.0.113.9")
	_, err := uc.RegisterUser(ctx, "admin-1", dto.RegisterRequest{
		Username: "mrojas",
		Email:    "mrojas@example.com",
		Password: "secreto123",
		Role:     "sales",
	})
	require.NoError(t, err)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "203.0.113.9", audit.entries[0].IPAddress)
}

func TestRegisterUser_AuditoriaCaidaNoBloqueaElRegistro(t *testing.T) {
	uc, users, audit := newAuthUC()
	audit.failing = true

	got := registerSales(t, uc)
	assert.NotEmpty(t, got.ID)
	assert.NotNil(t, users.users[got.ID])
	assert.Empty(t, audit.entries)
}

func TestRegisterUser_UsernameOEmailDuplicado(t *testing.T) {
	uc, _, _ := newAuthUC()
	registerSales(t, uc)

	_, err := uc.RegisterUser(context.Background(), "admin-1", dto.RegisterRequest{
		Username: "jperez",
		Email:    "otro@example.com",
		Password: "x12345678",
		Role:     "sales",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(context.Background(), "admin-1", dto.RegisterRequest{
		Username: "otro",
		Email:    "jperez@example.com",
		Password: "x12345678",
		Role:     "sales",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_RolInvalido(t *testing.T) {
	uc, _, _ := newAuthUC()

	_, err := uc.RegisterUser(context.Background(), "admin-1", dto.RegisterRequest{
		Username: "jperez",
		Email:    "jperez@example.com",
		Password: "secreto123",
		Role:     "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_CredencialesCorrectasEmiteJWT(t *testing.T) {
	uc, _, _ := newAuthUC()
	registered := registerSales(t, uc)

	got, err := uc.Login(dto.LoginRequest{Username: "jperez", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, got.User.ID)

	userID, role, err := pkgjwt.Parse("unit-test-secret", got.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, "sales", role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, _, _ := newAuthUC()
	registerSales(t, uc)

	_, err := uc.Login(dto.LoginRequest{Username: "jperez", Password: "equivocado"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _, _ := newAuthUC()

	_, err := uc.Login(dto.LoginRequest{Username: "fantasma", Password: "loquesea"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, users, _ := newAuthUC()
	registered := registerSales(t, uc)
	users.users[registered.ID].IsActive = false

	_, err := uc.Login(dto.LoginRequest{Username: "jperez", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateUser_CambiaRolYEstado(t *testing.T) {
	uc, _, _ := newAuthUC()
	registered := registerSales(t, uc)

	newRole := "manager"
	inactive := false
	got, err := uc.UpdateUser(context.Background(), "admin-1", registered.ID, dto.UpdateUserRequest{
		Role:     &newRole,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "manager", got.Role)
	assert.False(t, got.IsActive)

	badRole := "superuser"
	_, err = uc.UpdateUser(context.Background(), "admin-1", registered.ID, dto.UpdateUserRequest{Role: &badRole})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
