package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knockFahim/inventory-management-system-sub001/internal/application/auth"
	"github.com/knockFahim/inventory-management-system-sub001/internal/application/dto"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/entity"
)

// ── Fake UserRepository ───────────────────────────────────────────────────────

type fakeUserRepo struct {
	byEmail map[string]*entity.User
	findErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrDuplicate
	}
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *fakeUserRepo) Update(*entity.User) error { return nil }
func (r *fakeUserRepo) List(int, int) ([]*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) Delete(id string) error {
	for email, u := range r.byEmail {
		if u.ID == id {
			delete(r.byEmail, email)
		}
	}
	return nil
}

func testJWTConfig() auth.JWTConfig {
	return auth.JWTConfig{Secret: "secret-de-prueba", ExpMinutes: 60, Issuer: "inventario-test"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarYLogin_RoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTConfig())

	user, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "ana@acme.com", Password: "s3creta", Name: "Ana", Role: entity.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, user.Role)
	assert.Equal(t, "active", user.Status)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@acme.com", Password: "s3creta"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, user.ID, out.User.ID)
}

func TestRegistrar_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTConfig())

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@acme.com", Password: "s3creta"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "ana@acme.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// Un fallo real del repositorio al buscar el email se propaga tal cual,
// no se enmascara como duplicado ni se ignora.
func TestRegistrar_ErrorDeRepositorio_SePropaga(t *testing.T) {
	repo := newFakeUserRepo()
	repo.findErr = errors.New("conexión perdida")
	uc := auth.NewAuthUseCase(repo, testJWTConfig())

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@acme.com", Password: "s3creta"})
	require.Error(t, err)
	assert.ErrorIs(t, err, repo.findErr)
	assert.Empty(t, repo.byEmail)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTConfig())

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@acme.com", Password: "s3creta"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@acme.com", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
