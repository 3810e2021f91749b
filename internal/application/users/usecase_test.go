package users_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/retail-ops/internal/application/apptest"
	"github.com/jhoicas/retail-ops/internal/application/auth"
	"github.com/jhoicas/retail-ops/internal/application/session"
	"github.com/jhoicas/retail-ops/internal/application/users"
	"github.com/jhoicas/retail-ops/internal/domain"
	"github.com/jhoicas/retail-ops/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	repo  *apptest.UserRepo
	uc    *users.UsersUseCase
	admin *session.Session
	alice *session.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := apptest.NewUserRepo()
	alice := repo.Seed(entity.User{Name: "alice", Role: entity.RoleCustomer})
	admin := repo.Seed(entity.User{Name: "root", Role: entity.RoleAdmin})

	guard := auth.NewGuard(repo, apptest.NewStoreRepo())
	return &fixture{
		repo:  repo,
		uc:    users.NewUsersUseCase(guard, repo),
		admin: session.New(admin.ID, admin.Name, admin.Role),
		alice: session.New(alice.ID, alice.Name, alice.Role),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Add
// ──────────────────────────────────────────────────────────────────────────────

// A diferencia del auto-registro, el alta por admin asigna el rol pedido.
func TestAdd_AdminCreaManagerConHashBcrypt(t *testing.T) {
	f := newFixture(t)

	created, err := f.uc.Add(context.Background(), f.admin, users.AddInput{
		Name: "bob", Password: "secreto", Latitude: 30, Longitude: 30, Role: entity.RoleManager,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleManager, created.Role)
	assert.NotZero(t, created.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secreto")),
		"el password se persiste hasheado con bcrypt")
}

func TestAdd_NoAdminRechazado(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Add(context.Background(), f.alice, users.AddInput{
		Name: "eve", Password: "abc", Role: entity.RoleAdmin,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAdd_EntradasInvalidas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   users.AddInput
	}{
		{"nombre vacío", users.AddInput{Password: "abc", Role: entity.RoleCustomer}},
		{"password corto", users.AddInput{Name: "x", Password: "ab", Role: entity.RoleCustomer}},
		{"rol desconocido", users.AddInput{Name: "x", Password: "abc", Role: "superuser"}},
		{"latitud fuera de rango", users.AddInput{Name: "x", Password: "abc", Role: entity.RoleCustomer, Latitude: 101}},
		{"longitud negativa", users.AddInput{Name: "x", Password: "abc", Role: entity.RoleCustomer, Longitude: -1}},
	}
	for _, tc := range cases {
		_, err := f.uc.Add(ctx, f.admin, tc.in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, tc.name)
	}
}

func TestAdd_NombreDuplicadoRechazado(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Add(context.Background(), f.admin, users.AddInput{
		Name: "alice", Password: "abc", Latitude: 1, Longitude: 1, Role: entity.RoleCustomer,
	})
	assert.ErrorIs(t, err, domain.ErrNameAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Remove / List
// ──────────────────────────────────────────────────────────────────────────────

func TestRemove_AdminEliminaUsuario(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.uc.Remove(context.Background(), f.admin, f.alice.UserID))
	u, err := f.repo.GetByID(context.Background(), f.alice.UserID)
	require.NoError(t, err)
	assert.Nil(t, u)
}

// Un admin no puede eliminarse a sí mismo en medio de su propia sesión.
func TestRemove_AutoEliminacionRechazada(t *testing.T) {
	f := newFixture(t)

	err := f.uc.Remove(context.Background(), f.admin, f.admin.UserID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Usuario con pedidos asociados: el FK RESTRICT de la base se refleja como conflicto.
func TestRemove_UsuarioReferenciadoRechazado(t *testing.T) {
	f := newFixture(t)
	f.repo.Referenced[f.alice.UserID] = true

	err := f.uc.Remove(context.Background(), f.admin, f.alice.UserID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestList_SoloAdmin(t *testing.T) {
	f := newFixture(t)

	list, err := f.uc.List(context.Background(), f.admin)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = f.uc.List(context.Background(), f.alice)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
