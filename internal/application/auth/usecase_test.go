package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/retail-ops/internal/application/apptest"
	"github.com/jhoicas/retail-ops/internal/application/auth"
	"github.com/jhoicas/retail-ops/internal/domain"
	"github.com/jhoicas/retail-ops/internal/domain/entity"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuthUC(users *apptest.UserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(users, auth.TokenConfig{Secret: testSecret, TTL: time.Hour})
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

// El auto-registro crea SIEMPRE un customer: nadie escala su propio rol.
func TestRegister_SiempreCustomer(t *testing.T) {
	users := apptest.NewUserRepo()
	uc := newAuthUC(users)

	u, err := uc.Register(context.Background(), auth.RegisterInput{
		Name: "alice", Password: "secreto", Latitude: 10, Longitude: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleCustomer, u.Role)
	assert.NotZero(t, u.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secreto")))
}

func TestRegister_NombreTomado(t *testing.T) {
	users := apptest.NewUserRepo()
	users.Seed(entity.User{Name: "alice", Role: entity.RoleCustomer})
	uc := newAuthUC(users)

	_, err := uc.Register(context.Background(), auth.RegisterInput{
		Name: "alice", Password: "x", Latitude: 1, Longitude: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNameAlreadyExists)
}

func TestRegister_CoordenadasFueraDelPlano(t *testing.T) {
	uc := newAuthUC(apptest.NewUserRepo())

	_, err := uc.Register(context.Background(), auth.RegisterInput{
		Name: "x", Password: "x", Latitude: 101, Longitude: 10,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesCorrectas(t *testing.T) {
	users := apptest.NewUserRepo()
	uc := newAuthUC(users)
	_, err := uc.Register(context.Background(), auth.RegisterInput{
		Name: "alice", Password: "secreto", Latitude: 10, Longitude: 10,
	})
	require.NoError(t, err)

	sess, err := uc.Login(context.Background(), "alice", "secreto")
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Name)
	assert.Equal(t, entity.RoleCustomer, sess.Role)
	assert.NotEmpty(t, sess.ID, "la sesión lleva un uuid para correlación en logs")
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	users := apptest.NewUserRepo()
	uc := newAuthUC(users)
	_, err := uc.Register(context.Background(), auth.RegisterInput{
		Name: "alice", Password: "secreto", Latitude: 10, Longitude: 10,
	})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), "alice", "otro")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newAuthUC(apptest.NewUserRepo())

	_, err := uc.Login(context.Background(), "nadie", "x")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ResumeToken / Resume
// ──────────────────────────────────────────────────────────────────────────────

func TestResume_RoundTrip(t *testing.T) {
	users := apptest.NewUserRepo()
	uc := newAuthUC(users)
	_, err := uc.Register(context.Background(), auth.RegisterInput{
		Name: "alice", Password: "secreto", Latitude: 10, Longitude: 10,
	})
	require.NoError(t, err)
	sess, err := uc.Login(context.Background(), "alice", "secreto")
	require.NoError(t, err)

	token, err := uc.ResumeToken(sess)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resumed, err := uc.Resume(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, resumed.UserID)
	assert.Equal(t, sess.Name, resumed.Name)
}

// El token identifica al usuario pero el usuario debe seguir en la base.
func TestResume_UsuarioBorradoRechazado(t *testing.T) {
	users := apptest.NewUserRepo()
	uc := newAuthUC(users)
	u, err := uc.Register(context.Background(), auth.RegisterInput{
		Name: "alice", Password: "secreto", Latitude: 10, Longitude: 10,
	})
	require.NoError(t, err)
	sess, err := uc.Login(context.Background(), "alice", "secreto")
	require.NoError(t, err)
	token, err := uc.ResumeToken(sess)
	require.NoError(t, err)

	require.NoError(t, users.Delete(context.Background(), u.ID))

	_, err = uc.Resume(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResume_TokenAdulterado(t *testing.T) {
	uc := newAuthUC(apptest.NewUserRepo())

	_, err := uc.Resume(context.Background(), "no.es.un-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Sin secret configurado no hay persistencia de sesión: el token sale vacío
// y Resume rechaza cualquier entrada.
func TestResume_SinSecretDeshabilitado(t *testing.T) {
	uc := auth.NewAuthUseCase(apptest.NewUserRepo(), auth.TokenConfig{})

	token, err := uc.ResumeToken(nil)
	require.NoError(t, err)
	assert.Empty(t, token)

	_, err = uc.Resume(context.Background(), "lo-que-sea")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
