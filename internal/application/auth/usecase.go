package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/retail-ops/internal/application/session"
	"github.com/jhoicas/retail-ops/internal/domain"
	"github.com/jhoicas/retail-ops/internal/domain/entity"
	"github.com/jhoicas/retail-ops/internal/domain/repository"
	"github.com/jhoicas/retail-ops/pkg/sessiontoken"
)

// TokenConfig configuración del token de reanudación de sesión.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

// AuthUseCase casos de uso de autenticación: registro, login y reanudación.
type AuthUseCase struct {
	userRepo repository.UserRepository
	tokenCfg TokenConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tokenCfg TokenConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tokenCfg: tokenCfg}
}

// RegisterInput datos del auto-registro. El rol es siempre customer: un
// usuario nunca escala su propio rol; roles mayores solo los asigna un admin.
type RegisterInput struct {
	Name      string
	Password  string
	Latitude  float64
	Longitude float64
}

// Register crea un cliente: hashea el password con bcrypt y persiste.
// Devuelve ErrNameAlreadyExists si el nombre ya está tomado.
func (uc *AuthUseCase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if in.Name == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Latitude < 0 || in.Latitude > 100 || in.Longitude < 0 || in.Longitude > 100 {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Name:         in.Name,
		PasswordHash: string(hash),
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		Role:         entity.RoleCustomer,
	}
	if _, err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifica nombre/password y crea la sesión.
func (uc *AuthUseCase) Login(ctx context.Context, name, password string) (*session.Session, error) {
	user, err := uc.userRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return session.New(user.ID, user.Name, user.Role), nil
}

// ResumeToken genera el token firmado para reanudar la sesión en una próxima
// ejecución. Devuelve "" si no hay secret configurado.
func (uc *AuthUseCase) ResumeToken(sess *session.Session) (string, error) {
	if uc.tokenCfg.Secret == "" {
		return "", nil
	}
	return sessiontoken.Generate(uc.tokenCfg.Secret, sess.UserID, sess.Name, uc.tokenCfg.TTL)
}

// Resume valida un token persistido y reconstruye la sesión. El usuario debe
// seguir existiendo; el rol se lee de la base, no del token.
func (uc *AuthUseCase) Resume(ctx context.Context, token string) (*session.Session, error) {
	if uc.tokenCfg.Secret == "" || token == "" {
		return nil, domain.ErrUnauthorized
	}
	userID, _, err := sessiontoken.Parse(uc.tokenCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return session.New(user.ID, user.Name, user.Role), nil
}
