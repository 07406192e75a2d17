package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almoxarifado-api/internal/application/dto"
	"github.com/jhoicas/almoxarifado-api/internal/application/usecase"
	"github.com/jhoicas/almoxarifado-api/internal/domain"
	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
	"github.com/jhoicas/almoxarifado-api/internal/domain/repository"
	"github.com/jhoicas/almoxarifado-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	staffRepo repository.StaffRepository
	jwtCfg    JWTConfig
	cost      int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, staffRepo repository.StaffRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, staffRepo: staffRepo, jwtCfg: jwtCfg, cost: bcrypt.DefaultCost}
}

// WithBcryptCost cambia el costo de bcrypt (tests usan bcrypt.MinCost).
func (uc *AuthUseCase) WithBcryptCost(cost int) *AuthUseCase {
	uc.cost = cost
	return uc
}

// NeedsBootstrap indica si aún no existe ningún usuario; el primero puede registrarse sin token.
func (uc *AuthUseCase) NeedsBootstrap(ctx context.Context) (bool, error) {
	n, err := uc.userRepo.Count(ctx)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// RegisterUser crea un usuario con password hasheado (bcrypt).
// Si no hay usuarios, el primero se crea como admin sin importar callerRole; después solo un admin registra.
// Devuelve ErrUsernameAlreadyExists si el username ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, callerRole string, in dto.RegisterRequest) (*dto.UserResponse, error) {
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Name = strings.TrimSpace(in.Name)
	in.StaffID = strings.TrimSpace(in.StaffID)

	bootstrap, err := uc.NeedsBootstrap(ctx)
	if err != nil {
		return nil, err
	}
	if !bootstrap && callerRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	v := domain.NewValidationError()
	if in.Username == "" {
		v.Add("username", "el usuario es obligatorio")
	}
	if len(in.Password) < minPasswordLength {
		v.Add("password", "la contraseña debe tener al menos 8 caracteres")
	}
	role := in.Role
	if bootstrap {
		role = entity.RoleAdmin
	} else if role == "" {
		role = entity.RoleOperator
	}
	if !entity.ValidRole(role) {
		v.Add("role", "rol inválido (admin, operator)")
	}
	if in.StaffID != "" && uc.staffRepo != nil {
		staff, err := uc.staffRepo.GetByID(ctx, in.StaffID)
		if err != nil {
			return nil, err
		}
		if staff == nil {
			v.Add("staff_id", "funcionario no encontrado")
		}
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	existing, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	name := in.Name
	if name == "" {
		name = in.Username
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		StaffID:      in.StaffID,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return usecase.ToUserResponse(user), nil
}

// Login verifica username/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(in.Username)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:  user.ID,
		StaffID: user.StaffID,
		Role:    user.Role,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.ToUserResponse(user),
	}, nil
}
