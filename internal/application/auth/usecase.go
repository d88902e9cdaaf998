package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/jwt"
)

// minPasswordLen longitud mínima aceptada en registro y cambio de contraseña.
const minPasswordLen = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, login federado y cambio de contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	hashCost int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, hashCost: bcrypt.DefaultCost}
}

// WithHashCost ajusta el costo de bcrypt (los tests usan bcrypt.MinCost).
func (uc *AuthUseCase) WithHashCost(cost int) *AuthUseCase {
	uc.hashCost = cost
	return uc
}

// Register crea un usuario activo con password hasheado.
// Role vacío = cashier; admin no puede auto-registrarse.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || !strings.Contains(email, "@") || name == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	role := entity.RoleCashier
	if in.Role != "" {
		role = entity.Role(in.Role)
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if role == entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	phone := NormalizePhone(in.PhoneNumber)

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if phone != nil {
		byPhone, err := uc.userRepo.GetByPhone(ctx, *phone)
		if err != nil {
			return nil, err
		}
		if byPhone != nil {
			return nil, domain.ErrPhoneAlreadyExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.hashCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		PhoneNumber:  phone,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email desconocido o password incorrecto dan el mismo error para no enumerar cuentas.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}
	return uc.issue(user)
}

// UpsertFederatedUser login vía proveedor externo: crea la cuenta (customer) en el primer acceso
// o reutiliza la existente por email. Las cuentas inactivas se rechazan.
func (uc *AuthUseCase) UpsertFederatedUser(ctx context.Context, profile dto.FederatedProfile) (*dto.LoginResponse, error) {
	email := NormalizeEmail(profile.Email)
	if email == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		name := strings.TrimSpace(profile.Name)
		if name == "" {
			name = email
		}
		now := time.Now()
		user = &entity.User{
			ID:        uuid.New().String(),
			Name:      name,
			Email:     email,
			Role:      entity.RoleCustomer,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			// Otro callback concurrente pudo crearla primero.
			if !errors.Is(err, domain.ErrEmailAlreadyExists) {
				return nil, err
			}
			if user, err = uc.userRepo.GetByEmail(ctx, email); err != nil {
				return nil, err
			}
			if user == nil {
				return nil, domain.ErrUserNotFound
			}
		}
	}
	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}
	return uc.issue(user)
}

// ChangePassword rota la contraseña propia. callerID debe coincidir con userID.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, callerID, userID string, in dto.ChangePasswordRequest) error {
	if callerID == "" || callerID != userID {
		return domain.ErrForbidden
	}
	if len(in.NewPassword) < minPasswordLen {
		return fmt.Errorf("%w: password debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), uc.hashCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(ctx, user)
}

// SeedAdmin crea la cuenta administradora inicial. Si el email ya existe la promueve a admin activa
// y conserva su contraseña. created indica si la cuenta es nueva.
func (uc *AuthUseCase) SeedAdmin(ctx context.Context, name, email, password string) (user *dto.UserResponse, created bool, err error) {
	email = NormalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || !strings.Contains(email, "@") || name == "" {
		return nil, false, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	now := time.Now()
	if existing != nil {
		if existing.Role == entity.RoleAdmin && existing.IsActive {
			return ToUserResponse(existing), false, nil
		}
		existing.Role = entity.RoleAdmin
		existing.IsActive = true
		existing.UpdatedAt = now
		if err := uc.userRepo.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		return ToUserResponse(existing), false, nil
	}
	if len(password) < minPasswordLen {
		return nil, false, fmt.Errorf("%w: password debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.hashCost)
	if err != nil {
		return nil, false, err
	}
	u := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		return nil, false, err
	}
	return ToUserResponse(u), true, nil
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// ToUserResponse convierte la entidad a DTO de salida (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		PhoneNumber: u.PhoneNumber,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// NormalizeEmail minúsculas y sin espacios; así se guardan y consultan los emails.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizePhone nil si el teléfono viene vacío.
func NormalizePhone(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
