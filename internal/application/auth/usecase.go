package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/pasteleria-pos/internal/application/dto"
	"github.com/tu-usuario/pasteleria-pos/internal/domain"
	"github.com/tu-usuario/pasteleria-pos/internal/domain/entity"
	"github.com/tu-usuario/pasteleria-pos/internal/domain/repository"
	"github.com/tu-usuario/pasteleria-pos/pkg/jwt"
	"github.com/tu-usuario/pasteleria-pos/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación y gestión de empleados.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log, now: time.Now}
}

// Login verifica username/password, estampa el último acceso y genera el JWT.
// El flag ForcePasswordChange viaja en la respuesta para que el cliente fuerce
// el cambio antes de operar.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	now := uc.now()
	user.LastLogin = &now
	if _, err := uc.userRepo.Update(user); err != nil {
		// El login no se cae por no poder estampar la fecha.
		uc.log.Warn().Err(err).Int64("user_id", user.ID).Msg("no se pudo actualizar last_login")
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:               token,
		User:                *toUserDTO(user),
		ForcePasswordChange: user.ForcePasswordChange,
	}, nil
}

// RegisterUser da de alta un empleado con password temporal: el flag
// ForcePasswordChange nace encendido. Devuelve ErrUsernameTaken si el
// username ya existe.
func (uc *UseCase) RegisterUser(ctx context.Context, in dto.RegisterUserRequest) (*dto.UserDTO, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Role != entity.RoleManager && in.Role != entity.RoleCashier {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Username:            in.Username,
		PasswordHash:        string(hash),
		FirstName:           in.FirstName,
		LastName:            in.LastName,
		PhoneNumber:         in.PhoneNumber,
		Address:             in.Address,
		HireDate:            uc.now(),
		Salary:              in.Salary,
		Role:                in.Role,
		IsActive:            true,
		ForcePasswordChange: true,
	}
	id, err := uc.userRepo.Create(user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	uc.log.Info().Int64("user_id", id).Str("role", user.Role).Msg("empleado registrado")
	return toUserDTO(user), nil
}

// ChangePassword verifica la password vigente, persiste el hash nuevo y apaga
// ForcePasswordChange.
func (uc *UseCase) ChangePassword(ctx context.Context, userID int64, in dto.ChangePasswordRequest) error {
	if in.NewPassword == "" {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.ForcePasswordChange = false
	_, err = uc.userRepo.Update(user)
	return err
}

// ChangeRole cambia el rol de un empleado (operación de Manager).
func (uc *UseCase) ChangeRole(ctx context.Context, userID int64, role string) error {
	if role != entity.RoleManager && role != entity.RoleCashier {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	user.Role = role
	_, err = uc.userRepo.Update(user)
	return err
}

// Deactivate da de baja lógica a un empleado; sus ventas históricas quedan.
func (uc *UseCase) Deactivate(ctx context.Context, userID int64) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	user.IsActive = false
	_, err = uc.userRepo.Update(user)
	return err
}

// GetUser proyección de un empleado por id.
func (uc *UseCase) GetUser(ctx context.Context, userID int64) (*dto.UserDTO, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return toUserDTO(user), nil
}

// ListUsers listado paginado de empleados.
func (uc *UseCase) ListUsers(ctx context.Context, limit, offset int) ([]dto.UserDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	users, err := uc.userRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserDTO(u))
	}
	return out, nil
}

func toUserDTO(u *entity.User) *dto.UserDTO {
	if u == nil {
		return nil
	}
	return &dto.UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		IsActive:    u.IsActive,
		HireDate:    u.HireDate,
		LastLogin:   u.LastLogin,
	}
}
