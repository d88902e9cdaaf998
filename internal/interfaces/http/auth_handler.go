package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/ports"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/pkg/jwt"
)

const oauthStateTTL = 10 * time.Minute

// AuthHandler maneja registro, login, cambio de contraseña y login con Google.
type AuthHandler struct {
	uc        *auth.AuthUseCase
	google    ports.OAuthProvider // nil si GOOGLE_CLIENT_ID no está configurado
	jwtSecret string
	metrics   *Metrics
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, google ports.OAuthProvider, jwtSecret string, metrics *Metrics) *AuthHandler {
	return &AuthHandler{uc: uc, google: google, jwtSecret: jwtSecret, metrics: metrics}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "name, email, password, role, phone_number"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return badRequest(c, "VALIDATION", "name, email y password son requeridos")
	}
	user, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return badRequest(c, "VALIDATION", "email y password son requeridos")
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		h.metrics.RecordLogin("failed")
		return respondError(c, err)
	}
	h.metrics.RecordLogin("ok")
	return c.JSON(out)
}

// ChangePassword godoc
// @Summary      Cambiar contraseña propia
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.ChangePasswordRequest  true  "current_password, new_password"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/users/{id}/change-password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.CurrentPassword == "" || in.NewPassword == "" {
		return badRequest(c, "VALIDATION", "current_password y new_password son requeridos")
	}
	err := h.uc.ChangePassword(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		// aquí la contraseña actual incorrecta es un error de validación, no de autenticación
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return badRequest(c, "INVALID_CURRENT_PASSWORD", "la contraseña actual no coincide")
		}
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GoogleLogin godoc
// @Summary      Iniciar login con Google
// @Tags         auth
// @Success      307
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/auth/google [get]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	if h.google == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "OAUTH_DISABLED", Message: "login con Google no configurado"})
	}
	state, err := jwt.GenerateState(h.jwtSecret, uuid.NewString(), oauthStateTTL)
	if err != nil {
		return respondError(c, err)
	}
	return c.Redirect(h.google.AuthCodeURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback godoc
// @Summary      Callback OAuth de Google
// @Tags         auth
// @Produce      json
// @Param        state  query  string  true  "state firmado"
// @Param        code   query  string  true  "authorization code"
// @Success      200    {object}  dto.LoginResponse
// @Failure      401    {object}  dto.ErrorResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Router       /api/auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	if h.google == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "OAUTH_DISABLED", Message: "login con Google no configurado"})
	}
	if err := jwt.VerifyState(h.jwtSecret, c.Query("state")); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "state inválido o expirado"})
	}
	code := c.Query("code")
	if code == "" {
		return badRequest(c, "MISSING_CODE", "code es requerido")
	}
	profile, err := h.google.Exchange(c.UserContext(), code)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "OAUTH_FAILED", Message: "no fue posible validar la cuenta de Google"})
	}
	out, err := h.uc.UpsertFederatedUser(c.UserContext(), *profile)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
