package domain

import (
	"errors"
)

var (
	MessageSuccessRegister = "Usuario creado con éxito"
	MessageSuccessLogin    = "login successful"
	MessageSuccessGetMe    = "success get current user"

	MessageFailedRegister = "Ocurrió un error al registrar la cuenta."
	MessageFailedLogin    = "failed to login"
	MessageFailedGetMe    = "failed to get current user"

	// User-facing registration errors, kept in Spanish like the public site.
	MessageCaptchaFailed = "Verificación de CAPTCHA fallida."
	MessageWeakPassword  = "La contraseña no cumple los requisitos de seguridad."
	MessageEmailTaken    = "Ya existe un usuario registrado con este correo."
	MessageInvalidEmail  = "El correo electrónico no es válido."

	ErrCaptchaFailed      = errors.New("captcha verification failed")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrCredentialsInvalid = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrRoleNotFound       = errors.New("role not found")
)

type (
	RegisterRequest struct {
		Email        string `json:"email" validate:"required,email"`
		Password     string `json:"password" validate:"required,min=8"`
		CaptchaToken string `json:"captcha_token" validate:"required"`
	}

	RegisterResponse struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	// AuthStatus mirrors what every gated page needs to know about the
	// caller: who they are, the stored role, and the per-request admin check.
	AuthStatus struct {
		UserID  string `json:"user_id"`
		Email   string `json:"email"`
		Role    string `json:"role"`
		IsAdmin bool   `json:"is_admin"`
	}
)
