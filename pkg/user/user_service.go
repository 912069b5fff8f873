package user

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recetario-backend/domain"
	"recetario-backend/entities"
	"recetario-backend/internal/utils/captcha"
	"recetario-backend/pkg/jwt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		GetAuthWithRole(ctx context.Context, userID string, email string) (domain.AuthStatus, error)

		GetUsers(ctx context.Context, adminID string) ([]domain.AdminUserResponse, error)
		CreateUser(ctx context.Context, adminID string, req domain.AdminCreateUserRequest) (domain.AdminUserResponse, error)
		ChangeUserRole(ctx context.Context, adminID string, userID string, req domain.ChangeRoleRequest) error
		DeleteUser(ctx context.Context, adminID string, userID string) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		captcha        captcha.Verifier
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, captchaVerifier captcha.Verifier) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		captcha:        captchaVerifier,
	}
}

// TranslateRegisterError maps registration failures to the Spanish messages
// the public site shows.
func TranslateRegisterError(err error) string {
	switch {
	case errors.Is(err, domain.ErrCaptchaFailed):
		return domain.MessageCaptchaFailed
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return domain.MessageEmailTaken
	default:
		lowered := strings.ToLower(err.Error())
		if strings.Contains(lowered, "password") {
			return domain.MessageWeakPassword
		}
		if strings.Contains(lowered, "email") {
			return domain.MessageInvalidEmail
		}
		return domain.MessageFailedRegister
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	if err := s.captcha.Verify(ctx, req.CaptchaToken); err != nil {
		return domain.RegisterResponse{}, err
	}

	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return domain.RegisterResponse{}, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RegisterResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	user := &entities.User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: string(hashed),
		RoleID:   domain.RoleUserID,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.RegisterResponse{}, err
	}

	return domain.RegisterResponse{
		ID:    user.ID.String(),
		Email: user.Email,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	roleName := domain.RoleUser
	if user.Role != nil {
		roleName = user.Role.Name
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Email, roleName)
	return domain.LoginResponse{Token: token, Role: roleName}, nil
}

// GetAuthWithRole resolves the caller's profile and role for the current
// request. A valid session without a profile row gets one provisioned with
// the default role; a stale stored email is brought in sync with the
// session's. The admin flag comes from the database check and degrades to
// false when that check fails. Results are never cached across requests.
func (s *userService) GetAuthWithRole(ctx context.Context, userID string, email string) (domain.AuthStatus, error) {
	if userID == "" {
		return domain.AuthStatus{}, nil
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.AuthStatus{}, domain.ErrParseUUID
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AuthStatus{}, err
		}
		provisioned := &entities.User{
			ID:     userUUID,
			Email:  email,
			RoleID: domain.RoleUserID,
		}
		if err := s.userRepository.CreateUser(ctx, provisioned); err != nil {
			return domain.AuthStatus{}, err
		}
		user, err = s.userRepository.GetUserByID(ctx, userID)
		if err != nil {
			return domain.AuthStatus{}, err
		}
	}

	if email != "" && user.Email != email {
		user.Email = email
		if err := s.userRepository.UpdateUser(ctx, user); err != nil {
			return domain.AuthStatus{}, err
		}
	}

	roleName := ""
	if user.Role != nil {
		roleName = user.Role.Name
	}

	isAdmin, err := s.userRepository.HasAdminRole(ctx, userID)
	if err != nil {
		isAdmin = false
	}

	return domain.AuthStatus{
		UserID:  user.ID.String(),
		Email:   user.Email,
		Role:    roleName,
		IsAdmin: isAdmin,
	}, nil
}

func (s *userService) ensureAdmin(ctx context.Context, adminID string) error {
	isAdmin, err := s.userRepository.HasAdminRole(ctx, adminID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return domain.ErrUserNotAllowed
	}
	return nil
}

func (s *userService) GetUsers(ctx context.Context, adminID string) ([]domain.AdminUserResponse, error) {
	if err := s.ensureAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	users, err := s.userRepository.GetUsers(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]domain.AdminUserResponse, 0, len(users))
	for _, u := range users {
		roleName := ""
		if u.Role != nil {
			roleName = u.Role.Name
		}
		response = append(response, domain.AdminUserResponse{
			ID:     u.ID.String(),
			Email:  u.Email,
			RoleID: u.RoleID,
			Role:   roleName,
		})
	}
	return response, nil
}

func (s *userService) CreateUser(ctx context.Context, adminID string, req domain.AdminCreateUserRequest) (domain.AdminUserResponse, error) {
	if err := s.ensureAdmin(ctx, adminID); err != nil {
		return domain.AdminUserResponse{}, err
	}

	roleID, err := strconv.Atoi(req.RoleID)
	if err != nil {
		return domain.AdminUserResponse{}, domain.ErrInvalidRoleID
	}

	role, err := s.userRepository.GetRoleByID(ctx, uint(roleID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AdminUserResponse{}, domain.ErrRoleNotFound
		}
		return domain.AdminUserResponse{}, err
	}

	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return domain.AdminUserResponse{}, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.AdminUserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.AdminUserResponse{}, err
	}

	user := &entities.User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: string(hashed),
		RoleID:   role.ID,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.AdminUserResponse{}, err
	}

	return domain.AdminUserResponse{
		ID:     user.ID.String(),
		Email:  user.Email,
		RoleID: role.ID,
		Role:   role.Name,
	}, nil
}

func (s *userService) ChangeUserRole(ctx context.Context, adminID string, userID string, req domain.ChangeRoleRequest) error {
	if err := s.ensureAdmin(ctx, adminID); err != nil {
		return err
	}

	roleID, err := strconv.Atoi(req.RoleID)
	if err != nil {
		return domain.ErrInvalidRoleID
	}

	if _, err := s.userRepository.GetRoleByID(ctx, uint(roleID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRoleNotFound
		}
		return err
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	user.RoleID = uint(roleID)
	user.Role = nil
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) DeleteUser(ctx context.Context, adminID string, userID string) error {
	if err := s.ensureAdmin(ctx, adminID); err != nil {
		return err
	}

	if _, err := uuid.Parse(userID); err != nil {
		return domain.ErrParseUUID
	}

	if _, err := s.userRepository.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	return s.userRepository.DeleteUser(ctx, userID)
}
