package user

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	migration "recetario-backend/cmd/database/migrate"
	"recetario-backend/domain"
	"recetario-backend/entities"
	"recetario-backend/pkg/jwt"
)

type stubCaptcha struct {
	err error
}

func (s stubCaptcha) Verify(ctx context.Context, token string) error {
	return s.err
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Role{}, &entities.User{}))
	require.NoError(t, migration.SeedRoles(db))
	return db
}

func newTestService(db *gorm.DB, captchaErr error) UserService {
	return NewUserService(NewUserRepository(db), jwt.NewJWTService(), stubCaptcha{err: captchaErr})
}

func seedUser(t *testing.T, db *gorm.DB, email string, roleID uint) uuid.UUID {
	t.Helper()
	u := entities.User{ID: uuid.New(), Email: email, Password: "hash", RoleID: roleID}
	require.NoError(t, db.Create(&u).Error)
	return u.ID
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db, nil)

	registered, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:        "nueva@test.com",
		Password:     "supersegura",
		CaptchaToken: "token",
	})
	require.NoError(t, err)
	require.Equal(t, "nueva@test.com", registered.Email)

	var stored entities.User
	require.NoError(t, db.Where("email = ?", "nueva@test.com").First(&stored).Error)
	require.EqualValues(t, domain.RoleUserID, stored.RoleID)
	require.NotEqual(t, "supersegura", stored.Password)

	login, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "nueva@test.com",
		Password: "supersegura",
	})
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)
	require.Equal(t, domain.RoleUser, login.Role)

	userID, email, role, err := jwt.NewJWTService().GetUserByToken(login.Token)
	require.NoError(t, err)
	require.Equal(t, stored.ID.String(), userID)
	require.Equal(t, "nueva@test.com", email)
	require.Equal(t, domain.RoleUser, role)
}

func TestRegisterCaptchaRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db, domain.ErrCaptchaFailed)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:        "nueva@test.com",
		Password:     "supersegura",
		CaptchaToken: "bad",
	})
	require.ErrorIs(t, err, domain.ErrCaptchaFailed)
	require.Equal(t, domain.MessageCaptchaFailed, TranslateRegisterError(err))

	var count int64
	require.NoError(t, db.Model(&entities.User{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db, nil)
	seedUser(t, db, "ocupada@test.com", domain.RoleUserID)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:        "ocupada@test.com",
		Password:     "supersegura",
		CaptchaToken: "token",
	})
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	require.Equal(t, domain.MessageEmailTaken, TranslateRegisterError(err))
}

func TestTranslateRegisterErrorFallbacks(t *testing.T) {
	require.Equal(t, domain.MessageWeakPassword, TranslateRegisterError(errors.New("password is too short")))
	require.Equal(t, domain.MessageInvalidEmail, TranslateRegisterError(errors.New("invalid Email format")))
	require.Equal(t, domain.MessageFailedRegister, TranslateRegisterError(errors.New("connection refused")))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db, nil)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:        "nueva@test.com",
		Password:     "supersegura",
		CaptchaToken: "token",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), domain.LoginRequest{Email: "nueva@test.com", Password: "incorrecta"})
	require.ErrorIs(t, err, domain.ErrCredentialsInvalid)

	_, err = svc.Login(context.Background(), domain.LoginRequest{Email: "desconocida@test.com", Password: "supersegura"})
	require.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestGetAuthWithRoleAnonymous(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db, nil)

	status, err := svc.GetAuthWithRole(context.Background(), "", "")
	require.NoError(t, err)
	require.Empty(t, status.UserID)
	require.False(t, status.IsAdmin)
}

func TestGetAuthWithRoleProvisionsMissingProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db, nil)
	sessionID := uuid.New()

	status, err := svc.GetAuthWithRole(context.Background(), sessionID.String(), "nueva@test.com")
	require.NoError(t, err)
	require.Equal(t, sessionID.String(), status.UserID)
	require.Equal(t, "nueva@test.com", status.Email)
	require.Equal(t, domain.RoleUser, status.Role)
	require.False(t, status.IsAdmin)

	// A second resolution reuses the provisioned row.
	_, err = svc.GetAuthWithRole(context.Background(), sessionID.String(), "nueva@test.com")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&entities.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestGetAuthWithRoleSyncsEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db, nil)
	id := seedUser(t, db, "vieja@test.com", domain.RoleUserID)

	status, err := svc.GetAuthWithRole(context.Background(), id.String(), "nueva@test.com")
	require.NoError(t, err)
	require.Equal(t, "nueva@test.com", status.Email)

	var stored entities.User
	require.NoError(t, db.Where("id = ?", id).First(&stored).Error)
	require.Equal(t, "nueva@test.com", stored.Email)
}

func TestGetAuthWithRoleAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db, nil)
	id := seedUser(t, db, "admin@test.com", domain.RoleAdminID)

	status, err := svc.GetAuthWithRole(context.Background(), id.String(), "admin@test.com")
	require.NoError(t, err)
	require.True(t, status.IsAdmin)
	require.Equal(t, domain.RoleAdmin, status.Role)
}

func TestAdminEndpointsRequireAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db, nil)
	regular := seedUser(t, db, "user@test.com", domain.RoleUserID)
	target := seedUser(t, db, "target@test.com", domain.RoleUserID)

	_, err := svc.GetUsers(context.Background(), regular.String())
	require.ErrorIs(t, err, domain.ErrUserNotAllowed)

	_, err = svc.CreateUser(context.Background(), regular.String(), domain.AdminCreateUserRequest{
		Email: "x@test.com", Password: "supersegura", RoleID: "1",
	})
	require.ErrorIs(t, err, domain.ErrUserNotAllowed)

	err = svc.ChangeUserRole(context.Background(), regular.String(), target.String(), domain.ChangeRoleRequest{RoleID: "2"})
	require.ErrorIs(t, err, domain.ErrUserNotAllowed)

	err = svc.DeleteUser(context.Background(), regular.String(), target.String())
	require.ErrorIs(t, err, domain.ErrUserNotAllowed)
}

func TestAdminGetUsers(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db, nil)
	admin := seedUser(t, db, "admin@test.com", domain.RoleAdminID)
	seedUser(t, db, "user@test.com", domain.RoleUserID)

	users, err := svc.GetUsers(context.Background(), admin.String())
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "admin@test.com", users[0].Email)
	require.Equal(t, domain.RoleAdmin, users[0].Role)
	require.Equal(t, "user@test.com", users[1].Email)
}

func TestAdminCreateUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db, nil)
	admin := seedUser(t, db, "admin@test.com", domain.RoleAdminID)

	created, err := svc.CreateUser(context.Background(), admin.String(), domain.AdminCreateUserRequest{
		Email:    "editor@test.com",
		Password: "supersegura",
		RoleID:   "2",
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, created.Role)

	isAdmin, err := NewUserRepository(db).HasAdminRole(context.Background(), created.ID)
	require.NoError(t, err)
	require.True(t, isAdmin)

	_, err = svc.CreateUser(context.Background(), admin.String(), domain.AdminCreateUserRequest{
		Email: "editor@test.com", Password: "supersegura", RoleID: "1",
	})
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = svc.CreateUser(context.Background(), admin.String(), domain.AdminCreateUserRequest{
		Email: "otra@test.com", Password: "supersegura", RoleID: "abc",
	})
	require.ErrorIs(t, err, domain.ErrInvalidRoleID)

	_, err = svc.CreateUser(context.Background(), admin.String(), domain.AdminCreateUserRequest{
		Email: "otra@test.com", Password: "supersegura", RoleID: "9",
	})
	require.ErrorIs(t, err, domain.ErrRoleNotFound)
}

func TestChangeUserRole(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db, nil)
	admin := seedUser(t, db, "admin@test.com", domain.RoleAdminID)
	target := seedUser(t, db, "user@test.com", domain.RoleUserID)

	err := svc.ChangeUserRole(context.Background(), admin.String(), target.String(), domain.ChangeRoleRequest{RoleID: "abc"})
	require.ErrorIs(t, err, domain.ErrInvalidRoleID)

	err = svc.ChangeUserRole(context.Background(), admin.String(), target.String(), domain.ChangeRoleRequest{RoleID: "9"})
	require.ErrorIs(t, err, domain.ErrRoleNotFound)

	err = svc.ChangeUserRole(context.Background(), admin.String(), uuid.New().String(), domain.ChangeRoleRequest{RoleID: "2"})
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	err = svc.ChangeUserRole(context.Background(), admin.String(), target.String(), domain.ChangeRoleRequest{RoleID: "2"})
	require.NoError(t, err)

	isAdmin, err := NewUserRepository(db).HasAdminRole(context.Background(), target.String())
	require.NoError(t, err)
	require.True(t, isAdmin)
}

func TestAdminDeleteUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db, nil)
	admin := seedUser(t, db, "admin@test.com", domain.RoleAdminID)
	target := seedUser(t, db, "user@test.com", domain.RoleUserID)

	err := svc.DeleteUser(context.Background(), admin.String(), uuid.New().String())
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	err = svc.DeleteUser(context.Background(), admin.String(), "not-a-uuid")
	require.ErrorIs(t, err, domain.ErrParseUUID)

	require.NoError(t, svc.DeleteUser(context.Background(), admin.String(), target.String()))

	var stored entities.User
	err = db.Where("id = ?", target).First(&stored).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
