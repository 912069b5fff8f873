package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"recetario-backend/domain"
	"recetario-backend/internal/api/presenters"
	"recetario-backend/pkg/user"
)

type (
	AdminHandler interface {
		GetUsers(c *fiber.Ctx) error
		CreateUser(c *fiber.Ctx) error
		ChangeUserRole(c *fiber.Ctx) error
		DeleteUser(c *fiber.Ctx) error
	}

	adminHandler struct {
		userService user.UserService
		validator   *validator.Validate
	}
)

func NewAdminHandler(userService user.UserService, validator *validator.Validate) AdminHandler {
	return &adminHandler{
		userService: userService,
		validator:   validator,
	}
}

func adminErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrRoleNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusBadRequest
	}
}

func (h *adminHandler) GetUsers(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)

	res, err := h.userService.GetUsers(c.Context(), adminID)
	if err != nil {
		return presenters.ErrorResponse(c, adminErrorStatus(err), domain.MessageFailedGetUsers, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUsers)
}

func (h *adminHandler) CreateUser(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)

	req := new(domain.AdminCreateUserRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateUser, err)
	}

	res, err := h.userService.CreateUser(c.Context(), adminID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, adminErrorStatus(err), domain.MessageFailedCreateUser, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateUser)
}

func (h *adminHandler) ChangeUserRole(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)
	userID := c.Params("userId")

	req := new(domain.ChangeRoleRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedChangeRole, err)
	}

	if err := h.userService.ChangeUserRole(c.Context(), adminID, userID, *req); err != nil {
		return presenters.ErrorResponse(c, adminErrorStatus(err), domain.MessageFailedChangeRole, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessChangeRole)
}

func (h *adminHandler) DeleteUser(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)
	userID := c.Params("userId")

	if err := h.userService.DeleteUser(c.Context(), adminID, userID); err != nil {
		return presenters.ErrorResponse(c, adminErrorStatus(err), domain.MessageFailedDeleteUser, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteUser)
}
