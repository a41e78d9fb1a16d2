package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mlemaire/user-management-api/internal/dto"
	"github.com/mlemaire/user-management-api/internal/middleware"
	"github.com/mlemaire/user-management-api/internal/services"
	"github.com/mlemaire/user-management-api/internal/store"
	"github.com/mlemaire/user-management-api/internal/validation"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(
			dto.NewError(dto.CodeInternalError, "An error occurred while fetching users."))
	}

	return c.JSON(fiber.Map{
		"message": "User list fetched successfully.",
		"users":   users,
	})
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			dto.NewError(dto.CodeInvalidUserID, "Invalid user identifier."))
	}

	user, err := h.userService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(
				dto.NewError(dto.CodeUserNotFound, "User not found."))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(
			dto.NewError(dto.CodeInternalError, "An error occurred while fetching the user."))
	}

	return c.JSON(fiber.Map{
		"message": "User fetched successfully.",
		"user":    user,
	})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			dto.NewError(dto.CodeInvalidUserID, "Invalid user identifier."))
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			dto.NewError(dto.CodeValidationFailed, "Invalid request body."))
	}

	user, err := h.userService.Update(c.Context(), id, &req)
	if err != nil {
		if details := validation.FieldErrors(err); details != nil {
			resp := dto.NewError(dto.CodeValidationFailed, "Some fields are invalid.")
			resp.Details = details
			return c.Status(fiber.StatusBadRequest).JSON(resp)
		}
		switch {
		case errors.Is(err, store.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(
				dto.NewError(dto.CodeUserNotFound, "User not found."))
		case errors.Is(err, services.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(
				dto.NewError(dto.CodeEmailTaken, "This email address is already in use."))
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(
				dto.NewError(dto.CodeInternalError, "An error occurred while updating the user."))
		}
	}

	return c.JSON(fiber.Map{
		"message": "User updated successfully.",
		"user":    user,
	})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	identity := middleware.Identity(c)
	if identity == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(
			dto.NewError(dto.CodeNoUserInRequest, "Authentication required."))
	}

	callerID, err := uuid.Parse(identity.UserID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(
			dto.NewError(dto.CodeInvalidToken, "Invalid token, please log in again."))
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			dto.NewError(dto.CodeInvalidUserID, "Invalid user identifier."))
	}

	user, err := h.userService.Delete(c.Context(), callerID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfDelete):
			return c.Status(fiber.StatusBadRequest).JSON(
				dto.NewError(dto.CodeSelfDeleteForbidden, "You cannot delete your own account."))
		case errors.Is(err, store.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(
				dto.NewError(dto.CodeUserNotFound, "User not found."))
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(
				dto.NewError(dto.CodeInternalError, "An error occurred while deleting the user."))
		}
	}

	return c.JSON(fiber.Map{
		"message": "User " + user.FullName() + " has been deleted successfully.",
		"deletedUser": fiber.Map{
			"id":        user.ID,
			"firstName": user.FirstName,
			"lastName":  user.LastName,
			"email":     user.Email,
		},
	})
}
