package handler

import (
	"net/http"

	"roster/internal/delivery/http/response"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RoleHandler holds dependencies for the role assignment endpoints.
type RoleHandler struct {
	uc usecase.RoleUsecase
}

// NewRoleHandler is the constructor for RoleHandler, injected by Fx.
func NewRoleHandler(uc usecase.RoleUsecase) *RoleHandler {
	return &RoleHandler{uc: uc}
}

// GetForUser returns the roles assigned to a user.
func (h *RoleHandler) GetForUser(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	roles, err := h.uc.GetByUserID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, roles.Names(), "Roles retrieved successfully")
}

type replaceRolesRequest struct {
	RoleIDs []string `json:"roleIds" validate:"required,min=1,dive,uuid"`
}

// ReplaceForUser swaps a user's role assignments with the given set.
func (h *RoleHandler) ReplaceForUser(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	var req replaceRolesRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	roleIDs := make([]uuid.UUID, 0, len(req.RoleIDs))
	for _, raw := range req.RoleIDs {
		roleID, err := uuid.Parse(raw)
		if err != nil {
			return domainerrors.ErrValidationFailed.WithDetails("role ids must be valid UUIDs")
		}
		roleIDs = append(roleIDs, roleID)
	}

	roles, err := h.uc.ReplaceForUser(c.Request().Context(), id, roleIDs)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, roles.Names(), "Roles updated successfully")
}
