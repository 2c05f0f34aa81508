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

// UserHandler holds dependencies for the account management endpoints.
type UserHandler struct {
	uc usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List returns the active users matching the query filters.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.uc.List(c.Request().Context(), &usecase.ListUsersInput{
		FirstName: c.QueryParam("firstName"),
		LastName:  c.QueryParam("lastName"),
		Email:     c.QueryParam("email"),
		Role:      c.QueryParam("role"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users, "Users retrieved successfully")
}

// GetByID returns a single user.
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	user, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "User retrieved successfully")
}

type createUserRequest struct {
	FirstName            string `json:"firstName" validate:"required"`
	LastName             string `json:"lastName" validate:"required"`
	Username             string `json:"username" validate:"required,min=3,max=64"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,password"`
	PasswordConfirmation string `json:"passwordConfirmation" validate:"required,eqfield=Password"`
	Birthdate            string `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	PhoneNumber          string `json:"phoneNumber"`
	CellphoneNumber      string `json:"cellphoneNumber"`
}

// Create provisions an account on behalf of an administrator.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	birthdate, err := parseBirthdate(req.Birthdate)
	if err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.Create(c.Request().Context(), &usecase.CreateUserInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		Birthdate:       birthdate,
		PhoneNumber:     req.PhoneNumber,
		CellphoneNumber: req.CellphoneNumber,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, user, "User created successfully")
}

type updateUserRequest struct {
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	Username        *string `json:"username" validate:"omitempty,min=3,max=64"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Birthdate       *string `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	PhoneNumber     *string `json:"phoneNumber"`
	CellphoneNumber *string `json:"cellphoneNumber"`
}

// Update applies a partial profile change. Absent fields are left untouched.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	input := &usecase.UpdateUserInput{
		ID:              id,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Username:        req.Username,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		CellphoneNumber: req.CellphoneNumber,
	}
	if req.Birthdate != nil {
		birthdate, err := parseBirthdate(*req.Birthdate)
		if err != nil {
			return errors.WithStack(err)
		}
		input.Birthdate = &birthdate
	}

	user, err := h.uc.Update(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "User updated successfully")
}

// Delete deactivates an account.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted successfully")
}

func parseUserID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("user id must be a valid UUID")
	}

	return id, nil
}
