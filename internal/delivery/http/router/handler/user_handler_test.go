package handler

import (
	"net/http"
	"testing"

	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/mocks"
	"roster/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_List_ForwardsQueryFilters(t *testing.T) {
	uc := &mocks.UserUsecase{}
	h := NewUserHandler(uc)

	uc.On("List", mock.Anything, &usecase.ListUsersInput{
		FirstName: "ada",
		Role:      "teacher",
	}).Return([]*entity.PublicUser{}, nil)

	c, rec := newHandlerContext(t, http.MethodGet, "/users?firstName=ada&role=teacher", "")

	err := h.List(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestUserHandler_GetByID_InvalidUUID(t *testing.T) {
	uc := &mocks.UserUsecase{}
	h := NewUserHandler(uc)

	c, _ := newHandlerContext(t, http.MethodGet, "/users/not-a-uuid", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.GetByID(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	uc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUserHandler_Update_PartialBody(t *testing.T) {
	uc := &mocks.UserUsecase{}
	h := NewUserHandler(uc)

	id := uuid.New()
	uc.On("Update", mock.Anything, mock.MatchedBy(func(in *usecase.UpdateUserInput) bool {
		return in.ID == id && in.FirstName != nil && *in.FirstName == "Grace" &&
			in.LastName == nil && in.Email == nil
	})).Return(&entity.PublicUser{ID: id, FirstName: "Grace"}, nil)

	c, rec := newHandlerContext(t, http.MethodPatch, "/users/"+id.String(), `{"firstName": "Grace"}`)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := h.Update(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestUserHandler_Delete(t *testing.T) {
	uc := &mocks.UserUsecase{}
	h := NewUserHandler(uc)

	id := uuid.New()
	uc.On("Delete", mock.Anything, id).Return(nil)

	c, rec := newHandlerContext(t, http.MethodDelete, "/users/"+id.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := h.Delete(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestRoleHandler_ReplaceForUser(t *testing.T) {
	uc := &mocks.RoleUsecase{}
	h := NewRoleHandler(uc)

	userID := uuid.New()
	roleID := uuid.New()
	uc.On("ReplaceForUser", mock.Anything, userID, []uuid.UUID{roleID}).
		Return(entity.Roles{{ID: roleID, Name: entity.RoleTeacher}}, nil)

	c, rec := newHandlerContext(t, http.MethodPut, "/roles/user/"+userID.String(),
		`{"roleIds": ["`+roleID.String()+`"]}`)
	c.SetParamNames("id")
	c.SetParamValues(userID.String())

	err := h.ReplaceForUser(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "teacher")
	uc.AssertExpectations(t)
}

func TestRoleHandler_ReplaceForUser_EmptySetRejected(t *testing.T) {
	uc := &mocks.RoleUsecase{}
	h := NewRoleHandler(uc)

	userID := uuid.New()
	c, _ := newHandlerContext(t, http.MethodPut, "/roles/user/"+userID.String(), `{"roleIds": []}`)
	c.SetParamNames("id")
	c.SetParamValues(userID.String())

	err := h.ReplaceForUser(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	uc.AssertNotCalled(t, "ReplaceForUser", mock.Anything, mock.Anything, mock.Anything)
}
