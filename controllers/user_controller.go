package controllers

import (
	"rento/dto"
	"rento/middleware"
	"rento/response"
	"rento/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

func (ctrl *UserController) GetUsers(c *gin.Context) {
	users, err := ctrl.users.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessWithTotal(c, dto.NewUserResponses(users), len(users))
}

// UpdateUser edits the caller's own profile
func (ctrl *UserController) UpdateUser(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	id := c.Param("id")
	if id != current.ID {
		response.Forbidden(c)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := ctrl.users.Update(c.Request.Context(), id, req.Patch())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, dto.NewUserResponse(user))
}
