package controllers

import (
	"net/http"

	"rento/dto"
	"rento/middleware"
	"rento/response"
	"rento/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	users  *services.UserService
	tokens *services.TokenService
}

func NewAuthController(users *services.UserService, tokens *services.TokenService) *AuthController {
	return &AuthController{users: users, tokens: tokens}
}

func (ctrl *AuthController) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := ctrl.users.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}
	response.Created(c, dto.NewUserResponse(user))
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, session, err := ctrl.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}
	token, err := ctrl.tokens.Generate(session.ID, user.ID, session.CreatedAt, session.ExpiresAt)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, dto.LoginResponse{
		AccessToken: token,
		ExpiresAt:   session.ExpiresAt,
		User:        dto.NewUserResponse(user),
	})
}

func (ctrl *AuthController) Logout(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	if err := ctrl.users.Logout(c.Request.Context(), session.ID); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *AuthController) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	response.Success(c, dto.NewUserResponse(user))
}
