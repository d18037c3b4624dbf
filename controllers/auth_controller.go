package controllers

import (
	"github.com/evinas93/Fuji-PoS-sub001/pkg/perm"
	"github.com/evinas93/Fuji-PoS-sub001/pkg/resp"
	"github.com/evinas93/Fuji-PoS-sub001/services"
	"github.com/evinas93/Fuji-PoS-sub001/utils"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{Service: service}
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := ac.Service.Login(req.Email, req.Password)
	if err != nil {
		resp.Unauthorized(c, err.Error())
		return
	}

	resp.OK(c, gin.H{
		"token":       token,
		"user":        user,
		"permissions": perm.For(user.Role),
	})
}

type registerReq struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Role      string `json:"role" binding:"required"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := ac.Service.Register(req.Email, req.Password, req.FirstName, req.LastName, req.Role)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, user)
}

// Me คืน profile + permission list ให้ UI ใช้ gate ปุ่ม/เมนู
func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.Service.GetProfile(utils.CurrentUserID(c))
	if err != nil {
		resp.NotFound(c, "user not found")
		return
	}
	resp.OK(c, gin.H{
		"user":        user,
		"permissions": perm.For(user.Role),
	})
}
