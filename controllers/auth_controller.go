package controllers

import (
	"net/http"
	"strings"

	"brewhub-backend/configs"
	"brewhub-backend/entity"
	"brewhub-backend/pkg/resp"
	"brewhub-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
	BirthMonth  int    `json:"birthMonth" binding:"omitempty,min=1,max=12"`
	BirthDay    int    `json:"birthDay" binding:"omitempty,min=1,max=31"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	DB  *gorm.DB
	Cfg *configs.Config
}

func NewAuthController(db *gorm.DB, cfg *configs.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

func userView(u *entity.User) gin.H {
	return gin.H{
		"id": u.ID, "email": u.Email, "firstName": u.FirstName,
		"lastName": u.LastName, "phoneNumber": u.PhoneNumber, "role": u.Role,
	}
}

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	var exist entity.User
	if err := a.DB.Where("email = ?", strings.ToLower(req.Email)).First(&exist).Error; err == nil {
		resp.BadRequest(c, "email already registered")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		resp.ServerError(c)
		return
	}

	user := entity.User{
		Email:       strings.ToLower(req.Email),
		Password:    string(hashed),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Role:        "customer",
		BirthMonth:  req.BirthMonth,
		BirthDay:    req.BirthDay,
	}
	if err := a.DB.Create(&user).Error; err != nil {
		resp.ServerError(c)
		return
	}

	resp.Created(c, userView(&user))
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	var user entity.User
	if err := a.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		resp.Unauthorized(c, "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		resp.Unauthorized(c, "invalid credentials")
		return
	}

	token, err := utils.GenerateToken(&user, a.Cfg.JWTSecret, a.Cfg.JWTTTL)
	if err != nil {
		resp.ServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token, "user": userView(&user)})
}

// GET /auth/me
func (a *AuthController) Me(c *gin.Context) {
	var user entity.User
	if err := a.DB.First(&user, utils.CurrentUserID(c)).Error; err != nil {
		resp.NotFound(c, "user not found")
		return
	}
	resp.OK(c, userView(&user))
}
