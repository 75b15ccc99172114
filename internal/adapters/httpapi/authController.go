package httpapi

import (
	"errors"
	"net/http"

	userapp "sociopedia/internal/core/user/service"
	userPort "sociopedia/internal/ports/user"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	ac      AuthUseCase
	uploads *Uploader
}

func NewAuthController(ac AuthUseCase, uploads *Uploader) *AuthController {
	return &AuthController{ac: ac, uploads: uploads}
}

func (ctl *AuthController) Register(c *gin.Context) {
	var req struct {
		FirstName   string   `form:"firstName" json:"firstName" binding:"required"`
		LastName    string   `form:"lastName" json:"lastName" binding:"required"`
		Email       string   `form:"email" json:"email" binding:"required"`
		Password    string   `form:"password" json:"password" binding:"required"`
		PicturePath string   `form:"picturePath" json:"picturePath"`
		Friends     []string `form:"friends" json:"friends"`
		Location    string   `form:"location" json:"location"`
		Occupation  string   `form:"occupation" json:"occupation"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	saved, err := ctl.uploads.Save(c, "picture")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store picture"})
		return
	}
	if req.PicturePath == "" {
		req.PicturePath = saved
	}

	u, err := ctl.ac.RegisterUser(c.Request.Context(), userPort.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		PicturePath: req.PicturePath,
		Friends:     req.Friends,
		Location:    req.Location,
		Occupation:  req.Occupation,
	})
	if err != nil {
		_ = ctl.uploads.Remove(saved)
	}
	if errors.Is(err, userPort.ErrEmailTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register user"})
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (ctl *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	res, err := ctl.ac.LoginUser(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, userPort.ErrNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "User does not exist."})
		return
	case errors.Is(err, userapp.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials."})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not log in"})
		return
	}
	c.JSON(http.StatusOK, res)
}
