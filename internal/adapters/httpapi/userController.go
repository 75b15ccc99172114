package httpapi

import (
	"errors"
	"net/http"

	userapp "sociopedia/internal/core/user/service"
	userPort "sociopedia/internal/ports/user"

	"github.com/gin-gonic/gin"
)

type UserController struct{ uc UserUseCase }

func NewUserController(uc UserUseCase) *UserController { return &UserController{uc: uc} }

func (ctl *UserController) GetUser(c *gin.Context) {
	u, err := ctl.uc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (ctl *UserController) GetUserFriends(c *gin.Context) {
	friends, err := ctl.uc.GetUserFriends(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

func (ctl *UserController) AddRemoveFriend(c *gin.Context) {
	friends, err := ctl.uc.AddRemoveFriend(c.Request.Context(), c.Param("id"), c.Param("friendId"))
	if err != nil {
		writeUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

func writeUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, userPort.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
	case errors.Is(err, userapp.ErrSelfFriend):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, userPort.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
