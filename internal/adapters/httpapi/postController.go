package httpapi

import (
	"errors"
	"io"
	"net/http"

	"sociopedia/internal/adapters/httpapi/middleware"
	postPort "sociopedia/internal/ports/post"
	userPort "sociopedia/internal/ports/user"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	pc      PostUseCase
	uploads *Uploader
}

func NewPostController(pc PostUseCase, uploads *Uploader) *PostController {
	return &PostController{pc: pc, uploads: uploads}
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	var req struct {
		UserID      string `form:"userId" json:"userId"`
		Description string `form:"description" json:"description"`
		PicturePath string `form:"picturePath" json:"picturePath"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	if req.UserID == "" {
		req.UserID = c.GetString(middleware.UserIDKey)
	}

	saved, err := ctl.uploads.Save(c, "picture")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store picture"})
		return
	}
	if req.PicturePath == "" {
		req.PicturePath = saved
	}

	feed, err := ctl.pc.CreatePost(c.Request.Context(), postPort.CreatePostInput{
		UserID:      req.UserID,
		Description: req.Description,
		PicturePath: req.PicturePath,
	})
	if err != nil {
		writePostError(c, err)
		return
	}
	c.JSON(http.StatusCreated, feed)
}

func (ctl *PostController) GetFeedPosts(c *gin.Context) {
	posts, err := ctl.pc.GetFeedPosts(c.Request.Context())
	if err != nil {
		writePostError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (ctl *PostController) GetUserPosts(c *gin.Context) {
	posts, err := ctl.pc.GetUserPosts(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writePostError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (ctl *PostController) LikePost(c *gin.Context) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	if req.UserID == "" {
		req.UserID = c.GetString(middleware.UserIDKey)
	}

	p, err := ctl.pc.LikePost(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		writePostError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func writePostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, postPort.ErrInvalidID), errors.Is(err, userPort.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, postPort.ErrNotFound), errors.Is(err, userPort.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
