package httpapi

import (
	"context"
	"time"

	"sociopedia/internal/adapters/httpapi/middleware"
	userapp "sociopedia/internal/core/user/service"
	postPort "sociopedia/internal/ports/post"
	userPort "sociopedia/internal/ports/user"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthUseCase interface {
	RegisterUser(ctx context.Context, in userPort.RegisterInput) (*userPort.UserDTO, error)
	LoginUser(ctx context.Context, email, password string) (*userPort.LoginResponse, error)
}

type UserUseCase interface {
	GetUser(ctx context.Context, id string) (*userPort.UserDTO, error)
	GetUserFriends(ctx context.Context, id string) ([]*userPort.FriendDTO, error)
	AddRemoveFriend(ctx context.Context, id, friendID string) ([]*userPort.FriendDTO, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, in postPort.CreatePostInput) ([]*postPort.PostDTO, error)
	GetFeedPosts(ctx context.Context) ([]*postPort.PostDTO, error)
	GetUserPosts(ctx context.Context, userID string) ([]*postPort.PostDTO, error)
	LikePost(ctx context.Context, postID, userID string) (*postPort.PostDTO, error)
}

type RouterConfig struct {
	JWTSecret []byte
	AssetsDir string
	BodyLimit int64
	Logger    *zap.Logger
}

// فقط روتینگ: UseCase از بیرون تزریق می‌شود
func SetupRoutes(cfg RouterConfig, authUC AuthUseCase, userUC UserUseCase, postUC PostUseCase) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = cfg.BodyLimit
	r.Use(
		middleware.RequestID(),
		ginzap.GinzapWithConfig(cfg.Logger, &ginzap.Config{
			TimeFormat: time.RFC3339,
			UTC:        true,
			Context:    middleware.RequestIDFields,
		}),
		ginzap.RecoveryWithZap(cfg.Logger, true),
		middleware.SecurityHeaders(),
		middleware.CrossOriginResourcePolicy(),
		cors.Default(),
		middleware.BodyLimit(cfg.BodyLimit),
	)

	uploads := NewUploader(cfg.AssetsDir)
	ac := NewAuthController(authUC, uploads)
	uc := NewUserController(userUC)
	pc := NewPostController(postUC, uploads)
	auth := middleware.JWTAuthMiddleware(cfg.JWTSecret, userapp.TokenIssuer)

	r.Static("/assets", cfg.AssetsDir)

	// مسیرهای ثبت‌نام و ورود بدون JWT Middleware
	r.POST("/auth/register", ac.Register)
	r.POST("/auth/login", ac.Login)

	users := r.Group("/users", auth)
	users.GET("/:id", uc.GetUser)
	users.GET("/:id/friends", uc.GetUserFriends)
	users.PATCH("/:id/:friendId", uc.AddRemoveFriend)

	posts := r.Group("/posts", auth)
	posts.POST("", pc.CreatePost)
	posts.GET("", pc.GetFeedPosts)
	posts.GET("/:userId/posts", pc.GetUserPosts)
	posts.PATCH("/:id/like", pc.LikePost)

	return r
}
