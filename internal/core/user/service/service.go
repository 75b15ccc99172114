package userapp

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	userEntity "sociopedia/internal/core/user"
	userPort "sociopedia/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer is written into every token and checked by the auth middleware.
const TokenIssuer = "sociopedia"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSelfFriend         = errors.New("cannot add yourself as a friend")
)

// UserService سرویس مدیریت کاربران
type UserService struct {
	UserRepository userPort.UserRepository
	jwtKey         []byte
	tokenTTL       time.Duration
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte, tokenTTL time.Duration) *UserService {
	return &UserService{
		UserRepository: repo,
		jwtKey:         jwtKey,
		tokenTTL:       tokenTTL,
	}
}

// RegisterUser ثبت‌نام کاربر جدید
func (s *UserService) RegisterUser(ctx context.Context, in userPort.RegisterInput) (*userPort.UserDTO, error) {
	existing, err := s.UserRepository.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, userPort.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, userPort.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	friends := in.Friends
	if friends == nil {
		friends = []string{}
	}
	now := time.Now().UTC()
	user := &userEntity.User{
		ID:            primitive.NewObjectID(),
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		Password:      string(hashedPassword),
		PicturePath:   in.PicturePath,
		Friends:       friends,
		Location:      in.Location,
		Occupation:    in.Occupation,
		ViewedProfile: rand.Intn(10000),
		Impressions:   rand.Intn(10000),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	u, err := s.UserRepository.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return toUserDTO(u), nil
}

// LoginUser ورود کاربر و صدور توکن JWT
func (s *UserService) LoginUser(ctx context.Context, email, password string) (*userPort.LoginResponse, error) {
	user, err := s.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	token, err := s.generateJWT(user, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("could not generate token: %w", err)
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		User:      toUserDTO(user),
	}, nil
}

func (s *UserService) generateJWT(user *userEntity.User, expiresAt time.Time) (string, error) {
	claims := &jwt.StandardClaims{
		Subject:   user.ID.Hex(),
		Issuer:    TokenIssuer,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*userPort.UserDTO, error) {
	user, err := s.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserDTO(user), nil
}

// GetUserFriends returns the user's friends in friend-list order. Friends
// that no longer exist are left out.
func (s *UserService) GetUserFriends(ctx context.Context, id string) ([]*userPort.FriendDTO, error) {
	user, err := s.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.friendsOf(ctx, user.Friends)
}

// AddRemoveFriend toggles the friendship between id and friendID on both sides.
func (s *UserService) AddRemoveFriend(ctx context.Context, id, friendID string) ([]*userPort.FriendDTO, error) {
	if id == friendID {
		return nil, ErrSelfFriend
	}

	user, err := s.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.UserRepository.FindByID(ctx, friendID); err != nil {
		return nil, err
	}

	if user.HasFriend(friendID) {
		if err := s.UserRepository.RemoveFriend(ctx, id, friendID); err != nil {
			return nil, err
		}
		if err := s.UserRepository.RemoveFriend(ctx, friendID, id); err != nil {
			return nil, err
		}
	} else {
		if err := s.UserRepository.AddFriend(ctx, id, friendID); err != nil {
			return nil, err
		}
		if err := s.UserRepository.AddFriend(ctx, friendID, id); err != nil {
			return nil, err
		}
	}

	return s.GetUserFriends(ctx, id)
}

func (s *UserService) friendsOf(ctx context.Context, ids []string) ([]*userPort.FriendDTO, error) {
	friends, err := s.UserRepository.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*userEntity.User, len(friends))
	for _, f := range friends {
		byID[f.ID.Hex()] = f
	}

	out := make([]*userPort.FriendDTO, 0, len(ids))
	for _, id := range ids {
		f, ok := byID[id]
		if !ok {
			continue
		}
		out = append(out, &userPort.FriendDTO{
			ID:          f.ID.Hex(),
			FirstName:   f.FirstName,
			LastName:    f.LastName,
			Occupation:  f.Occupation,
			Location:    f.Location,
			PicturePath: f.PicturePath,
		})
	}
	return out, nil
}

func toUserDTO(u *userEntity.User) *userPort.UserDTO {
	friends := u.Friends
	if friends == nil {
		friends = []string{}
	}
	return &userPort.UserDTO{
		ID:            u.ID.Hex(),
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		PicturePath:   u.PicturePath,
		Friends:       friends,
		Location:      u.Location,
		Occupation:    u.Occupation,
		ViewedProfile: u.ViewedProfile,
		Impressions:   u.Impressions,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
