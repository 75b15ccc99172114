package postapp

import (
	"context"
	"fmt"
	"time"

	postEntity "sociopedia/internal/core/post"
	postPort "sociopedia/internal/ports/post"
	userPort "sociopedia/internal/ports/user"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostService struct {
	PostRepository postPort.PostRepository
	UserRepository userPort.UserRepository // برای اطلاعات نویسنده
}

func NewPostService(postRepo postPort.PostRepository, userRepo userPort.UserRepository) *PostService {
	return &PostService{
		PostRepository: postRepo,
		UserRepository: userRepo,
	}
}

// CreatePost stores a post with a copy of the author's profile and returns the whole feed.
func (s *PostService) CreatePost(ctx context.Context, in postPort.CreatePostInput) ([]*postPort.PostDTO, error) {
	author, err := s.UserRepository.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &postEntity.Post{
		ID:              primitive.NewObjectID(),
		UserID:          author.ID.Hex(),
		FirstName:       author.FirstName,
		LastName:        author.LastName,
		Location:        author.Location,
		Description:     in.Description,
		PicturePath:     in.PicturePath,
		UserPicturePath: author.PicturePath,
		Likes:           map[string]bool{},
		Comments:        []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := s.PostRepository.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return s.GetFeedPosts(ctx)
}

// GetFeedPosts returns every post, newest first.
func (s *PostService) GetFeedPosts(ctx context.Context) ([]*postPort.PostDTO, error) {
	posts, err := s.PostRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toPostDTOs(posts), nil
}

func (s *PostService) GetUserPosts(ctx context.Context, userID string) ([]*postPort.PostDTO, error) {
	posts, err := s.PostRepository.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toPostDTOs(posts), nil
}

// LikePost flips userID's like on the post.
func (s *PostService) LikePost(ctx context.Context, postID, userID string) (*postPort.PostDTO, error) {
	// userID becomes part of a field path, only ObjectID hex is accepted
	if !primitive.IsValidObjectID(userID) {
		return nil, userPort.ErrInvalidID
	}

	post, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	updated, err := s.PostRepository.SetLike(ctx, postID, userID, !post.LikedBy(userID))
	if err != nil {
		return nil, err
	}
	return toPostDTO(updated), nil
}

func toPostDTOs(posts []*postEntity.Post) []*postPort.PostDTO {
	out := make([]*postPort.PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostDTO(p))
	}
	return out
}

func toPostDTO(p *postEntity.Post) *postPort.PostDTO {
	likes := p.Likes
	if likes == nil {
		likes = map[string]bool{}
	}
	comments := p.Comments
	if comments == nil {
		comments = []string{}
	}
	return &postPort.PostDTO{
		ID:              p.ID.Hex(),
		UserID:          p.UserID,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Location:        p.Location,
		Description:     p.Description,
		PicturePath:     p.PicturePath,
		UserPicturePath: p.UserPicturePath,
		Likes:           likes,
		Comments:        comments,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
