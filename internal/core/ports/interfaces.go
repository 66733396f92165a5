package ports

import (
	"context"
	"io"

	"skillhive-agent/internal/core/domain"
)

// Backend is the SkillHive REST surface the agent consumes. Implementations
// handle auth headers, wire-format normalization, and error mapping; callers
// only ever see canonical domain shapes.
type Backend interface {
	Name() string

	// Auth
	Login(ctx context.Context, email, password string) (*domain.AuthResult, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error)

	// Users
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	GetPrivateProfile(ctx context.Context, userID string) (*domain.PrivateProfile, error)
	// UpdateProfile sends a partial update; only the fields present in
	// changes are touched. The backend returns the updated user.
	UpdateProfile(ctx context.Context, userID string, changes map[string]string) (*domain.User, error)
	DeleteProfile(ctx context.Context, userID string) error
	Follow(ctx context.Context, userID string) error
	Unfollow(ctx context.Context, userID string) error
	Followers(ctx context.Context, userID string) ([]domain.User, error)
	Following(ctx context.Context, userID string) ([]domain.User, error)

	// Posts
	ListPosts(ctx context.Context) ([]domain.Post, error)
	GetPost(ctx context.Context, postID string) (*domain.Post, error)
	CreatePost(ctx context.Context, post domain.Post) (*domain.Post, error)
	UpdatePost(ctx context.Context, post domain.Post) (*domain.Post, error)
	DeletePost(ctx context.Context, postID string) error

	// Comments
	ListComments(ctx context.Context, postID string) ([]domain.Comment, error)
	CreateComment(ctx context.Context, postID, content string) (*domain.Comment, error)
	UpdateComment(ctx context.Context, postID, commentID, content string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID string) error

	// Likes
	ListLikes(ctx context.Context, postID string) ([]domain.Like, error)
	LikePost(ctx context.Context, postID string) error
	UnlikePost(ctx context.Context, postID string) error

	// Learning plans
	ListLearningPlans(ctx context.Context) ([]domain.LearningPlan, error)
	MyLearningPlans(ctx context.Context) ([]domain.LearningPlan, error)
	GetLearningPlan(ctx context.Context, planID string) (*domain.LearningPlan, error)
	CreateLearningPlan(ctx context.Context, plan domain.LearningPlan) (*domain.LearningPlan, error)
	UpdateLearningPlan(ctx context.Context, plan domain.LearningPlan) (*domain.LearningPlan, error)
	DeleteLearningPlan(ctx context.Context, planID string) error

	// Media
	UploadMedia(ctx context.Context, filename string, content io.Reader, description string) (*domain.Media, error)

	// Notifications
	ListNotifications(ctx context.Context, unreadOnly bool) ([]domain.Notification, error)
	UnreadNotificationCount(ctx context.Context) (int, error)
	MarkNotificationRead(ctx context.Context, notificationID string) error
	MarkAllNotificationsRead(ctx context.Context) error
}

// Storage persists the bearer token (one string under a fixed key per
// backend) and the assistant transcript.
type Storage interface {
	SaveToken(backend, token string) error
	LoadToken(backend string) (string, error)
	ClearToken(backend string) error

	SaveMessage(ctx context.Context, backend string, msg domain.Message) error
	RecentMessages(ctx context.Context, backend string, limit int) ([]domain.Message, error)
}

// ChatTransport delivers user utterances to the assistant and carries bot
// replies back. Typed terminal input, Telegram messages, and recognized
// speech are all just lines here; the assistant never knows the difference.
type ChatTransport interface {
	// Lines returns a channel of user inputs. The channel is closed when
	// the transport ends (EOF, ctx cancellation).
	Lines(ctx context.Context) (<-chan string, error)
	Reply(ctx context.Context, text string) error
}
