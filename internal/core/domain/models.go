package domain

import "time"

// Post type tags as used by the SkillHive backend.
const (
	PostTypeSkillShare     = "skill_share"
	PostTypeProgressUpdate = "progress_update"
)

// User is the public shape of a SkillHive account.
type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Address   string
	Birthday  string
	AvatarURL string
	Bio       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PrivateProfile is the viewer's own profile, including the follow graph
// membership the backend only exposes to the account owner.
type PrivateProfile struct {
	User
	FollowingIDs []string
	FollowerIDs  []string
}

// Registration carries the sign-up form fields.
type Registration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Address   string
	Birthday  string
	AvatarURL string
}

// AuthResult is what a successful login or registration returns.
type AuthResult struct {
	Token string
	User  User
}

// Post represents a published post. Media and Template are optional.
type Post struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	Media     []MediaItem
	Type      string // PostTypeSkillShare or PostTypeProgressUpdate
	Template  *ProgressTemplate
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MediaItem is a media reference attached to a post.
type MediaItem struct {
	URL         string
	Type        string // "image" or "video"
	Description string
}

// ProgressTemplate is the structured payload of a progress_update post.
type ProgressTemplate struct {
	Type          string // tutorial, skill, project, certification
	Completed     []string
	SkillsLearned []string
	Project       *ProjectDetails
	Certification *CertificationDetails
}

type ProjectDetails struct {
	Name        string
	Description string
	Status      string // in_progress or completed
	GithubURL   string
}

type CertificationDetails struct {
	Name           string
	Provider       string
	CompletionDate string
	CredentialURL  string
}

// Comment belongs to a post's comment collection.
type Comment struct {
	ID        string
	PostID    string
	UserID    string
	Content   string
	CreatedAt time.Time
}

// Like is at most one per (post, user) pair; the backend enforces that.
type Like struct {
	ID        string
	UserID    string
	CreatedAt time.Time
}

// LearningPlan is a structured plan owned by a user.
type LearningPlan struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Goals       []string
	Timeline    string
	Status      string // not_started, in_progress, completed
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Notification is an event addressed to the authenticated user.
type Notification struct {
	ID        string
	Type      string // "comment", "like", "follow", ...
	ActorName string
	PostID    string
	PostTitle string
	CommentID string
	Content   string
	IsRead    bool
	CreatedAt time.Time
}

// Media is the result of an upload; the client only ever holds the reference.
type Media struct {
	ID          string
	URL         string
	ContentType string
	Description string
}

// Message senders.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is one entry in the assistant conversation. The transcript is
// append-only; messages are never mutated after creation.
type Message struct {
	ID        string
	Text      string
	From      string // SenderUser or SenderBot
	CreatedAt time.Time
}

// FeedItem is one post with its engagement data, ready to render.
// ViewerLike is nil when the viewer is anonymous or has not liked the post.
type FeedItem struct {
	Post       Post
	Comments   []Comment
	Likes      []Like
	ViewerLike *Like
}
