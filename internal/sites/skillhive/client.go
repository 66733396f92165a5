package skillhive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"skillhive-agent/internal/core/domain"
	"skillhive-agent/internal/core/ports"
)

const DefaultBaseURL = "http://localhost:8080/api"

// ErrUnauthorized is returned when the backend rejects the bearer token.
// The token source has already been invalidated by the time callers see it.
var ErrUnauthorized = errors.New("skillhive: unauthorized, sign in again")

// APIError is a non-2xx backend response with a decoded message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("skillhive: server error (status %d)", e.Status)
	}
	return fmt.Sprintf("skillhive: %s (status %d)", e.Message, e.Status)
}

// TokenSource supplies the bearer token for authenticated calls and is told
// when the backend stops accepting it.
type TokenSource interface {
	Token() string
	Invalidate()
}

// Client is the adapter for the SkillHive REST API. It implements
// ports.Backend and owns auth headers, wire normalization, and error mapping.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource
	Log        *zap.Logger
}

func NewClient(baseURL string, tokens TokenSource, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
		Tokens:     tokens,
		Log:        log,
	}
}

// Ensure Client implements Backend interface
var _ ports.Backend = (*Client)(nil)

func (c *Client) Name() string {
	return "skillhive"
}

// do runs one request/response cycle. A nil out skips response decoding.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := c.Tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if c.Log != nil {
			c.Log.Warn("transport failure", zap.String("method", method), zap.String("path", path), zap.Error(err))
		}
		return fmt.Errorf("skillhive: server is not responding: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.Tokens.Invalidate()
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errRes struct {
			Message string `json:"message"`
		}
		json.NewDecoder(resp.Body).Decode(&errRes)
		return &APIError{Status: resp.StatusCode, Message: errRes.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("skillhive: decoding %s %s: %w", method, path, err)
		}
	}
	return nil
}

// --- Auth ---

func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	var res apiAuthResponse
	err := c.do(ctx, "POST", "/auth/login", map[string]string{"email": email, "password": password}, &res)
	if err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, fmt.Errorf("skillhive: login response missing token")
	}
	return &domain.AuthResult{Token: res.Token, User: res.User.toDomain()}, nil
}

func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error) {
	body := map[string]string{
		"email":     reg.Email,
		"password":  reg.Password,
		"firstName": reg.FirstName,
		"lastName":  reg.LastName,
		"address":   reg.Address,
		"birthday":  reg.Birthday,
		"avatarUrl": reg.AvatarURL,
	}
	var res apiAuthResponse
	if err := c.do(ctx, "POST", "/auth/register", body, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, fmt.Errorf("skillhive: register response missing token")
	}
	return &domain.AuthResult{Token: res.Token, User: res.User.toDomain()}, nil
}

// --- Users ---

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var res []apiUser
	if err := c.do(ctx, "GET", "/users", nil, &res); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(res))
	for _, u := range res {
		users = append(users, u.toDomain())
	}
	return users, nil
}

func (c *Client) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	var res apiUser
	if err := c.do(ctx, "GET", "/users/"+url.PathEscape(userID), nil, &res); err != nil {
		return nil, err
	}
	u := res.toDomain()
	return &u, nil
}

func (c *Client) GetPrivateProfile(ctx context.Context, userID string) (*domain.PrivateProfile, error) {
	var res apiPrivateProfile
	if err := c.do(ctx, "GET", "/users/"+url.PathEscape(userID)+"/private", nil, &res); err != nil {
		return nil, err
	}
	p := res.toDomain()
	return &p, nil
}

func (c *Client) UpdateProfile(ctx context.Context, userID string, changes map[string]string) (*domain.User, error) {
	var res apiUser
	if err := c.do(ctx, "PUT", "/users/"+url.PathEscape(userID), changes, &res); err != nil {
		return nil, err
	}
	u := res.toDomain()
	return &u, nil
}

func (c *Client) DeleteProfile(ctx context.Context, userID string) error {
	return c.do(ctx, "DELETE", "/users/"+url.PathEscape(userID), nil, nil)
}

func (c *Client) Follow(ctx context.Context, userID string) error {
	return c.do(ctx, "POST", "/users/"+url.PathEscape(userID)+"/follow", nil, nil)
}

func (c *Client) Unfollow(ctx context.Context, userID string) error {
	return c.do(ctx, "DELETE", "/users/"+url.PathEscape(userID)+"/follow", nil, nil)
}

func (c *Client) Followers(ctx context.Context, userID string) ([]domain.User, error) {
	return c.userList(ctx, "/users/"+url.PathEscape(userID)+"/followers")
}

func (c *Client) Following(ctx context.Context, userID string) ([]domain.User, error) {
	return c.userList(ctx, "/users/"+url.PathEscape(userID)+"/following")
}

func (c *Client) userList(ctx context.Context, path string) ([]domain.User, error) {
	var res []apiUser
	if err := c.do(ctx, "GET", path, nil, &res); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(res))
	for _, u := range res {
		users = append(users, u.toDomain())
	}
	return users, nil
}

// --- Posts ---

func (c *Client) ListPosts(ctx context.Context) ([]domain.Post, error) {
	var res []apiPost
	if err := c.do(ctx, "GET", "/posts", nil, &res); err != nil {
		return nil, err
	}
	posts := make([]domain.Post, 0, len(res))
	for _, p := range res {
		posts = append(posts, p.toDomain())
	}
	return posts, nil
}

func (c *Client) GetPost(ctx context.Context, postID string) (*domain.Post, error) {
	var res apiPost
	if err := c.do(ctx, "GET", "/posts/"+url.PathEscape(postID), nil, &res); err != nil {
		return nil, err
	}
	p := res.toDomain()
	return &p, nil
}

func (c *Client) CreatePost(ctx context.Context, post domain.Post) (*domain.Post, error) {
	var res apiPost
	if err := c.do(ctx, "POST", "/posts", postToBody(post), &res); err != nil {
		return nil, err
	}
	p := res.toDomain()
	return &p, nil
}

func (c *Client) UpdatePost(ctx context.Context, post domain.Post) (*domain.Post, error) {
	var res apiPost
	if err := c.do(ctx, "PUT", "/posts/"+url.PathEscape(post.ID), postToBody(post), &res); err != nil {
		return nil, err
	}
	p := res.toDomain()
	return &p, nil
}

func (c *Client) DeletePost(ctx context.Context, postID string) error {
	return c.do(ctx, "DELETE", "/posts/"+url.PathEscape(postID), nil, nil)
}

// --- Comments ---

func (c *Client) ListComments(ctx context.Context, postID string) ([]domain.Comment, error) {
	var res []apiComment
	if err := c.do(ctx, "GET", "/posts/"+url.PathEscape(postID)+"/comments", nil, &res); err != nil {
		return nil, err
	}
	comments := make([]domain.Comment, 0, len(res))
	for _, cm := range res {
		dc := cm.toDomain()
		if dc.PostID == "" {
			dc.PostID = postID
		}
		comments = append(comments, dc)
	}
	return comments, nil
}

func (c *Client) CreateComment(ctx context.Context, postID, content string) (*domain.Comment, error) {
	var res apiComment
	err := c.do(ctx, "POST", "/posts/"+url.PathEscape(postID)+"/comments", map[string]string{"content": content}, &res)
	if err != nil {
		return nil, err
	}
	cm := res.toDomain()
	if cm.PostID == "" {
		cm.PostID = postID
	}
	return &cm, nil
}

func (c *Client) UpdateComment(ctx context.Context, postID, commentID, content string) (*domain.Comment, error) {
	path := "/posts/" + url.PathEscape(postID) + "/comments/" + url.PathEscape(commentID)
	var res apiComment
	if err := c.do(ctx, "PUT", path, map[string]string{"content": content}, &res); err != nil {
		return nil, err
	}
	cm := res.toDomain()
	return &cm, nil
}

func (c *Client) DeleteComment(ctx context.Context, postID, commentID string) error {
	path := "/posts/" + url.PathEscape(postID) + "/comments/" + url.PathEscape(commentID)
	return c.do(ctx, "DELETE", path, nil, nil)
}

// --- Likes ---

func (c *Client) ListLikes(ctx context.Context, postID string) ([]domain.Like, error) {
	var res []apiLike
	if err := c.do(ctx, "GET", "/posts/"+url.PathEscape(postID)+"/likes", nil, &res); err != nil {
		return nil, err
	}
	likes := make([]domain.Like, 0, len(res))
	for _, l := range res {
		likes = append(likes, l.toDomain())
	}
	return likes, nil
}

func (c *Client) LikePost(ctx context.Context, postID string) error {
	return c.do(ctx, "POST", "/posts/"+url.PathEscape(postID)+"/likes", nil, nil)
}

func (c *Client) UnlikePost(ctx context.Context, postID string) error {
	return c.do(ctx, "DELETE", "/posts/"+url.PathEscape(postID)+"/likes", nil, nil)
}

// --- Learning plans ---

func (c *Client) ListLearningPlans(ctx context.Context) ([]domain.LearningPlan, error) {
	return c.planList(ctx, "/learning-plans")
}

func (c *Client) MyLearningPlans(ctx context.Context) ([]domain.LearningPlan, error) {
	return c.planList(ctx, "/learning-plans/my-plans")
}

func (c *Client) planList(ctx context.Context, path string) ([]domain.LearningPlan, error) {
	var res []apiLearningPlan
	if err := c.do(ctx, "GET", path, nil, &res); err != nil {
		return nil, err
	}
	plans := make([]domain.LearningPlan, 0, len(res))
	for _, p := range res {
		plans = append(plans, p.toDomain())
	}
	return plans, nil
}

func (c *Client) GetLearningPlan(ctx context.Context, planID string) (*domain.LearningPlan, error) {
	var res apiLearningPlan
	if err := c.do(ctx, "GET", "/learning-plans/"+url.PathEscape(planID), nil, &res); err != nil {
		return nil, err
	}
	p := res.toDomain()
	return &p, nil
}

func (c *Client) CreateLearningPlan(ctx context.Context, plan domain.LearningPlan) (*domain.LearningPlan, error) {
	body := planBody{Title: plan.Title, Description: plan.Description, Goals: plan.Goals, Timeline: plan.Timeline, Status: plan.Status}
	var res apiLearningPlan
	if err := c.do(ctx, "POST", "/learning-plans", body, &res); err != nil {
		return nil, err
	}
	p := res.toDomain()
	return &p, nil
}

func (c *Client) UpdateLearningPlan(ctx context.Context, plan domain.LearningPlan) (*domain.LearningPlan, error) {
	body := planBody{Title: plan.Title, Description: plan.Description, Goals: plan.Goals, Timeline: plan.Timeline, Status: plan.Status}
	var res apiLearningPlan
	if err := c.do(ctx, "PUT", "/learning-plans/"+url.PathEscape(plan.ID), body, &res); err != nil {
		return nil, err
	}
	p := res.toDomain()
	return &p, nil
}

func (c *Client) DeleteLearningPlan(ctx context.Context, planID string) error {
	return c.do(ctx, "DELETE", "/learning-plans/"+url.PathEscape(planID), nil, nil)
}

// --- Media ---

// UploadMedia sends a multipart form with a "file" part and an optional
// "description" part, matching the backend's media endpoint.
func (c *Client) UploadMedia(ctx context.Context, filename string, content io.Reader, description string) (*domain.Media, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, err
	}
	if description != "" {
		if err := w.WriteField("description", description); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/media", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if tok := c.Tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("skillhive: server is not responding: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.Tokens.Invalidate()
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errRes struct {
			Message string `json:"message"`
		}
		json.NewDecoder(resp.Body).Decode(&errRes)
		return nil, &APIError{Status: resp.StatusCode, Message: errRes.Message}
	}

	var res apiMedia
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, err
	}
	m := res.toDomain()
	return &m, nil
}

// --- Notifications ---

func (c *Client) ListNotifications(ctx context.Context, unreadOnly bool) ([]domain.Notification, error) {
	path := "/notifications"
	if unreadOnly {
		path += "?unreadOnly=true"
	}
	var res []apiNotification
	if err := c.do(ctx, "GET", path, nil, &res); err != nil {
		return nil, err
	}
	notifs := make([]domain.Notification, 0, len(res))
	for _, n := range res {
		notifs = append(notifs, n.toDomain())
	}
	return notifs, nil
}

func (c *Client) UnreadNotificationCount(ctx context.Context) (int, error) {
	var res apiUnreadCount
	if err := c.do(ctx, "GET", "/notifications/unread-count", nil, &res); err != nil {
		return 0, err
	}
	return res.Count, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) error {
	return c.do(ctx, "PUT", "/notifications/"+url.PathEscape(notificationID)+"/read", nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, "PUT", "/notifications/read-all", nil, nil)
}
