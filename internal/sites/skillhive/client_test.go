package skillhive

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"skillhive-agent/internal/core/domain"
	"skillhive-agent/internal/core/ports"
	"strings"
)

type fakeTokens struct {
	token       string
	invalidated bool
}

func (f *fakeTokens) Token() string { return f.token }
func (f *fakeTokens) Invalidate()   { f.invalidated = true; f.token = "" }

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *fakeTokens) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	tokens := &fakeTokens{token: "tok-123"}
	return NewClient(srv.URL, tokens, zap.NewNop()), tokens
}

func TestClientImplementsBackend(t *testing.T) {
	var _ ports.Backend = (*Client)(nil)
}

func TestBearerTokenIsAttached(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, `[]`)
	})

	_, err := client.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestLoginReturnsTokenAndUser(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		io.WriteString(w, `{"token":"fresh","user":{"id":"u1","email":"a@b.co","firstName":"Ada"}}`)
	})

	res, err := client.Login(context.Background(), "a@b.co", "pw")
	require.NoError(t, err)
	assert.Equal(t, "fresh", res.Token)
	assert.Equal(t, "Ada", res.User.FirstName)
}

func TestWireNormalizationPrefersCamelCase(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[
			{"id":"p1","user_id":"snake","title":"old shape","created_at":"2025-03-01T12:00:00Z"},
			{"id":"p2","userId":"camel","user_id":"snake","title":"both shapes","createdAt":"2025-03-02T12:00:00Z"}
		]`)
	})

	posts, err := client.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "snake", posts[0].UserID, "snake_case fallback")
	assert.Equal(t, 2025, posts[0].CreatedAt.Year())
	assert.Equal(t, "camel", posts[1].UserID, "camelCase wins when both present")
}

func TestUnauthorizedInvalidatesTokenSource(t *testing.T) {
	client, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.ListPosts(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, tokens.invalidated)
}

func TestBackendErrorCarriesMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message":"title is required"}`)
	})

	_, err := client.CreatePost(context.Background(), domain.Post{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Error(), "title is required")
}

func TestTransportFailureIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listening anymore

	client := NewClient(srv.URL, &fakeTokens{}, zap.NewNop())
	_, err := client.ListPosts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server is not responding")
}

func TestUpdateProfileSendsSingleFieldPayload(t *testing.T) {
	var gotBody string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "/users/u1", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		io.WriteString(w, `{"id":"u1","birthday":"1990-05-12"}`)
	})

	updated, err := client.UpdateProfile(context.Background(), "u1", map[string]string{"birthday": "1990-05-12"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"birthday":"1990-05-12"}`, gotBody)
	assert.Equal(t, "1990-05-12", updated.Birthday)
}

func TestPrivateProfileFollowingIDs(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/u1/private", r.URL.Path)
		io.WriteString(w, `{"id":"u1","followingIds":["u2","u3"],"follower_ids":["u4"]}`)
	})

	profile, err := client.GetPrivateProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u2", "u3"}, profile.FollowingIDs)
	assert.Equal(t, []string{"u4"}, profile.FollowerIDs)
}

func TestUploadMediaSendsMultipart(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/media", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		content, _ := io.ReadAll(file)

		assert.Equal(t, "pic.png", header.Filename)
		assert.Equal(t, "fake image bytes", string(content))
		assert.Equal(t, "my screenshot", r.FormValue("description"))

		io.WriteString(w, `{"id":"m1","url":"/media/m1","content_type":"image/png"}`)
	})

	media, err := client.UploadMedia(context.Background(), "pic.png", strings.NewReader("fake image bytes"), "my screenshot")
	require.NoError(t, err)
	assert.Equal(t, "m1", media.ID)
	assert.Equal(t, "image/png", media.ContentType)
}

func TestCommentInheritsPostID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Backend omits the parent id; it is implicit in the URL.
		io.WriteString(w, `[{"id":"c1","userId":"u2","content":"nice"}]`)
	})

	comments, err := client.ListComments(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "p1", comments[0].PostID)
}

func TestNotificationQueries(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/notifications":
			assert.Equal(t, "true", r.URL.Query().Get("unreadOnly"))
			io.WriteString(w, `[{"id":"n1","type":"comment","actor_name":"Bob","is_read":false}]`)
		case "/notifications/unread-count":
			io.WriteString(w, `{"count":3}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	notifs, err := client.ListNotifications(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, "Bob", notifs[0].ActorName)

	count, err := client.UnreadNotificationCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestNoTokenMeansNoAuthHeader(t *testing.T) {
	var sawAuth bool
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization") != ""
		io.WriteString(w, `{"token":"t","user":{"id":"u1"}}`)
	})
	client.Tokens = &fakeTokens{} // anonymous

	_, err := client.Login(context.Background(), "a@b.co", "pw")
	require.NoError(t, err)
	assert.False(t, sawAuth)
}

func TestDeletePostUsesDelete(t *testing.T) {
	var gotMethod string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.DeletePost(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "DELETE", gotMethod)

	// 404 after deletion maps to an API error, not a panic.
	client2, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message":"post not found"}`)
	})
	err = client2.DeletePost(context.Background(), "p1")
	var apiErr *APIError
	assert.True(t, errors.As(err, &apiErr))
}
