package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sociopedia/internal/adapters/httpapi/middleware"
	userapp "sociopedia/internal/core/user/service"
	postPort "sociopedia/internal/ports/post"
	userPort "sociopedia/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var testSecret = []byte("router-secret")

const testUserID = "64f1a0000000000000000001"

type fakeAuth struct {
	registered []userPort.RegisterInput
}

func (f *fakeAuth) RegisterUser(ctx context.Context, in userPort.RegisterInput) (*userPort.UserDTO, error) {
	if in.Email == "taken@x.com" {
		return nil, userPort.ErrEmailTaken
	}
	f.registered = append(f.registered, in)
	return &userPort.UserDTO{ID: testUserID, Email: in.Email, PicturePath: in.PicturePath, Friends: []string{}}, nil
}

func (f *fakeAuth) LoginUser(ctx context.Context, email, password string) (*userPort.LoginResponse, error) {
	switch {
	case email != "a@x.com":
		return nil, userPort.ErrNotFound
	case password != "pw":
		return nil, userapp.ErrInvalidCredentials
	}
	return &userPort.LoginResponse{Token: "tok", User: &userPort.UserDTO{ID: testUserID}}, nil
}

type fakeUsers struct{}

func (fakeUsers) GetUser(ctx context.Context, id string) (*userPort.UserDTO, error) {
	switch id {
	case testUserID:
		return &userPort.UserDTO{ID: id, FirstName: "Test"}, nil
	case "bad":
		return nil, userPort.ErrInvalidID
	}
	return nil, userPort.ErrNotFound
}

func (fakeUsers) GetUserFriends(ctx context.Context, id string) ([]*userPort.FriendDTO, error) {
	return []*userPort.FriendDTO{{ID: "f1", FirstName: "Friend"}}, nil
}

func (fakeUsers) AddRemoveFriend(ctx context.Context, id, friendID string) ([]*userPort.FriendDTO, error) {
	if id == friendID {
		return nil, userapp.ErrSelfFriend
	}
	return []*userPort.FriendDTO{{ID: friendID}}, nil
}

type fakePosts struct {
	created []postPort.CreatePostInput
	likedBy string
}

func (f *fakePosts) CreatePost(ctx context.Context, in postPort.CreatePostInput) ([]*postPort.PostDTO, error) {
	f.created = append(f.created, in)
	return []*postPort.PostDTO{{ID: "p1", UserID: in.UserID, Description: in.Description, PicturePath: in.PicturePath}}, nil
}

func (f *fakePosts) GetFeedPosts(ctx context.Context) ([]*postPort.PostDTO, error) {
	return []*postPort.PostDTO{{ID: "p1"}, {ID: "p2"}}, nil
}

func (f *fakePosts) GetUserPosts(ctx context.Context, userID string) ([]*postPort.PostDTO, error) {
	return []*postPort.PostDTO{{ID: "p1", UserID: userID}}, nil
}

func (f *fakePosts) LikePost(ctx context.Context, postID, userID string) (*postPort.PostDTO, error) {
	if postID == "missing" {
		return nil, postPort.ErrNotFound
	}
	f.likedBy = userID
	return &postPort.PostDTO{ID: postID, Likes: map[string]bool{userID: true}}, nil
}

type fixture struct {
	engine *gin.Engine
	auth   *fakeAuth
	posts  *fakePosts
	assets string
	logs   *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	f := &fixture{auth: &fakeAuth{}, posts: &fakePosts{}, assets: t.TempDir(), logs: logs}
	f.engine = SetupRoutes(RouterConfig{
		JWTSecret: testSecret,
		AssetsDir: f.assets,
		BodyLimit: 1 << 20,
		Logger:    zap.New(core),
	}, f.auth, fakeUsers{}, f.posts)
	return f
}

func bearer(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   testUserID,
		Issuer:    userapp.TokenIssuer,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return "Bearer " + token
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func multipartBody(t *testing.T, fields map[string]string, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("picture", fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestRegisterStoresPicture(t *testing.T) {
	f := newFixture(t)
	body, contentType := multipartBody(t, map[string]string{
		"firstName": "Jane",
		"lastName":  "Doe",
		"email":     "jane@x.com",
		"password":  "pw",
		"location":  "Utah",
	}, "../../evil/avatar.png", []byte("png-bytes"))

	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set("Content-Type", contentType)
	rec := f.do(req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if len(f.auth.registered) != 1 || f.auth.registered[0].PicturePath != "avatar.png" {
		t.Fatalf("unexpected register input %+v", f.auth.registered)
	}
	data, err := os.ReadFile(filepath.Join(f.assets, "avatar.png"))
	if err != nil || string(data) != "png-bytes" {
		t.Fatalf("uploaded file not stored: %v", err)
	}

	// served back as a static asset
	rec = f.do(httptest.NewRequest(http.MethodGet, "/assets/avatar.png", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "png-bytes" {
		t.Fatalf("asset not served: %d", rec.Code)
	}
	if rec.Header().Get("Cross-Origin-Resource-Policy") != "cross-origin" {
		t.Fatalf("missing security headers")
	}
}

func TestRegisterValidationAndConflict(t *testing.T) {
	f := newFixture(t)

	body, contentType := multipartBody(t, map[string]string{"firstName": "Jane"}, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set("Content-Type", contentType)
	if rec := f.do(req); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	body, contentType = multipartBody(t, map[string]string{
		"firstName": "Jane", "lastName": "Doe", "email": "taken@x.com", "password": "pw",
	}, "orphan.png", []byte("png-bytes"))
	req = httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set("Content-Type", contentType)
	if rec := f.do(req); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if _, err := os.Stat(filepath.Join(f.assets, "orphan.png")); !os.IsNotExist(err) {
		t.Fatalf("picture of a failed registration should be removed, stat err: %v", err)
	}
}

func TestAccessLogCarriesRequestID(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	rec := f.do(req)
	if rec.Header().Get(middleware.RequestIDHeader) != "req-42" {
		t.Fatalf("request id not echoed")
	}

	entries := f.logs.FilterField(zap.String("request_id", "req-42")).All()
	if len(entries) != 1 || entries[0].ContextMap()["path"] != "/posts" {
		t.Fatalf("expected one access log entry with the request id, got %+v", entries)
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		body string
		code int
		msg  string
	}{
		{`{"email":"a@x.com","password":"pw"}`, http.StatusOK, ""},
		{`{"email":"nobody@x.com","password":"pw"}`, http.StatusBadRequest, "User does not exist."},
		{`{"email":"a@x.com","password":"nope"}`, http.StatusBadRequest, "Invalid credentials."},
		{`{"email":"a@x.com"}`, http.StatusBadRequest, "invalid input"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		rec := f.do(req)
		if rec.Code != tc.code {
			t.Fatalf("%s: expected %d, got %d", tc.body, tc.code, rec.Code)
		}
		if tc.msg != "" && !strings.Contains(rec.Body.String(), tc.msg) {
			t.Fatalf("%s: expected %q in %s", tc.body, tc.msg, rec.Body.String())
		}
	}
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	f := newFixture(t)
	for _, path := range []string{"/users/" + testUserID, "/posts"} {
		if rec := f.do(httptest.NewRequest(http.MethodGet, path, nil)); rec.Code != http.StatusForbidden {
			t.Fatalf("%s: expected 403, got %d", path, rec.Code)
		}
	}
}

func TestUserRoutes(t *testing.T) {
	f := newFixture(t)
	auth := bearer(t)

	cases := []struct {
		method, path string
		code         int
	}{
		{http.MethodGet, "/users/" + testUserID, http.StatusOK},
		{http.MethodGet, "/users/bad", http.StatusBadRequest},
		{http.MethodGet, "/users/64f1a00000000000000000ff", http.StatusNotFound},
		{http.MethodGet, "/users/" + testUserID + "/friends", http.StatusOK},
		{http.MethodPatch, "/users/" + testUserID + "/64f1a0000000000000000002", http.StatusOK},
		{http.MethodPatch, "/users/" + testUserID + "/" + testUserID, http.StatusBadRequest},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", auth)
		if rec := f.do(req); rec.Code != tc.code {
			t.Fatalf("%s %s: expected %d, got %d", tc.method, tc.path, tc.code, rec.Code)
		}
	}
}

func TestCreatePostFallsBackToTokenUser(t *testing.T) {
	f := newFixture(t)
	body, contentType := multipartBody(t, map[string]string{"description": "hello"}, "sunset.jpeg", []byte("jpeg"))
	req := httptest.NewRequest(http.MethodPost, "/posts", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearer(t))

	rec := f.do(req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(f.posts.created) != 1 {
		t.Fatalf("expected one post created")
	}
	got := f.posts.created[0]
	if got.UserID != testUserID || got.PicturePath != "sunset.jpeg" || got.Description != "hello" {
		t.Fatalf("unexpected input %+v", got)
	}

	var feed []postPort.PostDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &feed); err != nil {
		t.Fatalf("decode feed: %v", err)
	}
	if len(feed) != 1 || feed[0].ID != "p1" {
		t.Fatalf("unexpected feed %+v", feed)
	}
}

func TestPostReadRoutes(t *testing.T) {
	f := newFixture(t)
	auth := bearer(t)

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", auth)
	rec := f.do(req)
	var feed []postPort.PostDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &feed); err != nil || len(feed) != 2 {
		t.Fatalf("unexpected feed %s (%v)", rec.Body.String(), err)
	}

	req = httptest.NewRequest(http.MethodGet, "/posts/"+testUserID+"/posts", nil)
	req.Header.Set("Authorization", auth)
	rec = f.do(req)
	var mine []postPort.PostDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &mine); err != nil || len(mine) != 1 || mine[0].UserID != testUserID {
		t.Fatalf("unexpected user posts %s (%v)", rec.Body.String(), err)
	}
}

func TestLikePost(t *testing.T) {
	f := newFixture(t)
	auth := bearer(t)

	req := httptest.NewRequest(http.MethodPatch, "/posts/p1/like", strings.NewReader(`{"userId":"64f1a0000000000000000002"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", auth)
	if rec := f.do(req); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if f.posts.likedBy != "64f1a0000000000000000002" {
		t.Fatalf("like attributed to %q", f.posts.likedBy)
	}

	req = httptest.NewRequest(http.MethodPatch, "/posts/p1/like", nil)
	req.Header.Set("Authorization", auth)
	if rec := f.do(req); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with empty body, got %d", rec.Code)
	}
	if f.posts.likedBy != testUserID {
		t.Fatalf("expected token user, got %q", f.posts.likedBy)
	}

	req = httptest.NewRequest(http.MethodPatch, "/posts/missing/like", nil)
	req.Header.Set("Authorization", auth)
	if rec := f.do(req); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":           "photo.jpg",
		"../../etc/passwd":    "passwd",
		`C:\Users\me\pic.png`: "pic.png",
		"..":                  "",
		"":                    "",
	}
	for in, want := range cases {
		if got := sanitizeFilename(in); got != want {
			t.Fatalf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
