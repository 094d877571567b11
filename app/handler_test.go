package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string {
	return &s
}

// createTestUser registers a user straight through the service and logs
// them in, returning the user id and a bearer token.
func createTestUser(t *testing.T, app *application, username string) (int, string) {
	t.Helper()

	ctx := context.Background()

	user, err := app.userService.CreateUser(ctx, username, "Test User", username+"@example.com", "Test_1234!")
	assert.NoError(t, err)

	result, err := app.userService.LoginUser(ctx, username, "Test_1234!")
	assert.NoError(t, err)

	return user.ID, result.Token
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
	assert.NoError(t, err)

	return count
}

func TestLoginUserHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	createTestUser(t, app, "jane")

	testCases := []struct {
		name       string
		payload    any
		wantStatus int
	}{
		{
			name:       "valid credentials",
			payload:    map[string]any{"username": "jane", "password": "Test_1234!"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong password",
			payload:    map[string]any{"username": "jane", "password": "Wrong_1234!"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown user",
			payload:    map[string]any{"username": "nobody", "password": "Test_1234!"},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.post(t, "/api/login", tc.payload, nil)
			assert.Equal(t, tc.wantStatus, status)

			if status == http.StatusOK {
				assert.NotEmpty(t, body["token"])
				assert.Equal(t, "jane", body["username"])
				assert.Equal(t, "Test User", body["name"])
			}
		})
	}
}

func TestCreateBlogHandler(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, token := createTestUser(t, app, "jane")

	testCases := []struct {
		name       string
		payload    any
		token      *string
		wantStatus int
	}{
		{
			name:       "valid blog",
			payload:    map[string]any{"title": "New blog", "author": "Jane Doe", "url": "http://example.com"},
			token:      &token,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing title",
			payload:    map[string]any{"author": "Jane Doe", "url": "http://example.com"},
			token:      &token,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing url",
			payload:    map[string]any{"title": "New blog", "author": "Jane Doe"},
			token:      &token,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing token",
			payload:    map[string]any{"title": "New blog", "author": "Jane Doe", "url": "http://example.com"},
			token:      nil,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			payload:    map[string]any{"title": "New blog", "author": "Jane Doe", "url": "http://example.com"},
			token:      strptr("not.a.token"),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			before := countRows(t, db, "blogs")

			status, _, body := ts.post(t, "/api/blogs", tc.payload, tc.token)
			assert.Equal(t, tc.wantStatus, status)

			after := countRows(t, db, "blogs")

			if status == http.StatusCreated {
				assert.Equal(t, before+1, after)

				blog := body["blog"].(map[string]any)
				assert.NotZero(t, blog["id"])
				// likes was omitted from the payload and must default to 0
				assert.Equal(t, float64(0), blog["likes"])
			} else {
				assert.Equal(t, before, after)
			}
		})
	}
}

func TestGetAllBlogsHandler(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, token := createTestUser(t, app, "jane")

	likes := []int{15, 0, 2}
	for i, l := range likes {
		payload := map[string]any{"title": fmt.Sprintf("Blog %d", i+1), "url": "http://example.com", "likes": l}
		status, _, _ := ts.post(t, "/api/blogs", payload, &token)
		assert.Equal(t, http.StatusCreated, status)
	}

	status, _, body := ts.get(t, "/api/blogs", nil)
	assert.Equal(t, http.StatusOK, status)

	blogs := body["blogs"].([]any)
	assert.Equal(t, countRows(t, db, "blogs"), len(blogs))
	assert.Len(t, blogs, 3)

	first := blogs[0].(map[string]any)
	assert.NotZero(t, first["id"])
	assert.Equal(t, float64(15), first["likes"])

	// the owner relation is expanded to username and name only
	user := first["user"].(map[string]any)
	assert.Equal(t, map[string]any{"username": "jane", "name": "Test User"}, user)

	// replace the likes of the first blog
	firstID := int(first["id"].(float64))
	status, _, body = ts.put(t, fmt.Sprintf("/api/blogs/%d", firstID), map[string]any{"likes": 12}, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(12), body["blog"].(map[string]any)["likes"])

	status, _, body = ts.get(t, "/api/blogs", nil)
	assert.Equal(t, http.StatusOK, status)

	blogs = body["blogs"].([]any)
	assert.Len(t, blogs, 3)

	var withTwelve int
	for _, b := range blogs {
		if b.(map[string]any)["likes"] == float64(12) {
			withTwelve++
		}
	}
	assert.Equal(t, 1, withTwelve)
}

func TestUpdateBlogLikesHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	createTestUser(t, app, "jane")

	status, _, _ := ts.put(t, "/api/blogs/999", map[string]any{"likes": 12}, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeleteBlogHandler(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, tokenA := createTestUser(t, app, "usera")
	_, tokenB := createTestUser(t, app, "userb")

	payload := map[string]any{"title": "Another blog", "author": "Jane Doe", "url": "http://example.com"}
	status, _, body := ts.post(t, "/api/blogs", payload, &tokenA)
	assert.Equal(t, http.StatusCreated, status)

	blogID := int(body["blog"].(map[string]any)["id"].(float64))

	// attach a comment so the cascade can be observed
	status, _, _ = ts.post(t, fmt.Sprintf("/api/blogs/%d/comments", blogID), map[string]any{"title": "Nice post"}, &tokenA)
	assert.Equal(t, http.StatusCreated, status)

	// a user who does not own the blog cannot delete it
	status, _, _ = ts.delete(t, fmt.Sprintf("/api/blogs/%d", blogID), &tokenB)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, 1, countRows(t, db, "blogs"))

	// nor can an unauthenticated caller
	status, _, _ = ts.delete(t, fmt.Sprintf("/api/blogs/%d", blogID), nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, 1, countRows(t, db, "blogs"))

	status, _, _ = ts.delete(t, "/api/blogs/999", &tokenA)
	assert.Equal(t, http.StatusNotFound, status)

	status, _, _ = ts.delete(t, fmt.Sprintf("/api/blogs/%d", blogID), &tokenA)
	assert.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, 0, countRows(t, db, "blogs"))
	assert.Equal(t, 0, countRows(t, db, "comments"))

	status, _, body = ts.get(t, "/api/blogs", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["blogs"].([]any), 0)
}

func TestAddCommentHandler(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, token := createTestUser(t, app, "jane")

	payload := map[string]any{"title": "New blog", "url": "http://example.com"}
	status, _, body := ts.post(t, "/api/blogs", payload, &token)
	assert.Equal(t, http.StatusCreated, status)

	blogID := int(body["blog"].(map[string]any)["id"].(float64))

	testCases := []struct {
		name       string
		path       string
		payload    any
		token      *string
		wantStatus int
	}{
		{
			name:       "valid comment",
			path:       fmt.Sprintf("/api/blogs/%d/comments", blogID),
			payload:    map[string]any{"title": "Nice post"},
			token:      &token,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing title",
			path:       fmt.Sprintf("/api/blogs/%d/comments", blogID),
			payload:    map[string]any{"title": ""},
			token:      &token,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing token",
			path:       fmt.Sprintf("/api/blogs/%d/comments", blogID),
			payload:    map[string]any{"title": "Nice post"},
			token:      nil,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown blog",
			path:       "/api/blogs/999/comments",
			payload:    map[string]any{"title": "Nice post"},
			token:      &token,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			before := countRows(t, db, "comments")

			status, _, _ := ts.post(t, tc.path, tc.payload, tc.token)
			assert.Equal(t, tc.wantStatus, status)

			after := countRows(t, db, "comments")

			if status == http.StatusCreated {
				assert.Equal(t, before+1, after)
			} else {
				assert.Equal(t, before, after)
			}
		})
	}
}

func TestRegisterUserHandler(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	testCases := []struct {
		name       string
		payload    any
		wantStatus int
	}{
		{
			name:       "valid request",
			payload:    map[string]any{"username": "jane", "name": "Jane Doe", "email": "jane@example.com", "password": "Test_1234!"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "duplicate username",
			payload:    map[string]any{"username": "jane", "name": "Jane Doe", "email": "jane2@example.com", "password": "Test_1234!"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "short username",
			payload:    map[string]any{"username": "ab", "name": "Jane Doe", "email": "jane3@example.com", "password": "Test_1234!"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.post(t, "/api/users", tc.payload, nil)
			assert.Equal(t, tc.wantStatus, status)

			if status == http.StatusCreated {
				user := body["user"].(map[string]any)
				assert.NotZero(t, user["id"])
				assert.Equal(t, 1, countRows(t, db, "users"))
			}
		})
	}
}

func TestGetUsersHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, token := createTestUser(t, app, "jane")

	payload := map[string]any{"title": "New blog", "url": "http://example.com"}
	status, _, _ := ts.post(t, "/api/blogs", payload, &token)
	assert.Equal(t, http.StatusCreated, status)

	status, _, body := ts.get(t, "/api/users", nil)
	assert.Equal(t, http.StatusOK, status)

	users := body["users"].([]any)
	assert.Len(t, users, 1)

	user := users[0].(map[string]any)
	assert.Equal(t, "jane", user["username"])

	blogs := user["blogs"].([]any)
	assert.Len(t, blogs, 1)
	assert.Equal(t, "New blog", blogs[0].(map[string]any)["title"])
}

func TestResetHandler(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, token := createTestUser(t, app, "jane")

	payload := map[string]any{"title": "New blog", "url": "http://example.com"}
	status, _, _ := ts.post(t, "/api/blogs", payload, &token)
	assert.Equal(t, http.StatusCreated, status)

	status, _, _ = ts.post(t, "/api/testing/reset", nil, nil)
	assert.Equal(t, http.StatusNoContent, status)

	assert.Equal(t, 0, countRows(t, db, "users"))
	assert.Equal(t, 0, countRows(t, db, "blogs"))
	assert.Equal(t, 0, countRows(t, db, "comments"))
}
