package server_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/news-api/internal/config"
	"github.com/sakif/news-api/internal/handler"
	"github.com/sakif/news-api/internal/model"
	"github.com/sakif/news-api/internal/repository/sqldb"
	"github.com/sakif/news-api/internal/seed"
	"github.com/sakif/news-api/internal/server"
)

// newTestServer serves the API over a private in-memory database loaded
// with the "test" dataset.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := sqldb.New(sqldb.SQLite, ":memory:", sqldb.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ds, err := seed.Load("test")
	require.NoError(t, err)
	require.NoError(t, db.Reset(context.Background()))
	require.NoError(t, db.Seed(context.Background(), ds))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := server.New(config.Defaults(), logger, db)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func call(t *testing.T, ts *httptest.Server, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func decode(t *testing.T, res *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(res.Body).Decode(v))
}

func errorMessage(t *testing.T, res *http.Response) string {
	t.Helper()
	var body handler.ErrorResponse
	decode(t, res, &body)
	return body.Message
}

// =========================================================================
// TOPICS & USERS
// =========================================================================

func TestGetTopics(t *testing.T) {
	ts := newTestServer(t)

	res := call(t, ts, http.MethodGet, "/api/topics", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Topics []model.Topic `json:"topics"`
	}
	decode(t, res, &body)
	require.Len(t, body.Topics, 3)
	for _, topic := range body.Topics {
		assert.NotEmpty(t, topic.Slug)
		assert.NotEmpty(t, topic.Description)
	}
}

func TestPostTopic(t *testing.T) {
	ts := newTestServer(t)

	res := call(t, ts, http.MethodPost, "/api/topics", `{"slug":"dogs","description":"Not cats"}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var body struct {
		Topic model.Topic `json:"topic"`
	}
	decode(t, res, &body)
	assert.Equal(t, model.Topic{Slug: "dogs", Description: "Not cats"}, body.Topic)

	res = call(t, ts, http.MethodPost, "/api/topics", `{"slug":"dogs","description":"again"}`)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	res = call(t, ts, http.MethodPost, "/api/topics", `{"slug":"birds"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Bad Request: missing required field description", errorMessage(t, res))
}

func TestUsers(t *testing.T) {
	ts := newTestServer(t)

	res := call(t, ts, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	var list struct {
		Users []model.User `json:"users"`
	}
	decode(t, res, &list)
	assert.Len(t, list.Users, 4)

	res = call(t, ts, http.MethodGet, "/api/users/butter_bridge", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	var one struct {
		User model.User `json:"user"`
	}
	decode(t, res, &one)
	assert.Equal(t, "jonny", one.User.Name)

	res = call(t, ts, http.MethodGet, "/api/users/nobody", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Not Found: User nobody does not exist", errorMessage(t, res))
}

// =========================================================================
// ARTICLES
// =========================================================================

type articlePage struct {
	Articles   []map[string]interface{} `json:"articles"`
	TotalCount int                      `json:"total_count"`
}

func TestGetArticles(t *testing.T) {
	ts := newTestServer(t)

	res := call(t, ts, http.MethodGet, "/api/articles", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var page articlePage
	decode(t, res, &page)
	assert.Equal(t, 13, page.TotalCount)
	require.Len(t, page.Articles, 10)

	for _, a := range page.Articles {
		assert.NotContains(t, a, "body", "listing must not include bodies")
		for _, key := range []string{"article_id", "author", "title", "topic", "created_at", "votes", "article_img_url", "comment_count"} {
			assert.Contains(t, a, key)
		}
	}
}

func TestGetArticles_Queries(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantTotal  int
		wantLen    int
	}{
		{name: "topic filter", query: "?topic=cats", wantStatus: 200, wantTotal: 1, wantLen: 1},
		{name: "topic without articles", query: "?topic=paper", wantStatus: 200, wantTotal: 0, wantLen: 0},
		{name: "sort and order", query: "?sort_by=votes&order=asc", wantStatus: 200, wantTotal: 13, wantLen: 10},
		{name: "limit and page", query: "?limit=5&page=3", wantStatus: 200, wantTotal: 13, wantLen: 3},
		{name: "past the end", query: "?limit=5&page=9", wantStatus: 200, wantTotal: 13, wantLen: 0},
		{name: "unknown topic", query: "?topic=dogs", wantStatus: 404},
		{name: "invalid sort_by", query: "?sort_by=password", wantStatus: 400},
		{name: "invalid order", query: "?order=random", wantStatus: 400},
		{name: "invalid limit", query: "?limit=-1", wantStatus: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := call(t, ts, http.MethodGet, "/api/articles"+tt.query, "")
			require.Equal(t, tt.wantStatus, res.StatusCode)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var page articlePage
			decode(t, res, &page)
			assert.Equal(t, tt.wantTotal, page.TotalCount)
			assert.Len(t, page.Articles, tt.wantLen)
			assert.NotNil(t, page.Articles)
		})
	}
}

func TestGetArticle(t *testing.T) {
	ts := newTestServer(t)

	res := call(t, ts, http.MethodGet, "/api/articles/1", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Article model.Article `json:"article"`
	}
	decode(t, res, &body)
	assert.Equal(t, int64(1), body.Article.ArticleID)
	assert.Equal(t, 100, body.Article.Votes)
	assert.Equal(t, 11, body.Article.CommentCount)
	assert.NotEmpty(t, body.Article.Body)

	res = call(t, ts, http.MethodGet, "/api/articles/150123", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Not Found: Article 150123 does not exist", errorMessage(t, res))

	res = call(t, ts, http.MethodGet, "/api/articles/banana", "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Bad Request: Article ID must be a number!", errorMessage(t, res))
}

func TestPostArticle(t *testing.T) {
	ts := newTestServer(t)

	res := call(t, ts, http.MethodPost, "/api/articles",
		`{"author":"lurker","title":"Paper planes","body":"Fold here.","topic":"paper"}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var body struct {
		Article model.Article `json:"article"`
	}
	decode(t, res, &body)
	assert.Equal(t, int64(14), body.Article.ArticleID)
	assert.Equal(t, 0, body.Article.Votes)
	assert.Equal(t, 0, body.Article.CommentCount)
	assert.Equal(t, model.DefaultArticleImgURL, body.Article.ArticleImgURL)

	res = call(t, ts, http.MethodPost, "/api/articles",
		`{"author":"lurker","title":"t","body":"b","topic":"dogs"}`)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = call(t, ts, http.MethodPost, "/api/articles",
		`{"author":"nobody","title":"t","body":"b","topic":"paper"}`)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = call(t, ts, http.MethodPost, "/api/articles", `{"author":"lurker"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestPatchArticle(t *testing.T) {
	ts := newTestServer(t)

	res := call(t, ts, http.MethodPatch, "/api/articles/1", `{"incVotes":-5}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var body struct {
		Article model.Article `json:"article"`
	}
	decode(t, res, &body)
	assert.Equal(t, 95, body.Article.Votes)

	res = call(t, ts, http.MethodPatch, "/api/articles/1", `{"incVotes":0}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	decode(t, res, &body)
	assert.Equal(t, 95, body.Article.Votes)

	res = call(t, ts, http.MethodPatch, "/api/articles/1", `{"incVotes":"cat"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = call(t, ts, http.MethodPatch, "/api/articles/1", `{"incVotes":9223372036854775807}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = call(t, ts, http.MethodPatch, "/api/comments/1", `{"incVotes":-9223372036854775808}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = call(t, ts, http.MethodGet, "/api/articles/1", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	decode(t, res, &body)
	assert.Equal(t, 95, body.Article.Votes)

	res = call(t, ts, http.MethodPatch, "/api/articles/999", `{"incVotes":1}`)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestDeleteArticle(t *testing.T) {
	ts := newTestServer(t)

	res := call(t, ts, http.MethodDelete, "/api/articles/1", "")
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	res = call(t, ts, http.MethodGet, "/api/articles/1", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = call(t, ts, http.MethodGet, "/api/articles/1/comments", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = call(t, ts, http.MethodDelete, "/api/articles/1", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

// =========================================================================
// COMMENTS
// =========================================================================

func TestArticleComments(t *testing.T) {
	ts := newTestServer(t)

	res := call(t, ts, http.MethodGet, "/api/articles/1/comments", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	var list struct {
		Comments []model.Comment `json:"comments"`
	}
	decode(t, res, &list)
	assert.Len(t, list.Comments, 10)

	res = call(t, ts, http.MethodGet, "/api/articles/2/comments", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	decode(t, res, &list)
	assert.Empty(t, list.Comments)

	res = call(t, ts, http.MethodGet, "/api/articles/999/comments", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = call(t, ts, http.MethodGet, "/api/articles/1/comments?page=zero", "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestPostComment(t *testing.T) {
	ts := newTestServer(t)

	res := call(t, ts, http.MethodPost, "/api/articles/1/comments", `{"username":"butter_bridge","body":"Great read"}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var body struct {
		Comment model.Comment `json:"comment"`
	}
	decode(t, res, &body)
	assert.Equal(t, "butter_bridge", body.Comment.Author)
	assert.Equal(t, "Great read", body.Comment.Body)
	assert.Equal(t, 0, body.Comment.Votes)
	assert.Equal(t, int64(1), body.Comment.ArticleID)

	res = call(t, ts, http.MethodGet, "/api/articles/1", "")
	var article struct {
		Article model.Article `json:"article"`
	}
	decode(t, res, &article)
	assert.Equal(t, 12, article.Article.CommentCount)

	res = call(t, ts, http.MethodPost, "/api/articles/1/comments", `{"username":"nobody","body":"hi"}`)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = call(t, ts, http.MethodPost, "/api/articles/999/comments", `{"username":"butter_bridge","body":"hi"}`)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = call(t, ts, http.MethodPost, "/api/articles/1/comments", `{"username":"butter_bridge"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestPatchAndDeleteComment(t *testing.T) {
	ts := newTestServer(t)

	res := call(t, ts, http.MethodPatch, "/api/comments/1", `{"incVotes":1}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var body struct {
		Comment model.Comment `json:"comment"`
	}
	decode(t, res, &body)
	assert.Equal(t, 17, body.Comment.Votes)

	res = call(t, ts, http.MethodDelete, "/api/comments/1", "")
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	res = call(t, ts, http.MethodDelete, "/api/comments/999999999", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = call(t, ts, http.MethodDelete, "/api/comments/not-a-number", "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

// =========================================================================
// MISC
// =========================================================================

func TestGetAPI(t *testing.T) {
	ts := newTestServer(t)

	res := call(t, ts, http.MethodGet, "/api", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get("X-Request-Id"))

	var body struct {
		Endpoints map[string]interface{} `json:"endpoints"`
	}
	decode(t, res, &body)
	assert.Contains(t, body.Endpoints, "GET /api/articles")
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	res := call(t, ts, http.MethodGet, "/api/nonsense", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = call(t, ts, http.MethodPut, "/api/topics", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/articles", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://news.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)

	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
}
