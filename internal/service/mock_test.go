package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/sakif/news-api/internal/apperror"
	"github.com/sakif/news-api/internal/model"
	"github.com/sakif/news-api/internal/query"
)

// =========================================================================
// MOCK REPOSITORIES
// =========================================================================
//
// In-memory fakes of the repository interfaces. They keep just enough state
// to check what the services pass down and how they react to the results.
//
// WHY ONE SHARED STORE?
// Articles, comments, topics and users reference each other: creating an
// article needs its topic and author, a comment needs its article and
// author. mockStore holds all four tables, and the
// mockArticleRepo, mockCommentRepo, mockTopicRepo and mockUserRepo types
// are thin views over it, so a test can seed once and exercise any service.
//
// The real constraint checks are tested against SQLite in the sqldb
// package; these fakes only mimic the outcomes (NotFound, Conflict) the
// services have to pass through.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockStore struct {
	topics   map[string]model.Topic
	users    map[string]bool
	articles map[int64]*model.Article
	comments map[int64]*model.Comment
	nextID   int64

	lastParams query.ArticleParams
	lastPage   query.Page
	calls      int
}

func newMockStore() *mockStore {
	return &mockStore{
		topics:   map[string]model.Topic{"cats": {Slug: "cats", Description: "Not dogs"}},
		users:    map[string]bool{"butter_bridge": true},
		articles: map[int64]*model.Article{},
		comments: map[int64]*model.Comment{},
	}
}

type mockArticleRepo struct{ *mockStore }

func (m mockArticleRepo) List(_ context.Context, p query.ArticleParams) (*model.ArticlePage, error) {
	m.calls++
	m.lastParams = p
	if _, ok := m.topics[p.Topic]; p.Topic != "" && !ok {
		return nil, apperror.NotFound("topic", p.Topic)
	}
	page := &model.ArticlePage{Articles: []model.ArticleSummary{}}
	for _, a := range m.articles {
		if p.Topic == "" || a.Topic == p.Topic {
			page.Articles = append(page.Articles, a.ArticleSummary)
		}
	}
	sort.Slice(page.Articles, func(i, j int) bool { return page.Articles[i].ArticleID < page.Articles[j].ArticleID })
	page.TotalCount = len(page.Articles)
	return page, nil
}

func (m mockArticleRepo) GetByID(_ context.Context, id int64) (*model.Article, error) {
	m.calls++
	a, ok := m.articles[id]
	if !ok {
		return nil, apperror.NotFound("article", strconv.FormatInt(id, 10))
	}
	result := *a
	return &result, nil
}

func (m mockArticleRepo) Create(_ context.Context, in model.NewArticle) (*model.Article, error) {
	m.calls++
	if _, ok := m.topics[in.Topic]; !ok {
		return nil, apperror.NotFound("topic", in.Topic)
	}
	if !m.users[in.Author] {
		return nil, apperror.NotFound("user", in.Author)
	}
	m.nextID++
	a := &model.Article{
		ArticleSummary: model.ArticleSummary{
			ArticleID:     m.nextID,
			Author:        in.Author,
			Title:         in.Title,
			Topic:         in.Topic,
			CreatedAt:     time.Now().UTC(),
			ArticleImgURL: in.ArticleImgURL,
		},
		Body: in.Body,
	}
	m.articles[a.ArticleID] = a
	result := *a
	return &result, nil
}

func (m mockArticleRepo) UpdateVotes(_ context.Context, id int64, delta int) (*model.Article, error) {
	m.calls++
	a, ok := m.articles[id]
	if !ok {
		return nil, apperror.NotFound("article", strconv.FormatInt(id, 10))
	}
	a.Votes += delta
	result := *a
	return &result, nil
}

func (m mockArticleRepo) Delete(_ context.Context, id int64) error {
	m.calls++
	if _, ok := m.articles[id]; !ok {
		return apperror.NotFound("article", strconv.FormatInt(id, 10))
	}
	delete(m.articles, id)
	return nil
}

type mockCommentRepo struct{ *mockStore }

func (m mockCommentRepo) ListByArticle(_ context.Context, articleID int64, page query.Page) ([]model.Comment, error) {
	m.calls++
	m.lastPage = page
	if _, ok := m.articles[articleID]; !ok {
		return nil, apperror.NotFound("article", strconv.FormatInt(articleID, 10))
	}
	comments := []model.Comment{}
	for _, c := range m.comments {
		if c.ArticleID == articleID {
			comments = append(comments, *c)
		}
	}
	return comments, nil
}

func (m mockCommentRepo) Create(_ context.Context, articleID int64, author, body string) (*model.Comment, error) {
	m.calls++
	if _, ok := m.articles[articleID]; !ok {
		return nil, apperror.NotFound("article", strconv.FormatInt(articleID, 10))
	}
	if !m.users[author] {
		return nil, apperror.NotFound("user", author)
	}
	m.nextID++
	c := &model.Comment{CommentID: m.nextID, ArticleID: articleID, Author: author, Body: body, CreatedAt: time.Now().UTC()}
	m.comments[c.CommentID] = c
	result := *c
	return &result, nil
}

func (m mockCommentRepo) UpdateVotes(_ context.Context, id int64, delta int) (*model.Comment, error) {
	m.calls++
	c, ok := m.comments[id]
	if !ok {
		return nil, apperror.NotFound("comment", strconv.FormatInt(id, 10))
	}
	c.Votes += delta
	result := *c
	return &result, nil
}

func (m mockCommentRepo) Delete(_ context.Context, id int64) error {
	m.calls++
	if _, ok := m.comments[id]; !ok {
		return apperror.NotFound("comment", strconv.FormatInt(id, 10))
	}
	delete(m.comments, id)
	return nil
}

type mockTopicRepo struct{ *mockStore }

func (m mockTopicRepo) List(_ context.Context) ([]model.Topic, error) {
	m.calls++
	topics := []model.Topic{}
	for _, t := range m.topics {
		topics = append(topics, t)
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Slug < topics[j].Slug })
	return topics, nil
}

func (m mockTopicRepo) GetBySlug(_ context.Context, slug string) (*model.Topic, error) {
	m.calls++
	t, ok := m.topics[slug]
	if !ok {
		return nil, apperror.NotFound("topic", slug)
	}
	return &t, nil
}

func (m mockTopicRepo) Create(_ context.Context, t model.Topic) (*model.Topic, error) {
	m.calls++
	if _, ok := m.topics[t.Slug]; ok {
		return nil, apperror.Conflict("topic", t.Slug)
	}
	m.topics[t.Slug] = t
	return &t, nil
}

type mockUserRepo struct{ *mockStore }

func (m mockUserRepo) List(_ context.Context) ([]model.User, error) {
	users := []model.User{}
	for name := range m.users {
		users = append(users, model.User{Username: name})
	}
	return users, nil
}

func (m mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if !m.users[username] {
		return nil, apperror.NotFound("user", username)
	}
	return &model.User{Username: username}, nil
}
