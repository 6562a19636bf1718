//go:build integration
// +build integration

// Package integration exercises the full stack (router, repositories,
// migrations) against a real PostgreSQL instance in a container.
package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/newsfold/news-service/internal/config"
	"github.com/newsfold/news-service/internal/database"
	"github.com/newsfold/news-service/internal/repository"
	httpserver "github.com/newsfold/news-service/internal/server/http"
)

type testEnv struct {
	server *httptest.Server
	db     *database.DB
}

// setupEnv starts PostgreSQL in a container, runs the real migrations, seeds
// the dataset and serves the API over httptest.
func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("news_service_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dbCfg := &config.DatabaseConfig{
		Host:     host,
		Port:     port.Int(),
		User:     "testuser",
		Password: "testpass",
		Name:     "news_service_test",
		SSLMode:  config.SSLModeDisable,
		MaxConns: 5,
		MinConns: 1,
	}

	logger := zerolog.Nop()
	db, err := database.New(ctx, dbCfg, logger)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	migrator, err := database.NewMigrator(db, "../../migrations", logger)
	require.NoError(t, err)
	require.NoError(t, migrator.Up())
	require.NoError(t, migrator.Close())

	seed(t, ctx, db)

	srv := httpserver.NewServer(
		httpserver.Config{Address: "127.0.0.1:0"},
		repository.NewPgArticleRepository(db),
		repository.NewPgCommentRepository(db),
		repository.NewPgTopicRepository(db),
		repository.NewPgUserRepository(db),
		db,
		logger,
		nil,
	)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	return &testEnv{server: ts, db: db}
}

// seed loads a fixed dataset: three topics, four users, 13 articles of which
// 11 are filed under mitch, and a handful of comments on article 1.
func seed(t *testing.T, ctx context.Context, db *database.DB) {
	t.Helper()

	statements := []string{
		`INSERT INTO topics (slug, description) VALUES
			('mitch', 'The man, the Mitch, the legend'),
			('cats', 'Not dogs'),
			('paper', 'what books are made of')`,
		`INSERT INTO users (username, name, avatar_url) VALUES
			('butter_bridge', 'jonny', 'https://example.com/butter.jpg'),
			('icellusedkars', 'sam', 'https://example.com/sam.jpg'),
			('rogersop', 'paul', 'https://example.com/paul.jpg'),
			('lurker', 'do_nothing', 'https://example.com/lurker.jpg')`,
	}
	for _, stmt := range statements {
		_, err := db.Exec(ctx, stmt)
		require.NoError(t, err)
	}

	authors := []string{"butter_bridge", "icellusedkars", "rogersop"}
	for i := 1; i <= 11; i++ {
		_, err := db.Exec(ctx,
			`INSERT INTO articles (title, topic, author, body, votes) VALUES ($1, 'mitch', $2, $3, $4)`,
			fmt.Sprintf("Mitch article %02d", i), authors[i%len(authors)], "about mitch", i*10)
		require.NoError(t, err)
	}
	for i := 1; i <= 2; i++ {
		_, err := db.Exec(ctx,
			`INSERT INTO articles (title, topic, author, body) VALUES ($1, 'cats', 'rogersop', 'about cats')`,
			fmt.Sprintf("Cat article %d", i))
		require.NoError(t, err)
	}

	for i := 1; i <= 3; i++ {
		_, err := db.Exec(ctx,
			`INSERT INTO comments (article_id, author, body, votes) VALUES (1, 'icellusedkars', $1, $2)`,
			fmt.Sprintf("comment %d", i), i)
		require.NoError(t, err)
	}
}

func getJSON(t *testing.T, url string, target interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if target != nil {
		require.NoError(t, json.Unmarshal(body, target), string(body))
	}
	return resp.StatusCode
}

func doJSON(t *testing.T, method, url, payload string, target interface{}) int {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if target != nil && len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, target), string(body))
	}
	return resp.StatusCode
}

type articleJSON struct {
	Author       string `json:"author"`
	Title        string `json:"title"`
	ArticleID    int    `json:"article_id"`
	Topic        string `json:"topic"`
	Votes        int    `json:"votes"`
	CommentCount int    `json:"comment_count"`
}

type listArticlesJSON struct {
	Articles   []articleJSON `json:"articles"`
	TotalCount int64         `json:"total_count"`
}

type commentJSON struct {
	CommentID int    `json:"comment_id"`
	ArticleID int    `json:"article_id"`
	Author    string `json:"author"`
	Body      string `json:"body"`
	Votes     int    `json:"votes"`
}

type msgJSON struct {
	Msg string `json:"msg"`
}

func TestAPI(t *testing.T) {
	env := setupEnv(t)
	base := env.server.URL

	t.Run("topic filter with ascending author sort", func(t *testing.T) {
		var got listArticlesJSON
		code := getJSON(t, base+"/api/articles?topic=mitch&sort_by=author&order=asc&limit=20", &got)
		require.Equal(t, http.StatusOK, code)

		assert.Equal(t, int64(11), got.TotalCount)
		require.Len(t, got.Articles, 11)
		for i, a := range got.Articles {
			assert.Equal(t, "mitch", a.Topic)
			if i > 0 {
				assert.LessOrEqual(t, got.Articles[i-1].Author, a.Author)
			}
		}
	})

	t.Run("default page size is ten of thirteen", func(t *testing.T) {
		var got listArticlesJSON
		code := getJSON(t, base+"/api/articles", &got)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, int64(13), got.TotalCount)
		assert.Len(t, got.Articles, 10)
	})

	t.Run("zero-comment articles count zero through the left join", func(t *testing.T) {
		var got listArticlesJSON
		code := getJSON(t, base+"/api/articles?topic=cats&limit=20", &got)
		require.Equal(t, http.StatusOK, code)
		require.Len(t, got.Articles, 2)
		for _, a := range got.Articles {
			assert.Equal(t, 0, a.CommentCount)
		}
	})

	t.Run("unknown sort column is Bad Request", func(t *testing.T) {
		var got msgJSON
		code := getJSON(t, base+"/api/articles?sort_by=password", &got)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Bad Request", got.Msg)
	})

	t.Run("unknown topic names the slug", func(t *testing.T) {
		var got msgJSON
		code := getJSON(t, base+"/api/articles?topic=gaming", &got)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "gaming not found", got.Msg)
	})

	t.Run("repeated reads are identical", func(t *testing.T) {
		var first, second struct {
			Article articleJSON `json:"article"`
		}
		require.Equal(t, http.StatusOK, getJSON(t, base+"/api/articles/1", &first))
		require.Equal(t, http.StatusOK, getJSON(t, base+"/api/articles/1", &second))
		assert.Equal(t, first.Article.Votes, second.Article.Votes)
		assert.Equal(t, first.Article.CommentCount, second.Article.CommentCount)
	})

	t.Run("vote deltas commute", func(t *testing.T) {
		var before struct {
			Article articleJSON `json:"article"`
		}
		require.Equal(t, http.StatusOK, getJSON(t, base+"/api/articles/2", &before))

		require.Equal(t, http.StatusOK, doJSON(t, http.MethodPatch, base+"/api/articles/2", `{"inc_votes":5}`, nil))
		require.Equal(t, http.StatusOK, doJSON(t, http.MethodPatch, base+"/api/articles/2", `{"inc_votes":-3}`, nil))

		var after struct {
			Article articleJSON `json:"article"`
		}
		require.Equal(t, http.StatusOK, getJSON(t, base+"/api/articles/2", &after))
		assert.Equal(t, before.Article.Votes+2, after.Article.Votes)
	})

	t.Run("posted comment appears first in the listing", func(t *testing.T) {
		var created struct {
			Comment commentJSON `json:"comment"`
		}
		code := doJSON(t, http.MethodPost, base+"/api/articles/1/comments",
			`{"username":"lurker","body":"first!"}`, &created)
		require.Equal(t, http.StatusCreated, code)
		assert.Equal(t, "lurker", created.Comment.Author)
		assert.Equal(t, 0, created.Comment.Votes)

		var got struct {
			Comments []commentJSON `json:"comments"`
		}
		require.Equal(t, http.StatusOK, getJSON(t, base+"/api/articles/1/comments", &got))
		require.NotEmpty(t, got.Comments)
		assert.Equal(t, created.Comment.CommentID, got.Comments[0].CommentID)
	})

	t.Run("unknown comment author is Username Not Found", func(t *testing.T) {
		var got msgJSON
		code := doJSON(t, http.MethodPost, base+"/api/articles/2/comments",
			`{"username":"peter_griffin","body":"x"}`, &got)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Username Not Found", got.Msg)
	})

	t.Run("deleting a missing comment names the id", func(t *testing.T) {
		var got msgJSON
		code := doJSON(t, http.MethodDelete, base+"/api/comments/999", "", &got)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "999 Not Found In The Database", got.Msg)
	})

	t.Run("deleting an article removes its comments", func(t *testing.T) {
		code := doJSON(t, http.MethodDelete, base+"/api/articles/1", "", nil)
		require.Equal(t, http.StatusNoContent, code)

		var got msgJSON
		code = getJSON(t, base+"/api/articles/1", &got)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Article 1 Is Not In The Database", got.Msg)

		var count int
		require.NoError(t, env.db.QueryRow(context.Background(),
			`SELECT COUNT(*) FROM comments WHERE article_id = 1`).Scan(&count))
		assert.Equal(t, 0, count)
	})

	t.Run("commentless article is an empty list above a missing one", func(t *testing.T) {
		var got struct {
			Comments []commentJSON `json:"comments"`
		}
		require.Equal(t, http.StatusOK, getJSON(t, base+"/api/articles/3/comments", &got))
		assert.Empty(t, got.Comments)

		var miss msgJSON
		code := getJSON(t, base+"/api/articles/9999/comments", &miss)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Article 9999 Is Not In The Database", miss.Msg)
	})

	t.Run("topic and user endpoints", func(t *testing.T) {
		var topics struct {
			Topics []struct {
				Slug string `json:"slug"`
			} `json:"topics"`
		}
		require.Equal(t, http.StatusOK, getJSON(t, base+"/api/topics", &topics))
		assert.Len(t, topics.Topics, 3)

		var created struct {
			Topic struct {
				Slug string `json:"slug"`
			} `json:"topic"`
		}
		code := doJSON(t, http.MethodPost, base+"/api/topics",
			`{"slug":"gardening","description":"growing things"}`, &created)
		require.Equal(t, http.StatusCreated, code)
		assert.Equal(t, "gardening", created.Topic.Slug)

		var user struct {
			User struct {
				Name string `json:"name"`
			} `json:"user"`
		}
		require.Equal(t, http.StatusOK, getJSON(t, base+"/api/users/butter_bridge", &user))
		assert.Equal(t, "jonny", user.User.Name)

		var miss msgJSON
		code = getJSON(t, base+"/api/users/peter_griffin", &miss)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Not Found In The Database", miss.Msg)
	})

	t.Run("unmatched routes", func(t *testing.T) {
		var got msgJSON
		code := getJSON(t, base+"/api/banana", &got)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Path Not Found", got.Msg)
	})
}
