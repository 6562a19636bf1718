package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsfold/news-service/internal/domain"
)

func TestPgTopicRepository_List(t *testing.T) {
	t.Run("returns all topics", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgTopicRepository(mock)

		mock.ExpectQuery(`SELECT slug, description FROM topics`).
			WillReturnRows(pgxmock.NewRows([]string{"slug", "description"}).
				AddRow("mitch", "The man, the Mitch, the legend").
				AddRow("cats", "Not dogs").
				AddRow("paper", "what books are made of"))

		topics, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, topics, 3)
		assert.Equal(t, "mitch", topics[0].Slug)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no topics is an empty list", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgTopicRepository(mock)

		mock.ExpectQuery(`SELECT slug, description FROM topics`).
			WillReturnRows(pgxmock.NewRows([]string{"slug", "description"}))

		topics, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, topics)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgTopicRepository_Insert(t *testing.T) {
	t.Run("creates a topic", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgTopicRepository(mock)

		mock.ExpectQuery(`INSERT INTO topics`).
			WithArgs("gardening", "growing things").
			WillReturnRows(pgxmock.NewRows([]string{"slug", "description"}).
				AddRow("gardening", "growing things"))

		topic, err := repo.Insert(context.Background(), domain.NewTopic{
			Slug:        "gardening",
			Description: "growing things",
		})
		require.NoError(t, err)
		assert.Equal(t, "gardening", topic.Slug)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate slug is invalid input, not a server fault", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgTopicRepository(mock)

		mock.ExpectQuery(`INSERT INTO topics`).
			WithArgs("mitch", "again").
			WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "topics_pkey"})

		_, err = repo.Insert(context.Background(), domain.NewTopic{
			Slug:        "mitch",
			Description: "again",
		})
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects missing and numeric fields before any query", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgTopicRepository(mock)

		_, err = repo.Insert(context.Background(), domain.NewTopic{Slug: "gardening"})
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))

		_, err = repo.Insert(context.Background(), domain.NewTopic{Slug: "42", Description: "numbers"})
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
