package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/kasuboski/guessr/pkg/storage"
	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	store := initSqlite(t, context.Background())
	assert.NotNil(t, store)
}

func TestGuessStorage(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t, ctx)
	assert.NotNil(t, store)

	records, err := store.ListGuesses(ctx)
	assert.Nil(t, err)
	assert.Empty(t, records)

	_, err = store.GetGuess(ctx, "Deadwood.1x05.mkv")
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	create := storage.GuessRecord{
		Name:       "Deadwood.1x05.mkv",
		Properties: `{"season":1,"episodeNumber":5,"series":"Deadwood"}`,
		Confidence: `{"season":1,"episodeNumber":1,"series":0.7}`,
	}
	id, err := store.PutGuess(ctx, create)
	assert.Nil(t, err)
	assert.NotZero(t, id)

	actual, err := store.GetGuess(ctx, create.Name)
	assert.Nil(t, err)
	assert.Equal(t, create.Name, actual.Name)
	assert.Equal(t, create.Properties, actual.Properties)
	assert.Equal(t, create.Confidence, actual.Confidence)
	assert.NotZero(t, actual.CreatedAt)

	records, err = store.ListGuesses(ctx)
	assert.Nil(t, err)
	assert.Len(t, records, 1)

	err = store.DeleteGuess(ctx, create.Name)
	assert.Nil(t, err)

	records, err = store.ListGuesses(ctx)
	assert.Nil(t, err)
	assert.Empty(t, records)
}

func TestPutGuessReplaces(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t, ctx)

	first := storage.GuessRecord{
		Name:       "movie [en].avi",
		Properties: `{"title":"movie"}`,
		Confidence: `{"title":0.6}`,
	}
	_, err := store.PutGuess(ctx, first)
	assert.Nil(t, err)

	second := first
	second.Properties = `{"title":"movie","language":"en"}`
	second.Confidence = `{"title":0.6,"language":0.8}`
	_, err = store.PutGuess(ctx, second)
	assert.Nil(t, err)

	records, err := store.ListGuesses(ctx)
	assert.Nil(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, second.Properties, records[0].Properties)
}

func TestDeleteGuessMissing(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t, ctx)

	err := store.DeleteGuess(ctx, "never stored")
	assert.Nil(t, err)
}

func TestMigrationVersion(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t, ctx)

	s, ok := store.(SQLite)
	assert.True(t, ok)

	version, dirty, err := s.GetMigrationVersion()
	assert.Nil(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)
}

func initSqlite(t *testing.T, ctx context.Context) storage.Storage {
	store, err := New(":memory:")
	assert.Nil(t, err)

	err = store.Init(ctx)
	assert.Nil(t, err)
	return store
}
