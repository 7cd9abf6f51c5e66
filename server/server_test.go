package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kasuboski/guessr/pkg/guesser"
	"github.com/kasuboski/guessr/pkg/storage"
	"github.com/kasuboski/guessr/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestServer_Healthz(t *testing.T) {
	t.Run("healthz", func(t *testing.T) {
		s := Server{baseLogger: zap.NewNop().Sugar()}

		req, err := http.NewRequest("GET", "/healthz", nil)
		assert.NoError(t, err)

		rr := httptest.NewRecorder()

		handler := s.Healthz()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		assert.Equal(t, "application/json", rr.Header().Get("content-type"))

		var response GenericResponse
		err = json.Unmarshal(rr.Body.Bytes(), &response)

		assert.NoError(t, err)
		assert.Equal(t, "ok", response.Response)
	})
}

func TestServer_GuessName(t *testing.T) {
	t.Run("cache miss runs the pipeline and stores the result", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStorage(ctrl)
		store.EXPECT().GetGuess(gomock.Any(), "Deadwood.1x05.mkv").Return(storage.GuessRecord{}, storage.ErrNotFound)
		store.EXPECT().PutGuess(gomock.Any(), gomock.Any()).Return(int64(1), nil)

		s := New(zap.NewNop().Sugar(), guesser.New(), store)

		req, err := http.NewRequest("GET", "/api/v1/guess?name=Deadwood.1x05.mkv", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		s.GuessName().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var response struct {
			Response guessResponse `json:"response"`
		}
		err = json.Unmarshal(rr.Body.Bytes(), &response)
		require.NoError(t, err)

		assert.Equal(t, "Deadwood.1x05.mkv", response.Response.Name)
		assert.False(t, response.Response.Cached)
		assert.Equal(t, "Deadwood", response.Response.Properties["series"])
		assert.Equal(t, float64(1), response.Response.Properties["season"])
		assert.Equal(t, float64(5), response.Response.Properties["episodeNumber"])
		assert.Equal(t, "mkv", response.Response.Properties["extension"])
	})

	t.Run("cache hit skips the pipeline", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStorage(ctrl)
		store.EXPECT().GetGuess(gomock.Any(), "movie.mkv").Return(storage.GuessRecord{
			Name:       "movie.mkv",
			Properties: `{"title":"movie"}`,
			Confidence: `{"title":0.6}`,
		}, nil)

		s := New(zap.NewNop().Sugar(), guesser.New(), store)

		req, err := http.NewRequest("GET", "/api/v1/guess?name=movie.mkv", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		s.GuessName().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var response struct {
			Response guessResponse `json:"response"`
		}
		err = json.Unmarshal(rr.Body.Bytes(), &response)
		require.NoError(t, err)

		assert.True(t, response.Response.Cached)
		assert.Equal(t, "movie", response.Response.Properties["title"])
		assert.Equal(t, 0.6, response.Response.Confidence["title"])
	})

	t.Run("missing name is a bad request", func(t *testing.T) {
		s := New(zap.NewNop().Sugar(), guesser.New(), nil)

		req, err := http.NewRequest("GET", "/api/v1/guess", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		s.GuessName().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestServer_ListGuesses(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStorage(ctrl)
	store.EXPECT().ListGuesses(gomock.Any()).Return([]storage.GuessRecord{
		{ID: 2, Name: "b.mkv"},
		{ID: 1, Name: "a.mkv"},
	}, nil)

	s := New(zap.NewNop().Sugar(), guesser.New(), store)

	req, err := http.NewRequest("GET", "/api/v1/guesses", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	s.ListGuesses().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response struct {
		Response listGuessesResponse `json:"response"`
	}
	err = json.Unmarshal(rr.Body.Bytes(), &response)
	require.NoError(t, err)
	require.Len(t, response.Response.Guesses, 2)
	assert.Equal(t, "b.mkv", response.Response.Guesses[0].Name)
	assert.Equal(t, 2, response.Response.Meta.TotalItems)
}

func TestServer_ListGuesses_paged(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStorage(ctrl)
	store.EXPECT().ListGuesses(gomock.Any()).Return([]storage.GuessRecord{
		{ID: 3, Name: "c.mkv"},
		{ID: 2, Name: "b.mkv"},
		{ID: 1, Name: "a.mkv"},
	}, nil)

	s := New(zap.NewNop().Sugar(), guesser.New(), store)

	req, err := http.NewRequest("GET", "/api/v1/guesses?page=2&pageSize=2", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	s.ListGuesses().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response struct {
		Response listGuessesResponse `json:"response"`
	}
	err = json.Unmarshal(rr.Body.Bytes(), &response)
	require.NoError(t, err)
	require.Len(t, response.Response.Guesses, 1)
	assert.Equal(t, "a.mkv", response.Response.Guesses[0].Name)
	assert.Equal(t, 2, response.Response.Meta.TotalPages)
}

func TestServer_GuessName_memo(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStorage(ctrl)
	// only the first request reaches storage
	store.EXPECT().GetGuess(gomock.Any(), "movie.mkv").Return(storage.GuessRecord{}, storage.ErrNotFound)
	store.EXPECT().PutGuess(gomock.Any(), gomock.Any()).Return(int64(1), nil)

	s := New(zap.NewNop().Sugar(), guesser.New(), store)

	for i := 0; i < 2; i++ {
		req, err := http.NewRequest("GET", "/api/v1/guess?name=movie.mkv", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		s.GuessName().ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)

		var response struct {
			Response guessResponse `json:"response"`
		}
		err = json.Unmarshal(rr.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, i == 1, response.Response.Cached)
	}
}

func TestServer_DeleteGuess(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStorage(ctrl)
	store.EXPECT().DeleteGuess(gomock.Any(), "a.mkv").Return(nil)

	s := New(zap.NewNop().Sugar(), guesser.New(), store)

	req, err := http.NewRequest("DELETE", "/api/v1/guesses?name=a.mkv", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	s.DeleteGuess().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestServer_SearchLanguage(t *testing.T) {
	t.Run("finds a bracketed code", func(t *testing.T) {
		s := New(zap.NewNop().Sugar(), guesser.New(), nil)

		req, err := http.NewRequest("GET", "/api/v1/language/search?text=movie+%5Ben%5D.avi", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		s.SearchLanguage().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var response struct {
			Response *languageMatchResponse `json:"response"`
		}
		err = json.Unmarshal(rr.Body.Bytes(), &response)
		require.NoError(t, err)
		require.NotNil(t, response.Response)
		assert.Equal(t, "English", response.Response.Language)
		assert.Equal(t, "eng", response.Response.Alpha3)
		assert.Equal(t, 0.8, response.Response.Confidence)
	})

	t.Run("no match yields a null response", func(t *testing.T) {
		s := New(zap.NewNop().Sugar(), guesser.New(), nil)

		req, err := http.NewRequest("GET", "/api/v1/language/search?text=nothing+here", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		s.SearchLanguage().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var response GenericResponse
		err = json.Unmarshal(rr.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Nil(t, response.Response)
	})

	t.Run("bad filter is a bad request", func(t *testing.T) {
		s := New(zap.NewNop().Sugar(), guesser.New(), nil)

		req, err := http.NewRequest("GET", "/api/v1/language/search?text=movie+%5Ben%5D&allowed=notalang", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		s.SearchLanguage().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
