package library

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/kasuboski/guessr/pkg/guesser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	ctx := context.Background()
	media := fstest.MapFS{
		"tv/Deadwood.1x05.The.Trial.mkv":        &fstest.MapFile{Data: make([]byte, 2048)},
		"movies/Dark.City.1998.DVDRip.x264.mkv": &fstest.MapFile{},
		"movies/cover.jpg":                      &fstest.MapFile{},
		"notes.txt":                             &fstest.MapFile{},
	}

	lib := New(media, guesser.New(), nil)
	files, err := lib.Scan(ctx)
	require.Nil(t, err)
	require.Len(t, files, 2)

	byPath := map[string]MediaFile{}
	for _, f := range files {
		byPath[f.Path] = f
	}

	episode, ok := byPath["tv/Deadwood.1x05.The.Trial.mkv"]
	require.True(t, ok)
	assert.Equal(t, "Deadwood.1x05.The.Trial.mkv", episode.Name)
	assert.Equal(t, "2.0 kB", episode.Size)
	series, _ := episode.Guess.Value("series")
	assert.Equal(t, "Deadwood", series)
	season, _ := episode.Guess.Value("season")
	assert.Equal(t, 1, season)
	episodeNumber, _ := episode.Guess.Value("episodeNumber")
	assert.Equal(t, 5, episodeNumber)

	movie, ok := byPath["movies/Dark.City.1998.DVDRip.x264.mkv"]
	require.True(t, ok)
	year, _ := movie.Guess.Value("year")
	assert.Equal(t, 1998, year)
	format, _ := movie.Guess.Value("format")
	assert.Equal(t, "DVDRip", format)
}

func TestScan_skipsHiddenDirs(t *testing.T) {
	ctx := context.Background()
	media := fstest.MapFS{
		".trash/old.mkv": &fstest.MapFile{},
		"keep.mkv":       &fstest.MapFile{},
	}

	lib := New(media, guesser.New(), nil)
	files, err := lib.Scan(ctx)
	require.Nil(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "keep.mkv", files[0].Path)
}

func TestScan_customExtensions(t *testing.T) {
	ctx := context.Background()
	media := fstest.MapFS{
		"show.webm": &fstest.MapFile{},
		"show.mkv":  &fstest.MapFile{},
	}

	lib := New(media, guesser.New(), []string{".webm"})
	files, err := lib.Scan(ctx)
	require.Nil(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "show.webm", files[0].Path)
}

func TestIsVideoFile(t *testing.T) {
	lib := New(fstest.MapFS{}, guesser.New(), nil)

	assert.True(t, lib.isVideoFile("a/b/c.mkv"))
	assert.True(t, lib.isVideoFile("c.MKV"))
	assert.False(t, lib.isVideoFile("c.srt"))
	assert.False(t, lib.isVideoFile("noext"))
}
