// Package library walks a media directory and guesses properties for every
// video file it finds.
package library

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/kasuboski/guessr/pkg/guess"
	"github.com/kasuboski/guessr/pkg/guesser"
	"github.com/kasuboski/guessr/pkg/logger"
)

// DefaultExtensions are the file extensions treated as video files when the
// library is not configured with its own list.
var DefaultExtensions = []string{".mp4", ".avi", ".mkv", ".m4v", ".iso", ".ts", ".m2ts"}

// MediaFile is one guessed video file from the library.
type MediaFile struct {
	Path  string      `json:"path"`
	Name  string      `json:"name"`
	Size  string      `json:"size"`
	Guess guess.Guess `json:"guess"`
}

type Library struct {
	media      fs.FS
	guesser    *guesser.Guesser
	extensions []string
}

// New creates a library over the given filesystem. An empty extensions slice
// falls back to DefaultExtensions.
func New(media fs.FS, g *guesser.Guesser, extensions []string) Library {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return Library{
		media:      media,
		guesser:    g,
		extensions: extensions,
	}
}

// Scan walks the library and runs the guess pipeline on every video file.
// Files whose guess fails are logged and skipped rather than aborting the walk.
func (l *Library) Scan(ctx context.Context) ([]MediaFile, error) {
	log := logger.FromCtx(ctx)

	files := []MediaFile{}
	err := fs.WalkDir(l.media, ".", func(path string, d fs.DirEntry, err error) error {
		log.Debugw("library walk", "path", path)
		if err != nil {
			// just skip this dir for now if there's an issue
			return fs.SkipDir
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && d.Name() != "." {
				log.Debugw("skipping", "dir", d.Name())
				return fs.SkipDir
			}
			return nil
		}

		if !l.isVideoFile(path) {
			return nil
		}

		g, _, err := l.guesser.Guess(ctx, path)
		if err != nil {
			log.Warnw("failed to guess file", "path", path, "error", err)
			return nil
		}

		file := MediaFile{
			Path:  path,
			Name:  d.Name(),
			Guess: g,
		}
		info, err := d.Info()
		if err == nil {
			file.Size = humanize.Bytes(uint64(info.Size()))
		}

		files = append(files, file)

		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

func (l *Library) isVideoFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range l.extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}

	return false
}
