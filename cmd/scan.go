package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/kasuboski/guessr/config"
	"github.com/kasuboski/guessr/pkg/guesser"
	"github.com/kasuboski/guessr/pkg/library"
	"github.com/kasuboski/guessr/pkg/logger"
	"github.com/kasuboski/guessr/pkg/storage"
	"github.com/kasuboski/guessr/pkg/storage/sqlite"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:        "scan [dir]",
	Short:      "guess every video file in a library directory",
	Long:       `guess every video file in a library directory and cache the results`,
	Args:       cobra.MaximumNArgs(1),
	ArgAliases: []string{"path to library"},
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		log := logger.Get()
		ctx = logger.WithCtx(ctx, log)

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatalw("failed to read configurations", "error", err)
		}

		dir := cfg.Library.Dir
		if len(args) > 0 {
			dir = args[0]
		}
		if dir == "" {
			log.Fatal("a library directory is required")
		}

		store, err := sqlite.New(cfg.Storage.FilePath)
		if err != nil {
			log.Fatalw("failed to create storage connection", "error", err)
		}

		if err := store.Init(ctx); err != nil {
			log.Fatalw("failed to init database", "error", err)
		}

		lib := library.New(os.DirFS(dir), guesser.New(), cfg.Library.Extensions)
		files, err := lib.Scan(ctx)
		if err != nil {
			log.Fatalw("failed to scan library", "dir", dir, "error", err)
		}

		cached := 0
		for _, f := range files {
			record, err := recordFromFile(f)
			if err != nil {
				log.Warnw("failed to encode guess", "path", f.Path, "error", err)
				continue
			}
			if _, err := store.PutGuess(ctx, record); err != nil {
				log.Warnw("failed to cache guess", "path", f.Path, "error", err)
				continue
			}
			cached++
		}

		fmt.Printf("scanned %s: %d video files, %d cached\n", dir, len(files), cached)
	},
}

func recordFromFile(f library.MediaFile) (storage.GuessRecord, error) {
	props := map[string]any{}
	conf := map[string]float64{}
	for _, p := range f.Guess.Properties() {
		v, _ := f.Guess.Value(p)
		props[p] = v
		conf[p] = f.Guess.Confidence(p)
	}

	pb, err := json.Marshal(props)
	if err != nil {
		return storage.GuessRecord{}, err
	}
	cb, err := json.Marshal(conf)
	if err != nil {
		return storage.GuessRecord{}, err
	}

	return storage.GuessRecord{
		Name:       f.Path,
		Properties: string(pb),
		Confidence: string(cb),
	}, nil
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
