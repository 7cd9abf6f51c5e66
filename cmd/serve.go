package cmd

import (
	"context"

	"github.com/kasuboski/guessr/config"
	"github.com/kasuboski/guessr/pkg/guesser"
	"github.com/kasuboski/guessr/pkg/logger"
	"github.com/kasuboski/guessr/pkg/storage/sqlite"
	"github.com/kasuboski/guessr/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the guess server",
	Long:  `start the guess server`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatalw("failed to read configurations", "error", err)
		}

		store, err := sqlite.New(cfg.Storage.FilePath)
		if err != nil {
			log.Fatalw("failed to create storage connection", "error", err)
		}

		err = store.Init(context.TODO())
		if err != nil {
			log.Fatalw("failed to init database", "error", err)
		}

		server := server.New(log, guesser.New(), store)
		log.Error(server.Serve(cfg.Server.Port))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
