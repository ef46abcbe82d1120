/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/robotteam/clubserver/config"
	"github.com/robotteam/clubserver/internal/db"
	"github.com/robotteam/clubserver/internal/mq"
	"github.com/robotteam/clubserver/internal/server"
	"github.com/robotteam/clubserver/internal/storage"
	"github.com/spf13/cobra"
)

// migrateUploadsCmd represents the migrate-uploads command
var migrateUploadsCmd = &cobra.Command{
	Use:   "migrate-uploads",
	Short: "Move locally stored media files into object storage",
	Long: `Uploads files from a local directory for every video and photo row
that still references a local file name and has no public URL, then points
the row at the stored object.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		cfg := config.LoadConfig()
		ctx := cmd.Context()

		dbConn, err := db.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		blobs, err := storage.New(ctx, cfg.Storage)
		if err != nil {
			return fmt.Errorf("init storage: %w", err)
		}
		if err := blobs.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("ensure bucket %s: %w", blobs.Bucket(), err)
		}

		svc := server.NewServices(dbConn, blobs, mq.NewPublisher(nil, cfg.MQ.Channel))
		for _, gallery := range []struct {
			name    string
			migrate func() (int, error)
		}{
			{"videos", func() (int, error) { return svc.Videos.MigrateLocal(ctx, dir) }},
			{"photos", func() (int, error) { return svc.Photos.MigrateLocal(ctx, dir) }},
		} {
			migrated, err := gallery.migrate()
			if err != nil {
				return fmt.Errorf("migrate %s: %w", gallery.name, err)
			}
			log.Info("uploads migrated", "gallery", gallery.name, "count", migrated)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateUploadsCmd)
	migrateUploadsCmd.Flags().String("dir", "uploads", "directory holding the local media files")
}
