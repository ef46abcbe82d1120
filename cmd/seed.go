/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/robotteam/clubserver/config"
	"github.com/robotteam/clubserver/internal/db"
	"github.com/robotteam/clubserver/internal/services"
	"github.com/robotteam/clubserver/internal/store"
	"github.com/robotteam/clubserver/types"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default admin accounts into an empty users table",
	Long: `Insert the default admin accounts listed in SEED_USERS
("username:password" pairs) and SEED_HIDDEN_ADMIN. Nothing is inserted
when the users table already has rows.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		dbConn, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		users := services.NewUserService(store.NewUserRepository(dbConn), nil)
		return seedDefaults(cmd.Context(), cfg, users)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func seedDefaults(ctx context.Context, cfg config.Config, users *services.UserService) error {
	accounts, err := cfg.Seed.Accounts()
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		log.Info("no seed accounts configured")
		return nil
	}

	created, err := users.SeedDefaults(ctx, lo.Map(accounts, func(a config.SeedAccount, _ int) types.User {
		return types.User{Username: a.Username, Password: a.Password, IsAdmin: true, Hidden: a.Hidden}
	}))
	if err != nil {
		return err
	}
	log.Info("seeding finished", "created", created)
	return nil
}
