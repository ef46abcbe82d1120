/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robotteam/clubserver/internal/broadcast"
	"github.com/robotteam/clubserver/internal/client"
	"github.com/robotteam/clubserver/types"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Log in and print admin broadcast messages as they arrive",
	Long: `Logs in to a running server and polls for admin broadcast messages.
Each message shown here is consumed: other clients will not see it.
The password is read from CLUB_PASSWORD when --password is not given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		baseURL, _ := cmd.Flags().GetString("url")
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		interval, _ := cmd.Flags().GetDuration("interval")
		if password == "" {
			password = os.Getenv("CLUB_PASSWORD")
		}
		if username == "" {
			return errors.New("--username is required")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		api, err := client.New(baseURL)
		if err != nil {
			return err
		}
		session, err := api.Login(ctx, username, password)
		if err != nil {
			return err
		}
		log.Info("logged in", "username", session.Username, "admin", session.IsAdmin)

		poller := broadcast.NewSession(api, broadcast.PresenterFunc(func(msg types.AdminMessage) {
			log.Info("admin message", "from", msg.SentBy, "at", msg.CreatedAt.Format(time.DateTime), "message", msg.Message)
		}), interval)
		if err := poller.Start(ctx); err != nil {
			return err
		}

		<-ctx.Done()
		if err := poller.Stop(); err != nil {
			log.Warn("failed to stop polling", "error", err)
		}

		logoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return api.Logout(logoutCtx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().String("url", "http://localhost:8080", "server base URL")
	watchCmd.Flags().StringP("username", "u", "", "account to log in with")
	watchCmd.Flags().StringP("password", "p", "", "account password")
	watchCmd.Flags().Duration("interval", broadcast.DefaultInterval, "poll interval")
}
