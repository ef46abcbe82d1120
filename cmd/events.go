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

	"github.com/charmbracelet/log"
	"github.com/robotteam/clubserver/config"
	"github.com/robotteam/clubserver/internal/mq"
	"github.com/spf13/cobra"
)

// eventsCmd represents the events command
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Subscribe to the club event feed and log each event",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		feed, err := mq.NewFromConfig(ctx, cfg.MQ)
		if err != nil {
			return err
		}
		if feed == nil {
			return errors.New("MQ_BACKEND is not configured")
		}
		defer feed.Close()

		log.Info("listening for events", "backend", cfg.MQ.Backend, "channel", cfg.MQ.Channel)
		err = feed.Subscribe(ctx, cfg.MQ.Channel, func(ctx context.Context, msg mq.Message) error {
			ev, err := mq.DecodeEvent(msg)
			if err != nil {
				// Undecodable payloads are dropped rather than redelivered forever.
				log.Warn("skipping malformed event", "id", msg.ID, "error", err)
				return nil
			}
			log.Info(ev.Type, "actor", ev.Actor, "subject", ev.Subject, "detail", ev.Detail, "at", ev.OccurredAt)
			return nil
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}
