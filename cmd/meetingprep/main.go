package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nexxia-ai/meetingprep"
	"github.com/nexxia-ai/meetingprep/config"
	"github.com/nexxia-ai/meetingprep/web"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "meetingprep",
		Short: "Prepare business-meeting briefings with a four-stage LLM pipeline",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(prepareCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			var preparer *meetingprep.Preparer
			if err := cfg.Validate(); err != nil {
				slog.Warn("missing configuration, pipeline disabled", "error", err)
			} else {
				preparer, err = meetingprep.NewPreparer(cfg)
				if err != nil {
					return err
				}
			}

			srv := web.NewServer(preparer, cfg)
			slog.Info("starting web server", "addr", cfg.Addr)
			return srv.Run(cfg.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from ADDR or :8080)")
	return cmd
}

func prepareCmd() *cobra.Command {
	var (
		company   string
		objective string
		attendees string
		duration  int
		focus     string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Prepare a briefing from the command line and write it to a markdown file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			preparer, err := meetingprep.NewPreparer(cfg)
			if err != nil {
				return err
			}

			briefing, err := preparer.Prepare(context.Background(), meetingprep.MeetingRequest{
				CompanyName:      company,
				MeetingObjective: objective,
				Attendees:        attendees,
				Duration:         duration,
				FocusAreas:       focus,
			})
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = briefing.Filename
			}
			if err := os.WriteFile(path, []byte(briefing.ExecutiveBrief), 0644); err != nil {
				return fmt.Errorf("failed to write briefing: %w", err)
			}

			fmt.Println(path)
			return nil
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "company name (required)")
	cmd.Flags().StringVar(&objective, "objective", "", "meeting objective (required)")
	cmd.Flags().StringVar(&attendees, "attendees", "", "attendee list (required)")
	cmd.Flags().IntVar(&duration, "duration", 60, "meeting duration in minutes (30, 45, 60, 90 or 120)")
	cmd.Flags().StringVar(&focus, "focus", "", "focus areas")
	cmd.Flags().StringVar(&output, "output", "", "output file path (default derived from company name)")
	return cmd
}
