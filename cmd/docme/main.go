package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"docme/internal/api"
	"docme/internal/app"
	"docme/internal/auth"
	"docme/internal/session"
	"docme/internal/tui"
)

const version = "1.0.0"

func main() {
	var configPath string

	root := &cobra.Command{
		Use:     "docme",
		Short:   "DocMe - letter editing and management in your terminal",
		Long:    "DocMe is a terminal client for the DocMe letter service.\n\nWrite and manage rich-text letters, save them to Google Drive, browse your Drive files, and share documents with collaborators.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			log := app.OpenFileLogger()
			store := session.NewStore("")
			return tui.Run(cfg, log, store)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with Google and store the session",
		Long:  "Sign in via the DocMe backend's Google flow (default) or directly against Google with --direct.\n\nYour browser opens for consent; the session is stored for later runs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigChan
				cancel()
			}()

			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			log := app.OpenFileLogger()

			var sess *session.Session
			if direct, _ := cmd.Flags().GetBool("direct"); direct {
				sess, err = auth.GoogleLogin(ctx, cfg)
			} else {
				client := api.NewClient(cfg.APIBaseURL, nil, log)
				sess, err = auth.BackendLogin(ctx, client, cfg.CallbackAddr)
			}
			if err != nil {
				return err
			}

			store := session.NewStore("")
			if err := store.Save(sess); err != nil {
				return err
			}
			who := sess.Who()
			if who == "" {
				who = sess.UserID
			}
			fmt.Printf("Signed in as %s\n", who)
			return nil
		},
	}
	loginCmd.Flags().Bool("direct", false, "sign in directly against Google instead of via the backend")
	root.AddCommand(loginCmd)

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := session.NewStore("")
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
	root.AddCommand(logoutCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
