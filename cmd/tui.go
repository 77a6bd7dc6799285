package cmd

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sahajm/finledger/internal/client"
	"github.com/sahajm/finledger/internal/server"
	"github.com/sahajm/finledger/internal/store"
	"github.com/sahajm/finledger/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		serverAddr := cfg.ServerURL

		if !cmd.Flags().Changed("server") {
			// Start embedded server in background
			st, err := store.Open(cfg.DBPath, zap.NewNop())
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer st.Close()

			const embeddedAddr = "127.0.0.1:8710"
			srv := server.New(st, embeddedAddr, server.Options{})
			go func() {
				_ = srv.ListenAndServe()
			}()
			serverAddr = "http://" + embeddedAddr

			// Wait for server to be ready
			c := client.New(serverAddr)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			for {
				if err := c.Ping(ctx); err == nil {
					break
				}
				if ctx.Err() != nil {
					return fmt.Errorf("timeout waiting for embedded server")
				}
				time.Sleep(50 * time.Millisecond)
			}
		}

		c := client.New(serverAddr)
		app := tui.NewApp(c)
		p := tea.NewProgram(app, tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
