package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sahajm/finledger/internal/events"
	"github.com/sahajm/finledger/internal/events/kafka"
	"github.com/sahajm/finledger/internal/server"
	"github.com/sahajm/finledger/internal/store"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.ListenAddr = serveAddr
		}

		log, err := buildLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer log.Sync()

		st, err := store.Open(cfg.DBPath, log)
		if err != nil {
			return err
		}
		defer st.Close()

		var pub events.Publisher = events.Nop{}
		if cfg.EventsEnabled() {
			kp := kafka.NewPublisher(cfg.Kafka.Brokers, log)
			defer kp.Close()
			pub = kp
			log.Info("event publishing enabled",
				zap.Strings("brokers", cfg.Kafka.Brokers),
				zap.String("topic", cfg.Kafka.Topic))
		}

		srv := server.New(st, cfg.ListenAddr, server.Options{
			Publisher: pub,
			Topic:     cfg.Kafka.Topic,
			Logger:    log,
		})
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :8710)")
	rootCmd.AddCommand(serveCmd)
}
