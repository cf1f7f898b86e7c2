package cmd

import (
	"errors"
	"net/http"
	"time"

	"github.com/jsphweid/melodygen/constants"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var addr string

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default $MELODY_ADDR or :8080)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the studio page",
	Long:  `Serves the single page studio: pick a song, generate, look, listen, download.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func NewHandler(log *zap.Logger) (http.Handler, error) {
	st, _, err := newStudio(log)
	if err != nil {
		return nil, err
	}
	return cors.Default().Handler(st.NewRouter()), nil
}

func serve() error {
	log := newLogger()
	defer log.Sync()

	handler, err := NewHandler(log)
	if err != nil {
		return err
	}

	listenAddr := addr
	if listenAddr == "" {
		listenAddr = constants.GetAddr()
	}
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Info("serving", zap.String("addr", listenAddr))
	if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
