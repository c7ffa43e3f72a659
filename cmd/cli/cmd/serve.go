package cmd

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"freight-netback/api"
	"freight-netback/internal/config"
	"freight-netback/internal/logging"
)

// DefaultSessionID names the session preloaded from --data
const DefaultSessionID = "default"

var serveAddr string

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the rate lookup API over HTTP",
	Long: `Serve the HTTP API. Rate tables are uploaded to POST /sessions; when
--data or dataset.path is set, that table is preloaded as session "default".`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from server.addr)")
}

// newAPIServer builds the API server from configuration and preloads the
// configured table
func newAPIServer(ctx context.Context, cfg *config.Config) (*api.Server, error) {
	sessOpts, err := sessionOptions(cfg)
	if err != nil {
		return nil, err
	}

	srv := api.NewServer(api.Options{
		Version:        Version,
		MaxUploadBytes: cfg.Server.MaxUploadBytes(),
		MaxSessions:    cfg.Server.MaxSessions,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Session:        sessOpts,
	})

	if datasetPath(cfg) != "" {
		sess, err := openSession(ctx, cfg, DefaultSessionID)
		if err != nil {
			return nil, err
		}
		srv.AddSession(sess)
	}
	return srv, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	log := logging.Named("serve")

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := newAPIServer(ctx, cfg)
	if err != nil {
		return err
	}
	httpServer := srv.HTTPServer(addr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", addr), zap.String("version", Version))
		if err := httpServer.ListenAndServe(); !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownDuration())
		defer cancel()
		log.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	logging.Sync()
	return err
}
