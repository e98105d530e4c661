package cli

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cinelist/api"
	"cinelist/internal/server"
)

func newServeCommand(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.settings
			if cmd.Flags().Changed("port") {
				s.Server.Port = port
				if err := s.Validate(); err != nil {
					return err
				}
			}
			proxies, err := api.ParseTrustedProxies(s.Server.TrustedProxies)
			if err != nil {
				return err
			}
			svc, err := a.newService(s)
			if err != nil {
				return err
			}
			defer func() {
				if err := svc.Close(); err != nil {
					log.Printf("[server] WARN: close response cache: %v", err)
				}
			}()
			if s.TMDB.APIKey == "" {
				log.Printf("[server] WARN: no TMDB API key configured; catalog routes will return 503")
			}

			warmer, err := newWarmer(svc, s.Cache.WarmInterval)
			if err != nil {
				return err
			}

			srv := server.New(server.Options{
				Host:              s.Server.Host,
				Port:              s.Server.Port,
				AllowedOrigins:    s.Server.AllowedOrigins,
				InboundLimit:      s.Server.InboundLimit,
				SettingsPerMinute: s.Server.SettingsPerMinute,
				Scheduler:         warmer,
				LogFile:           s.Log.File,
				TrustedProxies:    proxies,
			}, svc)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if warmer != nil && s.TMDB.APIKey != "" {
				if err := warmer.Start(ctx); err != nil {
					return err
				}
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), s.Server.ShutdownTimeout)
			defer cancel()
			if warmer != nil {
				warmer.Stop(shutdownCtx)
			}
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			log.Printf("[server] stopped")
			return <-errCh
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides server.port)")
	return cmd
}
