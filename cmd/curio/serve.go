package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisAdapter "github.com/aretw0/curio/internal/adapters/redis"
	"github.com/aretw0/curio/internal/config"
	"github.com/aretw0/curio/internal/logging"
	"github.com/aretw0/curio/internal/presentation/tui"
	"github.com/aretw0/curio/pkg/backend"
	"github.com/aretw0/curio/pkg/observability"
	"github.com/aretw0/curio/pkg/ports"
	"github.com/aretw0/curio/pkg/session"

	httpAdapter "github.com/aretw0/curio/internal/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  `Starts the Curio web server: authentication screens and the items CRUD screen.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		addrFlag, _ := cmd.Flags().GetString("addr")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Configuration error: %v\n", err)
			os.Exit(1)
		}
		if addrFlag != "" {
			cfg.Server.Addr = addrFlag
		}

		logger := logging.New(logging.ParseLevel(cfg.Log.Level))

		bridge, err := session.New(backend.Config{URL: cfg.Backend.URL, Key: cfg.Backend.Key},
			session.WithLogger(logger),
			session.WithCookieDefaults(cookieDefaults(cfg.Cookie)),
		)
		if err != nil {
			fmt.Printf("Error initializing session bridge: %v\n", err)
			os.Exit(1)
		}

		var limiter ports.RateLimiter = ports.NopLimiter{}
		if cfg.Redis.Addr != "" {
			rl := redisAdapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
			if err := rl.Ping(cmd.Context()); err != nil {
				fmt.Printf("Error connecting to redis: %v\n", err)
				os.Exit(1)
			}
			limiter = rl
		}

		handler := httpAdapter.NewHandler(bridge,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithLimiter(limiter),
			httpAdapter.WithMetrics(observability.New()),
		)

		srv := &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: handler,
		}

		tui.PrintBanner()

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Curio on %s\n", srv.Addr)
			fmt.Printf("Backend: %s\n", cfg.Backend.URL)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Curio stopped gracefully")
		}
	},
}

func cookieDefaults(c config.Cookie) backend.CookieAttributes {
	attrs := backend.CookieAttributes{
		Path:     c.Path,
		Domain:   c.Domain,
		Secure:   c.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	switch c.SameSite {
	case "strict":
		attrs.SameSite = http.SameSiteStrictMode
	case "none":
		attrs.SameSite = http.SameSiteNoneMode
	}
	return attrs
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Listen address (overrides config)")
}
