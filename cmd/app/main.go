package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/ampliar/clinic-data-gateway/internal/adapters/in/http"
	"github.com/ampliar/clinic-data-gateway/internal/adapters/in/rabbitmq"
	"github.com/ampliar/clinic-data-gateway/internal/adapters/out/logger"
	"github.com/ampliar/clinic-data-gateway/internal/adapters/out/remote"
	"github.com/ampliar/clinic-data-gateway/internal/adapters/out/storage"
	"github.com/ampliar/clinic-data-gateway/internal/config"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/out"
	"github.com/ampliar/clinic-data-gateway/internal/core/services"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"remoteUrl":       cfg.Remote.URL,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
	})

	fileStorage, err := storage.NewFileStorage(cfg.Storage.Dir, mainLogger.WithModule("FileStorage"))
	if err != nil {
		log.Error("app.storage.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// The session is built before the remote client because the client
	// reads its bearer token from it.
	authService := services.NewAuthService(fileStorage, mainLogger)
	remoteClient := remote.NewClient(cfg, authService, mainLogger.WithModule("RemoteClient"))
	authService.BindRemote(remoteClient)

	svcs := services.NewServices(services.Deps{
		Remote:  remoteClient,
		Storage: fileStorage,
		Logger:  mainLogger,
		Config:  cfg,
		Auth:    authService,
	})

	router := httpadapter.NewRouter(cfg, svcs)

	if cfg.RabbitMQ.Enabled {
		listener, err := rabbitmq.NewCacheHitListener(svcs.Cache, cfg, mainLogger)
		if err != nil {
			log.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := listener.Start(ctx); err != nil {
			log.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				log.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}
