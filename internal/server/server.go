package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rabbitmq/amqp091-go"

	"github.com/lattice-kg/lattice/internal/queue"
	mid "github.com/lattice-kg/lattice/internal/server/middleware"
	"github.com/lattice-kg/lattice/internal/storage"
	"github.com/lattice-kg/lattice/internal/util"
	"github.com/lattice-kg/lattice/pkg/loader"
	loaderio "github.com/lattice-kg/lattice/pkg/loader/io"
	loaders3 "github.com/lattice-kg/lattice/pkg/loader/s3"
	"github.com/lattice-kg/lattice/pkg/logger"
	"github.com/lattice-kg/lattice/pkg/store"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// graphSources assembles the configured graph sources. GRAPH_PATH points at
// a JSON document or a directory of them; GRAPH_S3_PREFIX additionally pulls
// documents from object storage.
func graphSources(ctx context.Context) []loader.GraphSource {
	sources := []loader.GraphSource{}

	if path := util.GetEnv("GRAPH_PATH"); path != "" {
		info, err := os.Stat(path)
		if err != nil {
			logger.Fatal("Failed to stat GRAPH_PATH", "path", path, "err", err)
		}
		if info.IsDir() {
			parallel := int(util.GetEnvNumeric("GRAPH_LOAD_PARALLEL", 4))
			sources = append(sources, loaderio.NewDirGraphSource(path, parallel))
		} else {
			sources = append(sources, loaderio.NewFileGraphSource(util.GetEnv("GRAPH_NAME"), path))
		}
	}

	if prefix := util.GetEnv("GRAPH_S3_PREFIX"); prefix != "" {
		s3Client := storage.NewS3Client(ctx)
		if s3Client == nil {
			logger.Fatal("GRAPH_S3_PREFIX set but S3 client could not be created")
		}
		sources = append(sources, loaders3.NewS3GraphSource(prefix, s3Client))
	}

	if len(sources) == 0 {
		logger.Fatal("No graph sources configured, set GRAPH_PATH or GRAPH_S3_PREFIX")
	}
	return sources
}

func Init() {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	// Auth is optional: without AUTH_URL the API is open.
	var key *keyfunc.Keyfunc
	if authURL := util.GetEnv("AUTH_URL"); authURL != "" {
		k, err := keyfunc.NewDefault([]string{authURL + "/jwks"})
		if err != nil {
			logger.Fatal("Failed to load jwks keys", "err", err)
		}
		key = &k
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := store.NewRegistry(graphSources(ctx)...)
	if err := registry.Reload(ctx); err != nil {
		logger.Fatal("Failed to load graphs", "err", err)
	}
	logger.Info("Graphs loaded", "graphs", registry.Names())

	var ch *amqp091.Channel
	if util.GetEnv("RABBITMQ_HOST") != "" {
		que := queue.Init()
		defer que.Close()

		var err error
		ch, err = que.Channel()
		if err != nil {
			logger.Fatal("Failed to open channel", "err", err)
		}
		if err := queue.SetupExchange(ch); err != nil {
			logger.Fatal("Failed to declare reload exchange", "err", err)
		}

		consumeCh, err := que.Channel()
		if err != nil {
			logger.Fatal("Failed to open consumer channel", "err", err)
		}
		go func() {
			if err := queue.ConsumeReloads(ctx, consumeCh, registry); err != nil && ctx.Err() == nil {
				logger.Error("Reload consumer stopped", "err", err)
			}
		}()
	}

	if util.GetEnvBool("GRAPH_WATCH", false) {
		debounce := time.Duration(util.GetEnvNumeric("GRAPH_WATCH_DEBOUNCE_MS", 500)) * time.Millisecond
		go func() {
			if err := store.Watch(ctx, registry, debounce); err != nil && ctx.Err() == nil {
				logger.Error("Graph watcher stopped", "err", err)
			}
		}()
	}

	masterAPIKey := util.GetEnv("MASTER_API_KEY")

	e.Use(mid.AppContextMiddleware(registry, ch, key, masterAPIKey))
	e.Use(echomw.CORS())
	e.Use(echomw.Recover())
	e.Use(echomw.BodyLimit("16M"))

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
