package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/luma/marbus/internal/gateway"
	"github.com/luma/marbus/nmea"
	"github.com/luma/marbus/storage"
	"github.com/luma/marbus/transport"
)

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the marbus gateway",
	Long: `Run the marbus gateway

Reads the bus, keeps the latest value of every sentence and message kind,
serves NMEA 0183 over TCP and exposes the values over HTTP:

	GET /ping
	GET /snapshot         every value as one JSON document
	GET /snapshot/:key    one value, e.g. /snapshot/nmea.GP.VTG
	GET /ws               live updates over a websocket

Usage
	marbus serve --device /dev/ttyUSB0

`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx, signalStop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer signalStop()

		conf, log, err := setup(ctx, cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		fileLimit, err := setFileLimit()
		if err != nil {
			return err
		}

		log.Info("Set file limit", zap.Uint64("fileLimit", fileLimit))

		store := storage.NewInmemoryStore()
		defer store.Close()

		var recorder *storage.Recorder
		if conf.RecordPath != "" {
			if recorder, err = storage.OpenRecorder(conf.RecordPath); err != nil {
				return err
			}
			defer recorder.Close()
		}

		bus, err := openBus(conf)
		if err != nil {
			return err
		}
		defer bus.Close()

		// Sentences from TCP clients are published like bus traffic, which
		// includes broadcasting them to every client.
		var gw *gateway.Gateway
		tcp := transport.NewTCP(transport.Options{
			Host:      conf.Host,
			Port:      conf.TCPPort,
			Reuseport: true,
			Handler:   nmea.HandlerFunc(func(s nmea.Sentence) { gw.HandleSentence(s) }),
			Log:       log.Named("transport"),
		})

		gwOptions := gateway.Options{
			Store:       store,
			Broadcaster: tcp,
			Log:         log.Named("gateway"),
		}
		if recorder != nil {
			gwOptions.Recorder = recorder
		}
		gw = gateway.New(gwOptions)

		if err := tcp.Start(ctx); err != nil {
			return err
		}

		router := setupRouter(conf.DebugHTTP, log)
		registerRoutes(router, store, log)

		s := &http.Server{
			Addr:    net.JoinHostPort(conf.Host, strconv.Itoa(conf.HTTPPort)),
			Handler: router,
		}

		// Initializing the server in a goroutine so that
		// it won't block the graceful shutdown handling below
		go func() {
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Http server errored", zap.Error(err))
			}
		}()

		busDone := make(chan error, 1)
		go func() {
			busDone <- gw.Run(ctx, conf.Protocol, bus)
		}()

		log.Info("Listening",
			zap.Any("config", conf),
			zap.Stringer("tcp", tcp.Addr()),
			zap.Int("httpPort", conf.HTTPPort))

		select {
		case <-ctx.Done():
		case err := <-busDone:
			if !isEndOfInput(err) {
				log.Error("Bus failed", zap.Error(err))
			} else {
				log.Info("Bus input ended")
			}
		}

		// Restore default behavior on the interrupt signal and notify user of shutdown.
		signalStop()
		log.Info("Shutting down gracefully, press Ctrl+C again to force")

		// The context is used to inform the server it has 5 seconds to finish
		// the request it is currently handling
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.SetKeepAlivesEnabled(false)

		err = multierr.Append(
			s.Shutdown(shutdownCtx),
			tcp.Close(),
		)
		if err != nil {
			log.Error("Forced to shutdown", zap.Error(err))
		}

		log.Info("Exiting")
		return nil
	},
}

func registerRoutes(router *gin.Engine, store storage.Store, log *zap.Logger) {
	// Ping test
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	router.GET("/snapshot", func(c *gin.Context) {
		values, err := store.Backup()
		if err != nil {
			c.AbortWithError(http.StatusInternalServerError, err)
			return
		}

		c.Data(http.StatusOK, "application/json", values)
	})

	router.GET("/snapshot/:key", func(c *gin.Context) {
		value, err := store.Get(c.Request.Context(), []byte(c.Param("key")))
		if err != nil {
			c.AbortWithError(http.StatusInternalServerError, err)
			return
		}

		if value == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no value for " + c.Param("key")})
			return
		}

		c.Data(http.StatusOK, "application/json", value)
	})

	router.GET("/ws", gin.WrapF(transport.WebsocketHandler(store, log.Named("ws"))))
}

func setupRouter(debugHTTP bool, log *zap.Logger) *gin.Engine {
	gin.DisableConsoleColor()
	if !debugHTTP {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Logs all requests, like a combined access and error log, RFC3339 in UTC.
	r.Use(ginzap.GinzapWithConfig(log, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/ping"},
	}))

	// Logs all panic to error log
	//   - stack means whether output the stack info.
	r.Use(ginzap.RecoveryWithZap(log, true))

	return r
}

func setFileLimit() (uint64, error) {
	var rLimit syscall.Rlimit

	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		return 0, err
	}

	rLimit.Cur = rLimit.Max
	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		return 0, err
	}

	return rLimit.Cur, nil
}
