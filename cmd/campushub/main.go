// The campushub command runs the shared room state server: websocket presence
// and chat for every connected campus client.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"birdieu.dev/campus/hub"
	"birdieu.dev/campus/logging"
)

func main() {
	var (
		addr    = flag.String("addr", ":8080", "listen address, e.g. :8080")
		logFile = flag.String("log", "", "log file path (empty logs to stderr)")
		debug   = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	log := logging.New(logging.Options{FilePath: *logFile, Debug: *debug})
	defer log.Sync()

	h := hub.New(log)
	srv := &http.Server{Addr: *addr, Handler: h.Handler()}

	go func() {
		log.Info("campus hub listening", zap.String("addr", *addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
