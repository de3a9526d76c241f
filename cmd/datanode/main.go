package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pyropy/chunkstore/core/datanode"
	"github.com/pyropy/chunkstore/lib/logger"
)

var log, _ = logger.New("datanode")

func main() {
	if err := run(); err != nil {
		log.Fatalln("startup", "ERROR", err)
	}
}

func run() error {
	cfg, err := datanode.GetConfig()
	if err != nil {
		log.Errorw("startup", "error", "config error")
		return err
	}

	storage, err := datanode.NewChunkStorage(cfg.Storage.Root)
	if err != nil {
		log.Errorw("startup", "error", "failed to init chunk storage", "root", cfg.Storage.Root)
		return err
	}

	api := datanode.NewAPI(storage)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: api.Router(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Infow("startup", "status", "datanode server started", "address", addr, "storageRoot", storage.Root())
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		log.Infow("shutdown", "status", "datanode server stopping", "address", addr)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return server.Shutdown(ctx)
	}
}
