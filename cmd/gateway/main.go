package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pyropy/chunkstore/core/gateway"
	"github.com/pyropy/chunkstore/core/model"
	"github.com/pyropy/chunkstore/core/transport"
	"github.com/pyropy/chunkstore/lib/logger"
)

var log, _ = logger.New("gateway")

func main() {
	if err := run(); err != nil {
		log.Fatalln("startup", "ERROR", err)
	}
}

func run() error {
	cfg, err := gateway.GetConfig()
	if err != nil {
		log.Errorw("startup", "error", "config error")
		return err
	}

	var store gateway.MetadataStore
	if cfg.Store.Path != "" {
		lvlStore, err := gateway.NewLevelDBMetadataStore(cfg.Store.Path)
		if err != nil {
			log.Errorw("startup", "error", "failed to open metadata store", "path", cfg.Store.Path)
			return err
		}
		defer lvlStore.Close()

		store = lvlStore
	} else {
		store = gateway.NewMemoryMetadataStore()
	}

	nodes := make([]model.DataNode, 0, len(cfg.DataNodes.Addrs))
	for _, addr := range cfg.DataNodes.Addrs {
		nodes = append(nodes, model.DataNode{BaseURL: addr})
	}

	gw, err := gateway.NewGateway(nodes, transport.NewClient(), store)
	if err != nil {
		log.Errorw("startup", "error", "failed to build gateway")
		return err
	}

	api := gateway.NewAPI(gw)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: api.Router(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Infow("startup", "status", "gateway server started", "address", addr, "datanodes", cfg.DataNodes.Addrs)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		log.Infow("shutdown", "status", "gateway server stopping", "address", addr)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return server.Shutdown(ctx)
	}
}
