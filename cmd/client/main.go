package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pyropy/chunkstore/lib/logger"
)

var log, _ = logger.New("client")

func main() {
	app := &cli.App{
		Name:  "chunkstore",
		Usage: "Store and fetch objects through a chunkstore gateway",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "gateway-url",
				Value: "http://127.0.0.1:8000",
				Usage: "Base URL of the gateway",
			},
		},
		Commands: []*cli.Command{
			putCmd,
			getCmd,
			deleteCmd,
			listCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalln(err)
	}
}
