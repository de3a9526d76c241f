package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"
)

func objectURL(ctx *cli.Context, key string) string {
	return fmt.Sprintf("%s/object/%s", ctx.String("gateway-url"), key)
}

var putCmd = &cli.Command{
	Name:  "put",
	Usage: "Upload a file as an object",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "file-path",
			Required: true,
			Usage:    "Path of the local file to upload",
		},
		&cli.StringFlag{
			Name:     "key",
			Required: true,
			Usage:    "Object key to store the file under",
		},
	},
	Action: func(ctx *cli.Context) error {
		f, err := os.Open(ctx.String("file-path"))
		if err != nil {
			return err
		}
		defer f.Close()

		req, err := http.NewRequest(http.MethodPut, objectURL(ctx, ctx.String("key")), f)
		if err != nil {
			return err
		}

		res, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusCreated {
			return fmt.Errorf("gateway returned %s", res.Status)
		}

		log.Infow("object uploaded", "key", ctx.String("key"), "etag", res.Header.Get("ETag"))
		return nil
	},
}

var getCmd = &cli.Command{
	Name:  "get",
	Usage: "Download an object",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "key",
			Required: true,
			Usage:    "Object key to download",
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "Destination file, defaults to stdout",
		},
	},
	Action: func(ctx *cli.Context) error {
		res, err := http.Get(objectURL(ctx, ctx.String("key")))
		if err != nil {
			return err
		}
		defer res.Body.Close()

		if res.StatusCode == http.StatusNotFound {
			return fmt.Errorf("object %q not found", ctx.String("key"))
		}
		if res.StatusCode != http.StatusOK {
			return fmt.Errorf("gateway returned %s", res.Status)
		}

		out := io.Writer(os.Stdout)
		if outPath := ctx.String("out"); outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		_, err = io.Copy(out, res.Body)
		return err
	},
}

var deleteCmd = &cli.Command{
	Name:  "delete",
	Usage: "Delete an object",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "key",
			Required: true,
			Usage:    "Object key to delete",
		},
	},
	Action: func(ctx *cli.Context) error {
		req, err := http.NewRequest(http.MethodDelete, objectURL(ctx, ctx.String("key")), nil)
		if err != nil {
			return err
		}

		res, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}
		defer res.Body.Close()

		if res.StatusCode == http.StatusNotFound {
			return fmt.Errorf("object %q not found", ctx.String("key"))
		}
		if res.StatusCode != http.StatusOK {
			return fmt.Errorf("gateway returned %s", res.Status)
		}

		log.Infow("object deleted", "key", ctx.String("key"))
		return nil
	},
}

var listCmd = &cli.Command{
	Name:  "list",
	Usage: "List all object keys",
	Action: func(ctx *cli.Context) error {
		res, err := http.Get(fmt.Sprintf("%s/objects", ctx.String("gateway-url")))
		if err != nil {
			return err
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			return fmt.Errorf("gateway returned %s", res.Status)
		}

		var keys []string
		if err := json.NewDecoder(res.Body).Decode(&keys); err != nil {
			return err
		}

		for _, key := range keys {
			fmt.Println(key)
		}

		return nil
	},
}
