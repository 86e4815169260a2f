package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/xyx050/sketchbin/config"
	"github.com/xyx050/sketchbin/dataset"
	"github.com/xyx050/sketchbin/log"
	"github.com/xyx050/sketchbin/shell"
	"github.com/xyx050/sketchbin/version"
)

func main() {
	configFile := flag.String("c", "", "config file for batch conversion")
	convert := flag.Bool("convert", false, "run the batch dataset builder and exit")
	serveAddr := flag.String("serve", "", "run the preview HTTP API on the given address")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Version)
		return
	}

	if *serveAddr != "" {
		server := NewApiServer()
		if err := server.Serve(*serveAddr); err != nil {
			log.Error.Fatal(err)
		}
		return
	}

	if *convert {
		cfg := config.Default()
		if *configFile != "" {
			var err error
			cfg, err = config.Load(*configFile)
			if err != nil {
				log.Error.Fatal(err)
			}
		}

		builder := dataset.NewBuilder(cfg)
		result, err := builder.Run(context.Background())
		if err != nil {
			log.Error.Fatal(err)
		}

		log.Info.Printf("rendered %d drawings from %d files (%d failed)",
			result.Rendered, len(result.Files), result.Failed)
		for _, fr := range result.Files {
			if fr.Err != nil {
				log.Warning.Printf("%s: %v", fr.File, fr.Err)
			}
		}
		if result.Failed > 0 {
			os.Exit(1)
		}
		return
	}

	if err := shell.RunShell(); err != nil {
		log.Error.Fatal(err)
	}
}
