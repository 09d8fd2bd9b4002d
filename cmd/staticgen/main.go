// staticgen builds the published site into a static output folder.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/facebookgo/flagenv"

	"github.com/murmurkit/murmur/publish"
	"github.com/murmurkit/murmur/site"
)

func main() {
	var (
		fFolder   = flag.String("folder", ".", "Root folder of the site.")
		fOut      = flag.String("out", "public", "Output folder for the static build.")
		fBaseURL  = flag.String("baseurl", "", "Override the configured base URL for sitemap and feed links.")
		fValidate = flag.Bool("validate", false, "Validate the content and exit without building.")
		fWatch    = flag.Bool("watch", false, "Rebuild whenever the site folder changes.")
		fDebounce = flag.Duration("debounce", 500*time.Millisecond, "How long changes must settle before a rebuild.")
	)
	flag.Parse()
	flagenv.Parse()

	// When the output folder sits inside the site folder, keep it out
	// of the build walk.
	var skip []string
	if rel, err := filepath.Rel(*fFolder, *fOut); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
		skip = append(skip, filepath.ToSlash(rel))
	}

	build := func() error {
		siteFS, err := site.New(os.DirFS(*fFolder))
		if err != nil {
			return err
		}
		if *fBaseURL != "" {
			siteFS.Config().BaseURL = *fBaseURL
		}
		if err := siteFS.Validate(); err != nil {
			return err
		}
		if *fValidate {
			return nil
		}
		return publish.Build(siteFS, *fOut, skip...)
	}

	if err := build(); err != nil {
		log.Printf("Build failed: %s", err)
		os.Exit(1)
	}
	if *fValidate {
		log.Print("Content OK")
		return
	}

	if *fWatch {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		log.Printf("Watching %q", *fFolder)
		err := publish.Watch(ctx, *fFolder, *fOut, *fDebounce, build)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Fatal(err)
		}
		log.Print("Goodbye.")
	}
}
