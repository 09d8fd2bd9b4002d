package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/ancientlore/cachefs"
	"github.com/facebookgo/flagenv"
	"github.com/golang/groupcache"

	"github.com/murmurkit/murmur/site"
	"github.com/murmurkit/murmur/web"
)

// main is where it all begins. 😀
func main() {
	// Setup flags
	var (
		fPort              = flag.Int("port", 8080, "Port to listen on.")
		fReadTimeout       = flag.Duration("readtimeout", 10*time.Second, "HTTP server read timeout.")
		fReadHeaderTimeout = flag.Duration("readheadertimeout", 5*time.Second, "HTTP server read header timeout.")
		fWriteTimeout      = flag.Duration("writetimeout", 30*time.Second, "HTTP server write timeout.")
		fRoot              = flag.String("root", ".", "Root folder of the site.")
		fCacheSize         = flag.Int64("cachesize", 10*1024*1024, "Size of the page cache in bytes.")
		fCacheDuration     = flag.Duration("cacheduration", 10*time.Second, "Expiration of cached pages.")
		fSelf              = flag.String("self", "", "Base URL of this instance in the cache peer pool.")
		fPeers             = flag.String("peers", "", "Comma-separated base URLs of cache peers.")
	)
	flag.Parse()
	flagenv.Parse()

	// Setup groupcache, standalone unless peers are configured
	if *fSelf != "" {
		pool := groupcache.NewHTTPPool(*fSelf)
		if *fPeers != "" {
			pool.Set(strings.Split(*fPeers, ",")...)
		}
	} else {
		groupcache.RegisterPeerPicker(func() groupcache.PeerPicker { return groupcache.NoPeers{} })
	}

	// Create the site file system
	siteFS, err := site.New(os.DirFS(*fRoot))
	if err != nil {
		log.Printf("Cannot load site from %q: %s", *fRoot, err)
		os.Exit(1)
	}
	log.Printf("Loaded site from %q with %d projects", *fRoot, len(siteFS.Projects()))

	// Report content problems at startup; a preview server keeps serving
	if err := siteFS.Validate(); err != nil {
		log.Printf("Content validation:\n%s", err)
	}

	// Wrap the site in a read cache
	cachedFS := cachefs.New(siteFS, &cachefs.Config{
		GroupName:   "murmur",
		SizeInBytes: *fCacheSize,
		Duration:    *fCacheDuration,
	})

	cfg := siteFS.Config()

	// Setup handlers
	handler := web.HeaderHandler(
		web.ExpiresHandler(
			gziphandler.GzipHandler(
				web.ErrorHandler(
					http.FileServer(
						http.FS(cachedFS),
					),
					cachedFS,
				),
			),
			time.Duration(cfg.Expires),
			time.Duration(cfg.StaticExpires),
		),
		cfg.Headers)
	log.Print("Created handlers")

	// Create HTTP server
	var srv = http.Server{
		Addr:              fmt.Sprintf(":%d", *fPort),
		Handler:           handler,
		ReadTimeout:       *fReadTimeout,
		WriteTimeout:      *fWriteTimeout,
		ReadHeaderTimeout: *fReadHeaderTimeout,
	}

	// Create signal handler for graceful shutdown
	go func() {
		sigint := make(chan os.Signal, 1)

		// interrupt signal sent from terminal
		signal.Notify(sigint, os.Interrupt)
		// sigterm signal sent from kubernetes
		signal.Notify(sigint, syscall.SIGTERM)

		<-sigint

		// We received an interrupt signal, shut down.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			// Error from closing listeners, or context timeout:
			log.Printf("HTTP server Shutdown: %v", err)
		}
	}()

	// Listen for requests
	log.Print("Listening for requests")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Printf("HTTP server: %v", err)
	} else {
		log.Print("Goodbye.")
	}
}
