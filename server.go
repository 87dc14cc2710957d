package postbox

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-postbox/postbox/core"
)

type RuntimeConfig struct {
	Env         string
	EnableCache bool
	Port        int
	ConfigPath  string
}

var Start = func(cfg RuntimeConfig) error {
	fmt.Println("Starting postbox in", cfg.Env, "mode...")

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = "postbox.config.yml"
	}

	config := core.LoadConfig(configPath)
	config.CacheEnabled = cfg.EnableCache
	if cfg.Port != 0 {
		config.Port = cfg.Port
	}

	store, err := core.NewStore(config.StorageDir)
	if err != nil {
		return err
	}

	stats := core.NewStatsTracker()
	feed := core.NewLiveFeed()

	mux := http.NewServeMux()

	cacheStaticDir := filepath.Join(config.OutputDir, "static")
	mux.Handle("/static/", makeStaticHandler(cfg.Env, config.PublicDir, cacheStaticDir))

	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		serveFileWithHeaders(w, r, filepath.Join(config.PublicDir, "favicon.ico"), cacheControl(cfg.Env))
	})

	mux.HandleFunc("/live", feed.Handler)

	router := core.NewRouter(config, core.RuntimeContext{
		Env:   cfg.Env,
		Store: store,
		Stats: stats,
		Feed:  feed,
	})
	mux.Handle("/", router)

	if cfg.Env == "dev" {
		stop, err := core.WatchDirs([]string{config.PublicDir, config.PagesDir}, func(path string) {
			if config.DebugLogs {
				fmt.Println("Changed:", path)
			}
			feed.BroadcastReload()
		})
		if err != nil {
			fmt.Println("Watcher disabled:", err)
		} else {
			defer stop()
		}
	}

	fmt.Printf("✅ postbox running at http://localhost:%d\n", config.Port)
	return http.ListenAndServe(fmt.Sprintf(":%d", config.Port), withStats(stats, config, mux))
}

// withStats times every request the way the demo server reports them on
// /server-stats.
func withStats(stats *core.StatsTracker, config core.Config, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		elapsed := time.Since(start)

		stats.Record(r.Method, r.URL.Path, elapsed)

		if config.DebugLogs {
			fmt.Printf("Request: %s %s\n", r.Method, r.URL.Path)
			fmt.Printf("Response Time: %.2fms\n", float64(elapsed.Microseconds())/1000)
		}
	})
}

func cacheControl(env string) string {
	if env == "dev" {
		return "no-store"
	}
	return "public, max-age=31536000, immutable"
}

func makeStaticHandler(env, publicDir, cacheStaticDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uri := r.URL.Path
		if i := strings.Index(uri, "?"); i != -1 {
			uri = uri[:i]
		}
		trimmed := strings.TrimPrefix(uri, "/static/")

		if strings.Contains(trimmed, "..") {
			http.NotFound(w, r)
			return
		}

		if env == "prod" {
			cachedFile := filepath.Join(cacheStaticDir, trimmed)

			if acceptsGzip(r) {
				gzipFile := cachedFile + ".gz"
				if _, err := os.Stat(gzipFile); err == nil {
					w.Header().Set("Content-Type", core.DetectMimeType(cachedFile))
					w.Header().Set("Content-Encoding", "gzip")
					w.Header().Set("Vary", "Accept-Encoding")
					w.Header().Set("Cache-Control", cacheControl(env))
					http.ServeFile(w, r, gzipFile)
					return
				}
			}

			if _, err := os.Stat(cachedFile); err == nil {
				serveFileWithHeaders(w, r, cachedFile, cacheControl(env))
				return
			}
		}

		publicFile := filepath.Join(publicDir, trimmed)
		if _, err := os.Stat(publicFile); err == nil {
			serveFileWithHeaders(w, r, publicFile, cacheControl(env))
			return
		}

		http.NotFound(w, r)
	})
}

func serveFileWithHeaders(w http.ResponseWriter, r *http.Request, path, cc string) {
	w.Header().Set("Content-Type", core.DetectMimeType(path))
	w.Header().Set("Cache-Control", cc)
	http.ServeFile(w, r, path)
}

func acceptsGzip(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")
}
