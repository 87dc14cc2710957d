package core

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/segmentio/encoding/json"
)

type RuntimeContext struct {
	Env       string
	Store     *Store
	Stats     *StatsTracker
	Feed      LiveFeedInterface
	FilesRoot string
}

// Router owns everything behind "/": the demo and stats pages, submission
// intake, file upload/delete, and the stats endpoint.
type Router struct {
	config    Config
	env       string
	store     *Store
	stats     *StatsTracker
	feed      LiveFeedInterface
	filesRoot string
}

func NewRouter(config Config, ctx RuntimeContext) *Router {
	root := ctx.FilesRoot
	if root == "" {
		root = "."
	}
	return &Router{
		config:    config,
		env:       ctx.Env,
		store:     ctx.Store,
		stats:     ctx.Stats,
		feed:      ctx.Feed,
		filesRoot: root,
	}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	writeCORSHeaders(w)

	path := strings.Trim(req.URL.Path, "/")

	if path == "server-stats" {
		r.serveStats(w)
		return
	}

	switch req.Method {
	case http.MethodOptions:
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		r.handleGet(w, req, path)
	case http.MethodPost:
		r.handlePost(w, req)
	case http.MethodPut:
		r.handlePut(w, req, path)
	case http.MethodDelete:
		r.handleDelete(w, path)
	default:
		http.Error(w, "Method not supported", http.StatusMethodNotAllowed)
	}
}

func writeCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func (r *Router) serveStats(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")

	snap, ok := r.stats.Snapshot()
	if !ok {
		json.NewEncoder(w).Encode("No requests processed yet.")
		return
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(snap)
}

func (r *Router) handleGet(w http.ResponseWriter, req *http.Request, path string) {
	switch path {
	case "", "index.html":
		r.servePage(w, req, "index")
	case "stats":
		r.servePage(w, req, "stats")
	default:
		r.serveFile(w, path)
	}
}

func (r *Router) servePage(w http.ResponseWriter, req *http.Request, page string) {
	if r.env == "prod" && r.config.CacheEnabled {
		if cached, ok := GetCachedPage(r.config, page); ok {
			r.writePage(w, page, cached)
			return
		}
	}

	htmlPath := filepath.Join(r.config.PagesDir, page+".html")
	if _, err := os.Stat(htmlPath); err != nil {
		http.NotFound(w, req)
		return
	}

	funcs := PostboxTemplateFuncs(r.env, r.config.PublicDir, r.config.OutputDir)
	tmpl, err := template.New(page + ".html").Funcs(funcs).ParseFiles(htmlPath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Env":  r.env,
		"Port": r.config.Port,
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	html := []byte(buf.String())

	if r.env == "prod" && r.config.CacheEnabled {
		SaveCachedPage(r.config, page, html)
	}

	r.writePage(w, page, html)
}

func (r *Router) writePage(w http.ResponseWriter, page string, html []byte) {
	if r.config.DebugHeaders {
		w.Header().Set("X-Postbox-Page", page)
	}
	w.Header().Set("Content-Type", "text/html")
	w.Write(html)
}

func (r *Router) serveFile(w http.ResponseWriter, path string) {
	content, info, err := r.readLocalFile(path)
	if err != nil {
		if IsNotFoundError(err) {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrForbiddenPath) {
			http.Error(w, "Invalid file path", http.StatusForbidden)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", DetectMimeType(info.Name()))
	w.Header().Set("Content-Length", fmt.Sprint(len(content)))
	w.Header().Set("Last-Modified", info.ModTime().UTC().Format(http.TimeFormat))
	w.Write(content)
}

func (r *Router) readLocalFile(path string) ([]byte, os.FileInfo, error) {
	safe, err := safeLocalPath(path)
	if err != nil {
		return nil, nil, err
	}

	full := filepath.Join(r.filesRoot, safe)
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return nil, nil, ErrNotFound
	}

	content, err := os.ReadFile(full)
	if err != nil {
		return nil, nil, err
	}

	return content, info, nil
}

func (r *Router) handlePost(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(w, "Error reading request body: "+err.Error(), http.StatusInternalServerError)
		return
	}

	contentType := req.Header.Get("Content-Type")
	if i := strings.Index(contentType, ";"); i != -1 {
		contentType = contentType[:i]
	}
	contentType = strings.TrimSpace(contentType)

	if contentType == "application/x-www-form-urlencoded" {
		r.storeFormBody(w, string(body))
		return
	}

	r.storeRawBody(w, string(body))
}

func (r *Router) storeFormBody(w http.ResponseWriter, body string) {
	values, err := url.ParseQuery(body)
	if err != nil {
		http.Error(w, "Error parsing POST data: "+err.Error(), http.StatusInternalServerError)
		return
	}

	fields := map[string]string{}
	for key := range values {
		fields[key] = values.Get(key)
	}

	entry, err := r.store.SaveForm(fields)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.feed != nil {
		r.feed.BroadcastSubmission("form", fmt.Sprintf("entry %d", entry))
	}

	msg := fmt.Sprintf(
		"Form data stored successfully!\nEntry number: %d\nStored in: %s",
		entry, r.store.FormFilePath(),
	)
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(msg))
}

func (r *Router) storeRawBody(w http.ResponseWriter, body string) {
	name, err := r.store.SaveRaw(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.feed != nil {
		r.feed.BroadcastSubmission("raw", name)
	}

	msg := fmt.Sprintf(
		"Raw data stored successfully!\nStored in: %s",
		filepath.Join(r.store.RawDirPath(), name),
	)
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(msg))
}

func (r *Router) handlePut(w http.ResponseWriter, req *http.Request, path string) {
	if path == "" {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	safe, err := safeLocalPath(path)
	if err != nil {
		http.Error(w, "Invalid file path", http.StatusForbidden)
		return
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(w, "Error reading request body: "+err.Error(), http.StatusInternalServerError)
		return
	}

	full := filepath.Join(r.filesRoot, safe)
	if dir := filepath.Dir(full); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			http.Error(w, "File error: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	if err := os.WriteFile(full, body, 0644); err != nil {
		if os.IsPermission(err) {
			http.Error(w, "Permission denied", http.StatusForbidden)
			return
		}
		http.Error(w, "File error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusCreated)
}

func (r *Router) handleDelete(w http.ResponseWriter, path string) {
	safe, err := safeLocalPath(path)
	if err != nil {
		http.Error(w, "Invalid file path", http.StatusForbidden)
		return
	}

	full := filepath.Join(r.filesRoot, safe)
	if _, err := os.Stat(full); err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	if err := os.Remove(full); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
}

// safeLocalPath cleans a request path and rejects anything that would escape
// the served directory.
func safeLocalPath(path string) (string, error) {
	cleaned := filepath.Clean(strings.TrimPrefix(path, "/"))

	if cleaned == "." || cleaned == ".." ||
		strings.HasPrefix(cleaned, "../") || filepath.IsAbs(cleaned) {
		return "", ErrForbiddenPath
	}

	return cleaned, nil
}
