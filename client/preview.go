package client

import (
	"context"
	"fmt"
	"net"
	"net/http"
)

const DefaultPreviewAddr = "localhost:8000"

// Preview re-serves a fetched HTML document on a local port so it can be
// viewed in a browser. Every request gets the same stored content.
type Preview struct {
	content []byte
	server  *http.Server
}

func NewPreview(content string) *Preview {
	return &Preview{content: []byte(content)}
}

func (p *Preview) Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.Header().Set("Content-Length", fmt.Sprint(len(p.content)))
	w.Write(p.content)
}

// Serve blocks until the context is cancelled or the listener fails.
func (p *Preview) Serve(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultPreviewAddr
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("preview server failed to listen: %w", err)
	}

	p.server = &http.Server{Handler: http.HandlerFunc(p.Handler)}

	fmt.Printf("Local server started at http://%s\n", addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- p.server.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		p.server.Close()
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
