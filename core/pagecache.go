package core

import (
	"compress/gzip"
	"os"
	"path/filepath"
)

// GetCachedPage returns a previously rendered page from the output directory.
func GetCachedPage(config Config, page string) ([]byte, bool) {
	cachePath := filepath.Join(config.OutputDir, page, "index.html")

	if _, err := os.Stat(cachePath); err != nil {
		return nil, false
	}

	content, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, false
	}

	return content, true
}

// SaveCachedPage stores rendered page HTML, plus a gzip copy for clients that
// accept it.
func SaveCachedPage(config Config, page string, html []byte) error {
	outDir := filepath.Join(config.OutputDir, page)
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return err
	}

	htmlPath := filepath.Join(outDir, "index.html")
	if err := os.WriteFile(htmlPath, html, 0644); err != nil {
		return err
	}

	f, err := os.Create(htmlPath + ".gz")
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	defer gz.Close()

	_, err = gz.Write(html)
	return err
}
