package core

import (
	"bytes"
	"compress/gzip"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/sprig/v3"
	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	minjs "github.com/tdewolff/minify/v2/js"
)

// DetectMimeType maps a file extension to the Content-Type the server should
// send. Unknown extensions fall back to application/octet-stream.
func DetectMimeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return "text/html"
	case ".txt":
		return "text/plain"
	case ".css":
		return "text/css"
	case ".js":
		return "application/javascript"
	case ".json":
		return "application/json"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".woff":
		return "font/woff"
	case ".woff2":
		return "font/woff2"
	default:
		return "application/octet-stream"
	}
}

// MinifyAsset minifies a css/js file from publicDir into cacheDir and returns
// the rewritten, content-hashed static path. In dev mode the original path is
// returned untouched.
func MinifyAsset(env, path, publicDir, cacheDir string) string {
	if env != "prod" {
		return path
	}

	ext := filepath.Ext(path)
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, ext)

	if ext != ".css" && ext != ".js" {
		return path
	}

	if strings.Contains(name, ".min") {
		return path
	}

	publicPath := strings.TrimPrefix(path, "/static/")
	src := filepath.Join(publicDir, publicPath)
	min := filepath.Join(cacheDir, "static", fmt.Sprintf("%s.min%s", name, ext))
	minGz := min + ".gz"

	original, err := os.ReadFile(src)
	if err != nil {
		return path
	}

	m := minify.New()
	m.AddFunc("text/css", mincss.Minify)
	m.AddFunc("application/javascript", minjs.Minify)

	var buf bytes.Buffer
	var minifyErr error

	switch ext {
	case ".css":
		minifyErr = m.Minify("text/css", &buf, bytes.NewReader(original))
	case ".js":
		minifyErr = m.Minify("application/javascript", &buf, bytes.NewReader(original))
	}

	if minifyErr != nil {
		return path
	}

	minified := buf.Bytes()

	if err := os.MkdirAll(filepath.Dir(min), os.ModePerm); err != nil {
		return path
	}

	if err := os.WriteFile(min, minified, 0644); err != nil {
		return path
	}

	if f, err := os.Create(minGz); err == nil {
		gz := gzip.NewWriter(f)
		if _, err := gz.Write(minified); err == nil {
			_ = gz.Close()
		}
		f.Close()
	}

	return fmt.Sprintf("/static/%s.min%s?v=%s", name, ext, shortHash(minified))
}

func shortHash(content []byte) string {
	h := md5.New()
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))[:6]
}

// PostboxTemplateFuncs is the func map pages are rendered with: the full sprig
// set plus asset helpers.
func PostboxTemplateFuncs(env, publicDir, cacheDir string) template.FuncMap {
	funcs := sprig.HtmlFuncMap()

	funcs["minify"] = func(path string) string {
		return MinifyAsset(env, path, publicDir, cacheDir)
	}

	funcs["safeHTML"] = func(s interface{}) template.HTML {
		switch val := s.(type) {
		case template.HTML:
			return val
		case string:
			return template.HTML(val)
		default:
			return ""
		}
	}

	funcs["versioned"] = func(path string) string {
		if !strings.HasPrefix(path, "/static/") {
			return path
		}

		rel := strings.TrimPrefix(path, "/static/")
		locations := []string{
			filepath.Join(publicDir, rel),
			filepath.Join(cacheDir, "static", rel),
		}

		for _, file := range locations {
			if content, err := os.ReadFile(file); err == nil {
				return fmt.Sprintf("/static/%s?v=%s", rel, shortHash(content))
			}
		}

		return path
	}

	return funcs
}
