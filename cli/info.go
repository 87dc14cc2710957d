package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-postbox/postbox/core"
	"github.com/urfave/cli/v2"
)

var InfoCommand = &cli.Command{
	Name:  "info",
	Usage: "Print configuration and stored submission summary",
	Action: func(c *cli.Context) error {
		config := core.LoadConfig("postbox.config.yml")

		fmt.Println("📁 Storage Directory:", config.StorageDir)
		fmt.Println("📁 Public Directory:", config.PublicDir)
		fmt.Println("📁 Pages Directory:", config.PagesDir)
		fmt.Println("🔁 Page Cache Enabled:", config.CacheEnabled)
		fmt.Println("🔁 Debug Headers Enabled:", config.DebugHeaders)
		fmt.Println()

		pageCount := 0
		filepath.Walk(config.PagesDir, func(path string, info os.FileInfo, err error) error {
			if err == nil && !info.IsDir() && strings.HasSuffix(path, ".html") {
				pageCount++
			}
			return nil
		})

		formCount := 0
		rawCount := 0
		if _, err := os.Stat(config.StorageDir); err == nil {
			if store, err := core.NewStore(config.StorageDir); err == nil {
				formCount = store.FormCount()
				rawCount = store.RawCount()
			}
		}

		fmt.Println("🗂️  Pages Found:", pageCount)
		fmt.Println("📨 Form Submissions:", formCount)
		fmt.Println("📄 Raw Submissions:", rawCount)

		return nil
	},
}
