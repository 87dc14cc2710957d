package cli

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-postbox/postbox/core"
	"github.com/urfave/cli/v2"
)

var CheckCommand = &cli.Command{
	Name:  "check",
	Usage: "Validate that all page templates parse and execute",
	Action: func(c *cli.Context) error {
		config := core.LoadConfig("postbox.config.yml")

		var failed bool
		found := 0

		filepath.Walk(config.PagesDir, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() || !strings.HasSuffix(path, ".html") {
				return nil
			}

			found++
			name := filepath.Base(path)

			funcs := core.PostboxTemplateFuncs("dev", config.PublicDir, config.OutputDir)
			tmpl, err := template.New(name).Funcs(funcs).ParseFiles(path)
			if err != nil {
				failed = true
				fmt.Printf("❌ %s → parse error: %v\n", name, err)
				return nil
			}

			data := map[string]interface{}{
				"Env":  "dev",
				"Port": config.Port,
			}

			var buf bytes.Buffer
			if err := tmpl.Execute(&buf, data); err != nil {
				failed = true
				fmt.Printf("❌ %s → exec error: %v\n", name, err)
			} else {
				fmt.Printf("✅ %s\n", name)
			}

			return nil
		})

		if found == 0 {
			fmt.Println("🧼 No pages found in", config.PagesDir)
			return nil
		}

		if failed {
			return cli.Exit("some templates failed to compile", 1)
		}

		fmt.Println("✅ All templates validated successfully.")
		return nil
	},
}
