package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-postbox/postbox/core"
	"github.com/urfave/cli/v2"
)

var CleanCommand = &cli.Command{
	Name:      "clean",
	Usage:     "Delete stored submissions (default: storageDir in postbox.config.yml)",
	ArgsUsage: "[subdir (optional)]",
	Action: func(c *cli.Context) error {
		config := core.LoadConfig("postbox.config.yml")
		target := config.StorageDir

		if c.Args().Len() > 0 {
			sub := strings.TrimPrefix(c.Args().Get(0), "/")
			target = filepath.Join(config.StorageDir, sub)
		}

		info, err := os.Stat(target)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Println("🧼 Nothing to clean:", target)
				return nil
			}
			return fmt.Errorf("failed to access path: %w", err)
		}

		if !info.IsDir() {
			return fmt.Errorf("not a directory: %s", target)
		}

		fmt.Println("🧹 Cleaning:", target)
		err = os.RemoveAll(target)
		if err != nil {
			return fmt.Errorf("failed to clean storage: %w", err)
		}

		fmt.Println("✅ Done.")
		return nil
	},
}
