package cli

import (
	"github.com/go-postbox/postbox"

	"github.com/urfave/cli/v2"
)

var portFlag = &cli.IntFlag{
	Name:  "port",
	Usage: "Override the configured listen port",
}

var DevCommand = &cli.Command{
	Name:  "dev",
	Usage: "Start the demo server in dev mode (no caching, live reload)",
	Flags: []cli.Flag{portFlag},
	Action: func(c *cli.Context) error {
		cfg := postbox.RuntimeConfig{
			Env:         "dev",
			EnableCache: false,
			Port:        c.Int("port"),
		}
		return postbox.Start(cfg)
	},
}

var ProdCommand = &cli.Command{
	Name:  "prod",
	Usage: "Start the demo server in production mode (caching on by default)",
	Flags: []cli.Flag{portFlag},
	Action: func(c *cli.Context) error {
		cfg := postbox.RuntimeConfig{
			Env:         "prod",
			EnableCache: true,
			Port:        c.Int("port"),
		}
		return postbox.Start(cfg)
	},
}
