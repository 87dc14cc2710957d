package cli

import (
	"fmt"
	"os"

	"github.com/go-postbox/postbox/client"

	"github.com/urfave/cli/v2"
)

var endpointFlag = &cli.StringFlag{
	Name:  "endpoint",
	Usage: "Server endpoint to submit to",
	Value: client.DefaultEndpoint,
}

var GetCommand = &cli.Command{
	Name:      "get",
	Usage:     "Fetch a URL and print the response (use --preview to view HTML locally)",
	ArgsUsage: "URL",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "preview",
			Usage: "Re-serve a fetched HTML page at http://localhost:8000",
		},
		&cli.StringFlag{
			Name:  "preview-addr",
			Usage: "Address for the preview server",
			Value: client.DefaultPreviewAddr,
		},
	},
	Action: func(c *cli.Context) error {
		if c.Args().Len() < 1 {
			return cli.Exit("usage: postbox get URL", 1)
		}

		target, err := client.ParseTarget(c.Args().Get(0))
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		fmt.Println("Parsed URL information:")
		fmt.Println("Hostname:", target.Hostname)
		fmt.Println("Port:", target.Port)
		fmt.Println("Path:", "/"+target.Path)
		fmt.Println()

		cl := client.New("", client.TerminalPanel{})
		result, err := cl.Fetch(c.Context, c.Args().Get(0))
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		if c.Bool("preview") && result.Status == 200 && result.IsHTML() {
			fmt.Println("Received HTML content. Press Ctrl+C to exit...")
			return client.NewPreview(result.Body).Serve(c.Context, c.String("preview-addr"))
		}

		fmt.Printf("Status: %d\n", result.Status)
		fmt.Println(result.Body)
		return nil
	},
}

var PostCommand = &cli.Command{
	Name:  "post",
	Usage: "Send a POST submission (structured form fields or raw text)",
	Flags: []cli.Flag{
		endpointFlag,
		&cli.StringFlag{
			Name:  "name",
			Usage: "Name field for a structured submission",
		},
		&cli.StringFlag{
			Name:  "email",
			Usage: "Email field for a structured submission",
		},
		&cli.StringFlag{
			Name:  "data",
			Usage: "Pre-encoded form body, e.g. \"key=val&key2=val2\"",
		},
		&cli.StringFlag{
			Name:  "raw",
			Usage: "Raw text body, sent as text/plain",
		},
	},
	Action: func(c *cli.Context) error {
		cl := client.New(c.String("endpoint"), client.TerminalPanel{})

		var result client.Result
		var err error

		switch {
		case c.IsSet("raw"):
			result, err = cl.SubmitRaw(c.Context, c.String("raw"))
		case c.IsSet("data"):
			result, err = cl.SubmitData(c.Context, c.String("data"))
		case c.IsSet("name") || c.IsSet("email"):
			result, err = cl.SubmitForm(c.Context, c.String("name"), c.String("email"))
		default:
			return cli.Exit("provide --name and --email, --data, or --raw", 1)
		}

		if err != nil {
			return cli.Exit("", 1)
		}
		if !result.OK {
			return cli.Exit("", 1)
		}
		return nil
	},
}

var PutCommand = &cli.Command{
	Name:      "put",
	Usage:     "Upload a file (or --body text) to a URL",
	ArgsUsage: "URL [FILE]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "body",
			Usage: "Literal body to upload instead of a file",
		},
	},
	Action: func(c *cli.Context) error {
		if c.Args().Len() < 1 {
			return cli.Exit("usage: postbox put URL [FILE]", 1)
		}

		body := c.String("body")
		if body == "" {
			if c.Args().Len() < 2 {
				return cli.Exit("provide a FILE argument or --body", 1)
			}
			data, err := os.ReadFile(c.Args().Get(1))
			if err != nil {
				return cli.Exit(fmt.Sprintf("failed to read file: %v", err), 1)
			}
			body = string(data)
		}

		cl := client.New("", client.TerminalPanel{})
		status, err := cl.Put(c.Context, c.Args().Get(0), body)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		fmt.Println("Status:", status)
		if status < 200 || status >= 300 {
			return cli.Exit("", 1)
		}
		return nil
	},
}
