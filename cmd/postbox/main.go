package main

import (
	"log"
	"os"

	postboxcli "github.com/go-postbox/postbox/cli"

	"github.com/joho/godotenv"
	clilib "github.com/urfave/cli/v2"
)

func runApp(args []string) error {
	app := &clilib.App{
		Name:  "postbox",
		Usage: "A demo HTTP POST server and client",
		Commands: []*clilib.Command{
			postboxcli.DevCommand,
			postboxcli.ProdCommand,
			postboxcli.GetCommand,
			postboxcli.PostCommand,
			postboxcli.PutCommand,
			postboxcli.InitCommand,
			postboxcli.CleanCommand,
			postboxcli.CheckCommand,
			postboxcli.InfoCommand,
		},
	}

	return app.Run(args)
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Println("Error loading .env file")
	}

	if err := runApp(os.Args); err != nil {
		log.Fatal(err)
	}
}
