package main

import (
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"

	postboxcli "github.com/go-postbox/postbox/cli"
	"github.com/urfave/cli/v2"
)

func dummyCmd(name string) *cli.Command {
	return &cli.Command{
		Name: name,
		Action: func(c *cli.Context) error {
			return nil
		},
	}
}

func failingCmd(name string) *cli.Command {
	return &cli.Command{
		Name: name,
		Action: func(c *cli.Context) error {
			return errors.New("intentional failure")
		},
	}
}

func swapCommands(t *testing.T, build func(string) *cli.Command) {
	t.Helper()

	orig := []*cli.Command{
		postboxcli.DevCommand, postboxcli.ProdCommand, postboxcli.GetCommand,
		postboxcli.PostCommand, postboxcli.PutCommand, postboxcli.InitCommand,
		postboxcli.CleanCommand, postboxcli.CheckCommand, postboxcli.InfoCommand,
	}
	t.Cleanup(func() {
		postboxcli.DevCommand = orig[0]
		postboxcli.ProdCommand = orig[1]
		postboxcli.GetCommand = orig[2]
		postboxcli.PostCommand = orig[3]
		postboxcli.PutCommand = orig[4]
		postboxcli.InitCommand = orig[5]
		postboxcli.CleanCommand = orig[6]
		postboxcli.CheckCommand = orig[7]
		postboxcli.InfoCommand = orig[8]
	})

	postboxcli.DevCommand = build("dev")
	postboxcli.ProdCommand = build("prod")
	postboxcli.GetCommand = build("get")
	postboxcli.PostCommand = build("post")
	postboxcli.PutCommand = build("put")
	postboxcli.InitCommand = build("init")
	postboxcli.CleanCommand = build("clean")
	postboxcli.CheckCommand = build("check")
	postboxcli.InfoCommand = build("info")
}

func Test_runApp_SuccessfulCommands(t *testing.T) {
	swapCommands(t, dummyCmd)

	commands := []string{"dev", "prod", "get", "post", "put", "init", "clean", "check", "info"}
	for _, cmd := range commands {
		t.Run(cmd, func(t *testing.T) {
			err := runApp([]string{"postbox", cmd})
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
		})
	}
}

func Test_runApp_ErrorCommand(t *testing.T) {
	swapCommands(t, dummyCmd)
	postboxcli.InitCommand = failingCmd("init")

	err := runApp([]string{"postbox", "init"})
	if err == nil || err.Error() != "intentional failure" {
		t.Fatalf("Expected error 'intentional failure', got: %v", err)
	}
}

func Test_main_LogFatalPath(t *testing.T) {
	if os.Getenv("BE_CRASHER") == "1" {
		main()
		return
	}

	cmd := exec.Command(os.Args[0], "invalidCommand")
	cmd.Env = append(os.Environ(), "BE_CRASHER=1")

	output, err := cmd.CombinedOutput()

	if exitErr, ok := err.(*exec.ExitError); !ok {
		t.Fatalf("Expected exit error, got: %v", err)
	} else if exitErr.ExitCode() == 0 {
		t.Fatalf("Expected non-zero exit code from main")
	}

	if !strings.Contains(string(output), "No help topic for") {
		t.Errorf("Expected CLI error output, got: %s", output)
	}
}
