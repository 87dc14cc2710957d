package client

import "fmt"

// StatusPanel receives the visible outcome of a submission. It is the single
// display side effect the client performs, kept behind an interface so request
// handling can be tested without a terminal.
type StatusPanel interface {
	Pending(msg string)
	Success(body string)
	Failure(msg string)
}

// TerminalPanel prints outcomes to stdout.
type TerminalPanel struct{}

func (TerminalPanel) Pending(msg string) {
	fmt.Println("⏳", msg)
}

func (TerminalPanel) Success(body string) {
	fmt.Println("✅ Success!")
	if body != "" {
		fmt.Println(body)
	}
}

func (TerminalPanel) Failure(msg string) {
	fmt.Println("❌", msg)
}

// NopPanel discards all output.
type NopPanel struct{}

func (NopPanel) Pending(string) {}
func (NopPanel) Success(string) {}
func (NopPanel) Failure(string) {}
