package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/peterh/liner"
	"github.com/pterm/pterm"

	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/interpreter"
)

func tracer() tracing.Trace {
	return tracing.Select("lox.driver")
}

const historyFile = ".lox_history"

// initDisplay sets up pterm prefixes for the banner and diagnostics.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// runREPL reads lines until EOF. Each line runs in the same session, so
// declarations persist; errors are reported and then forgotten.
func runREPL(stdout, stderr io.Writer) int {
	initDisplay()
	reporter := driver.NewReporterFunc(func(d driver.Diagnostic) {
		pterm.Error.Println(d.String())
	})
	session, err := driver.NewSession(reporter, interpreter.WithOutput(stdout))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return int(driver.StatusIOError)
	}

	cli := liner.NewLiner()
	defer cli.Close()
	cli.SetCtrlCAborts(true)
	history := historyPath()
	loadHistory(cli, history)
	defer saveHistory(cli, history)

	pterm.Info.Println(cliToolVersion + ", quit with <ctrl>D")
	for {
		line, err := cli.Prompt("> ")
		switch {
		case err == nil:
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(stdout)
			return int(driver.StatusOK)
		default:
			tracer().Errorf("prompt: %v", err)
			return int(driver.StatusIOError)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		cli.AppendHistory(line)
		if value, echoed, _ := session.Echo(line); echoed {
			fmt.Fprintln(stdout, interpreter.Stringify(value))
		}
		reporter.Reset()
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

func loadHistory(cli *liner.State, path string) {
	if path == "" {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := cli.ReadHistory(f); err != nil {
		tracer().Debugf("history %s: %v", path, err)
	}
}

func saveHistory(cli *liner.State, path string) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		tracer().Debugf("history %s: %v", path, err)
		return
	}
	defer f.Close()
	if _, err := cli.WriteHistory(f); err != nil {
		tracer().Debugf("history %s: %v", path, err)
	}
}
