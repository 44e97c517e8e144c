package driver

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"gopkg.in/yaml.v3"

	"lox/interpreter-go/pkg/interpreter"
)

type programFixture struct {
	Name   string   `yaml:"name"`
	Source string   `yaml:"source"`
	Stdout []string `yaml:"stdout"`
	Errors []string `yaml:"errors"`
	Status Status   `yaml:"status"`
}

func TestProgramFixtures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lox.driver")
	defer teardown()

	files, err := filepath.Glob(filepath.Join("testdata", "*.yml"))
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no fixtures found under testdata")
	}
	for _, file := range files {
		for _, fx := range readFixtures(t, file) {
			fx := fx
			t.Run(strings.TrimSuffix(filepath.Base(file), ".yml")+"/"+fx.Name, func(t *testing.T) {
				runFixture(t, fx)
			})
		}
	}
}

func readFixtures(t *testing.T, path string) []programFixture {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer file.Close()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	var fixtures []programFixture
	if err := decoder.Decode(&fixtures); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return fixtures
}

func runFixture(t *testing.T, fx programFixture) {
	t.Helper()
	var stdout bytes.Buffer
	var reported []string
	reporter := NewReporterFunc(func(d Diagnostic) {
		reported = append(reported, d.String())
	})
	session, err := NewSession(reporter, interpreter.WithOutput(&stdout))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	status := session.Run(fx.Source)

	if status != fx.Status {
		t.Fatalf("status = %v, want %v (diagnostics %v)", status, fx.Status, reported)
	}
	if got, want := strings.Join(reported, "\n"), strings.Join(fx.Errors, "\n"); got != want {
		t.Fatalf("diagnostics mismatch\n got: %q\nwant: %q", reported, fx.Errors)
	}
	if got, want := outputLines(stdout.String()), fx.Stdout; strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("stdout mismatch\n got: %q\nwant: %q", got, want)
	}
}

func outputLines(out string) []string {
	out = strings.TrimSuffix(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
