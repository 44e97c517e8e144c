package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestName is the file FindManifest looks for.
const ManifestName = "lox.yml"

// Manifest represents the parsed contents of lox.yml.
type Manifest struct {
	Path    string
	Name    string
	Main    string
	Prelude []string
	Trace   string
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// ErrNoManifest is returned by FindManifest when no lox.yml exists in the
// directory or any of its parents.
var ErrNoManifest = errors.New("manifest: no " + ManifestName + " found")

// FindManifest walks up from dir and returns the path of the first lox.yml.
func FindManifest(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoManifest
		}
		dir = parent
	}
}

// LoadManifest parses lox.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Main == "" {
		errs.Issues = append(errs.Issues, "main must name the entry script")
	} else if !strings.HasSuffix(m.Main, ".lox") {
		errs.Issues = append(errs.Issues, fmt.Sprintf("main %q must be a .lox script", m.Main))
	}
	for i, script := range m.Prelude {
		if !strings.HasSuffix(script, ".lox") {
			errs.Issues = append(errs.Issues, fmt.Sprintf("prelude[%d] %q must be a .lox script", i, script))
		}
	}
	if m.Trace != "" {
		if _, err := ParseTraceLevel(m.Trace); err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("trace: %v", err))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Dir is the directory holding the manifest; script paths are relative to it.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// Scripts returns the prelude scripts followed by main, as absolute paths.
func (m *Manifest) Scripts() []string {
	out := make([]string, 0, len(m.Prelude)+1)
	for _, script := range m.Prelude {
		out = append(out, m.resolvePath(script))
	}
	return append(out, m.resolvePath(m.Main))
}

func (m *Manifest) resolvePath(script string) string {
	if filepath.IsAbs(script) {
		return script
	}
	return filepath.Join(m.Dir(), filepath.FromSlash(script))
}

type manifestFile struct {
	Name    string     `yaml:"name"`
	Main    string     `yaml:"main"`
	Prelude stringList `yaml:"prelude"`
	Trace   string     `yaml:"trace"`
}

func (mf manifestFile) toManifest(path string) *Manifest {
	return &Manifest{
		Path:    path,
		Name:    strings.TrimSpace(mf.Name),
		Main:    strings.TrimSpace(mf.Main),
		Prelude: mf.Prelude.Clone(),
		Trace:   strings.TrimSpace(mf.Trace),
	}
}

type stringList []string

func (l stringList) Clone() []string {
	if len(l) == 0 {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, item := range l {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

// UnmarshalYAML accepts a single string as a one-element list.
func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			items = append(items, str)
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("manifest: expected string or sequence for list but found %s", value.ShortTag())
	}
}
