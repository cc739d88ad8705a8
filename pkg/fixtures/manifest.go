package fixtures

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/isomethane/au-paradigms-2017/pkg/runtime"
)

const (
	ManifestName = "manifest.yml"
	DefaultEntry = "program.yml"
)

// Manifest describes one fixture directory.
type Manifest struct {
	Path        string
	Description string
	Entry       string
	Config      string
	Stdin       []string
	Expect      Expectation
}

// Expectation lists the checks run against a fixture. Empty fields are not
// checked; Stdout is checked whenever the manifest names it.
type Expectation struct {
	Result    string
	Stdout    []string
	Error     runtime.ErrorKind
	Rendered  string
	Folded    string
	FoldError runtime.ErrorKind
}

// ValidationError aggregates manifest problems.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("fixture manifest ")
	b.WriteString(e.Path)
	b.WriteString(" is invalid:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

type manifestFile struct {
	Description string       `yaml:"description"`
	Entry       string       `yaml:"entry"`
	Config      string       `yaml:"config"`
	Stdin       []string     `yaml:"stdin"`
	Expect      expectations `yaml:"expect"`
}

type expectations struct {
	Result    string   `yaml:"result"`
	Stdout    []string `yaml:"stdout"`
	Error     string   `yaml:"error"`
	Rendered  string   `yaml:"rendered"`
	Folded    string   `yaml:"folded"`
	FoldError string   `yaml:"fold_error"`
}

var knownErrorKinds = []runtime.ErrorKind{
	runtime.KindNameNotFound,
	runtime.KindNotCallable,
	runtime.KindDivisionByZero,
	runtime.KindInputFormat,
	runtime.KindUnknownOperator,
	runtime.KindTypeMismatch,
	runtime.KindCallDepthExceeded,
}

// LoadManifest reads dir/manifest.yml. Rendered and folded expectations name
// text files relative to dir; their contents are loaded into the manifest.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestName)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", path, err)
	}
	defer file.Close()

	manifest, err := parseManifest(file, path)
	if err != nil {
		return nil, err
	}
	if manifest.Expect.Rendered, err = readGolden(dir, manifest.Expect.Rendered); err != nil {
		return nil, err
	}
	if manifest.Expect.Folded, err = readGolden(dir, manifest.Expect.Folded); err != nil {
		return nil, err
	}
	return manifest, nil
}

func parseManifest(r io.Reader, path string) (*Manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("manifest: parse %s: %w", path, err)
	}
	return raw.toManifest(path)
}

func (raw manifestFile) toManifest(path string) (*Manifest, error) {
	errs := ValidationError{Path: path}
	m := &Manifest{
		Path:        path,
		Description: raw.Description,
		Entry:       raw.Entry,
		Config:      raw.Config,
		Stdin:       raw.Stdin,
		Expect: Expectation{
			Result:   raw.Expect.Result,
			Stdout:   raw.Expect.Stdout,
			Rendered: raw.Expect.Rendered,
			Folded:   raw.Expect.Folded,
		},
	}
	if m.Entry == "" {
		m.Entry = DefaultEntry
	}
	if raw.Expect.Error != "" {
		if kind, ok := lookupErrorKind(raw.Expect.Error); ok {
			m.Expect.Error = kind
		} else {
			errs.Issues = append(errs.Issues, fmt.Sprintf("expect.error %q is not an error kind", raw.Expect.Error))
		}
	}
	if raw.Expect.FoldError != "" {
		if kind, ok := lookupErrorKind(raw.Expect.FoldError); ok {
			m.Expect.FoldError = kind
		} else {
			errs.Issues = append(errs.Issues, fmt.Sprintf("expect.fold_error %q is not an error kind", raw.Expect.FoldError))
		}
	}
	if raw.Expect.Result != "" && raw.Expect.Error != "" {
		errs.Issues = append(errs.Issues, "expect.result and expect.error are mutually exclusive")
	}
	if raw.Expect.Folded != "" && raw.Expect.FoldError != "" {
		errs.Issues = append(errs.Issues, "expect.folded and expect.fold_error are mutually exclusive")
	}
	if len(errs.Issues) > 0 {
		return nil, &errs
	}
	return m, nil
}

func lookupErrorKind(name string) (runtime.ErrorKind, bool) {
	for _, kind := range knownErrorKinds {
		if strings.EqualFold(string(kind), name) {
			return kind, true
		}
	}
	return "", false
}

func readGolden(dir, name string) (string, error) {
	if name == "" {
		return "", nil
	}
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("manifest: read golden %s: %w", name, err)
	}
	return string(data), nil
}
