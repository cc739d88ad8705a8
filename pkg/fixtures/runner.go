package fixtures

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/isomethane/au-paradigms-2017/pkg/ast"
	"github.com/isomethane/au-paradigms-2017/pkg/config"
	"github.com/isomethane/au-paradigms-2017/pkg/folder"
	"github.com/isomethane/au-paradigms-2017/pkg/interpreter"
	"github.com/isomethane/au-paradigms-2017/pkg/printer"
	"github.com/isomethane/au-paradigms-2017/pkg/runtime"
)

// TestingT captures the subset of testing.T used by the runner.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
}

// RunAll replays every fixture directory below root as a subtest.
func RunAll(t *testing.T, root string) {
	t.Helper()
	dirs, err := FixtureDirs(root)
	if err != nil {
		t.Fatalf("collect fixtures: %v", err)
	}
	if len(dirs) == 0 {
		t.Fatalf("no fixtures under %s", root)
	}
	for _, dir := range dirs {
		name, _ := filepath.Rel(root, dir)
		t.Run(filepath.ToSlash(name), func(t *testing.T) {
			Run(t, dir)
		})
	}
}

// FixtureDirs lists directories below root holding a manifest, sorted.
func FixtureDirs(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == ManifestName {
			dirs = append(dirs, filepath.Dir(path))
		}
		return nil
	})
	sort.Strings(dirs)
	return dirs, err
}

// Run replays one fixture directory.
func Run(t TestingT, dir string) {
	t.Helper()
	manifest, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("fixture %s: %v", dir, err)
	}
	program, err := ReadProgram(filepath.Join(dir, manifest.Entry))
	if err != nil {
		t.Fatalf("fixture %s: %v", dir, err)
	}
	cfg := config.Default()
	if manifest.Config != "" {
		if cfg, err = config.Load(filepath.Join(dir, manifest.Config)); err != nil {
			t.Fatalf("fixture %s: %v", dir, err)
		}
	}

	checkRoundTrip(t, dir, program)
	if manifest.Expect.Rendered != "" {
		rendered, err := printer.Render(program)
		if err != nil {
			t.Fatalf("fixture %s render error: %v", dir, err)
		}
		if rendered != manifest.Expect.Rendered {
			t.Fatalf("fixture %s rendering differs:\n%s", dir, textDiff(manifest.Expect.Rendered, rendered))
		}
	}
	checkFold(t, dir, manifest, program)

	console := interpreter.NewBufferedConsole(manifest.Stdin...)
	interp := interpreter.NewWithConfig(cfg, console, config.NewLogger(cfg.Logging, nil))
	value, err := interp.Evaluate(program)
	if manifest.Expect.Stdout != nil && !reflect.DeepEqual(console.Lines(), manifest.Expect.Stdout) {
		t.Fatalf("fixture %s expected stdout %v, got %v", dir, manifest.Expect.Stdout, console.Lines())
	}
	if manifest.Expect.Error != "" {
		expectKind(t, dir, "evaluation", err, manifest.Expect.Error)
		return
	}
	if err != nil {
		t.Fatalf("fixture %s evaluation error: %v", dir, err)
	}
	if manifest.Expect.Result != "" {
		if got := runtime.Describe(value); got != manifest.Expect.Result {
			t.Fatalf("fixture %s expected result %s, got %s", dir, manifest.Expect.Result, got)
		}
	}
}

func checkFold(t TestingT, dir string, manifest *Manifest, program ast.Expression) {
	t.Helper()
	if manifest.Expect.Folded == "" && manifest.Expect.FoldError == "" {
		return
	}
	folded, err := folder.Fold(program)
	if manifest.Expect.FoldError != "" {
		expectKind(t, dir, "fold", err, manifest.Expect.FoldError)
		return
	}
	if err != nil {
		t.Fatalf("fixture %s fold error: %v", dir, err)
	}
	rendered, err := printer.Render(folded)
	if err != nil {
		t.Fatalf("fixture %s render folded error: %v", dir, err)
	}
	if rendered != manifest.Expect.Folded {
		t.Fatalf("fixture %s folded rendering differs:\n%s", dir, textDiff(manifest.Expect.Folded, rendered))
	}
}

func checkRoundTrip(t TestingT, dir string, program ast.Expression) {
	t.Helper()
	var buf bytes.Buffer
	if err := Encode(&buf, program); err != nil {
		t.Fatalf("fixture %s encode error: %v", dir, err)
	}
	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("fixture %s decode error: %v", dir, err)
	}
	if !ast.Equal(program, decoded) {
		t.Fatalf("fixture %s did not survive an encode/decode round trip", dir)
	}
}

func expectKind(t TestingT, dir, stage string, err error, kind runtime.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("fixture %s expected %s error %s", dir, stage, kind)
	}
	var rerr *runtime.Error
	if !errors.As(err, &rerr) || rerr.Kind != kind {
		t.Fatalf("fixture %s expected %s error %s, got %v", dir, stage, kind, err)
	}
}
