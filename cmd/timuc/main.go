// Command timuc is the Timu front-end driver: it parses one file or an
// entire manifest-described project, runs the signature resolver over it,
// and prints every diagnostic. Argument parsing follows the teacher's
// cmd/funxy/main.go style of reading os.Args by hand rather than the flag
// package, trimmed to the one flag this front end actually needs.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/erhanbaris/timu-sub002/internal/config"
	"github.com/erhanbaris/timu-sub002/internal/diagnostics"
	"github.com/erhanbaris/timu-sub002/internal/pipeline"
	"github.com/erhanbaris/timu-sub002/internal/utils"
	"github.com/mattn/go-isatty"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var manifestPath, inputPath string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-manifest":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "timuc: -manifest requires a path")
				return 1
			}
			manifestPath = args[i+1]
			i++
		default:
			inputPath = args[i]
		}
	}

	var inputs []pipeline.Input
	var manifest *config.ProjectConfig

	switch {
	case manifestPath != "":
		m, err := config.LoadManifest(manifestPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "timuc: %s\n", err)
			return 1
		}
		manifest = m
		found, err := discoverProject(m)
		if err != nil {
			fmt.Fprintf(os.Stderr, "timuc: %s\n", err)
			return 1
		}
		inputs = found
	case inputPath != "":
		code, err := os.ReadFile(inputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "timuc: %s\n", err)
			return 1
		}
		name := utils.ExtractModuleName(inputPath)
		inputs = []pipeline.Input{{Path: []string{name}, Code: string(code)}}
	default:
		code, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "timuc: %s\n", err)
			return 1
		}
		inputs = []pipeline.Input{{Path: []string{"stdin"}, Code: string(code)}}
	}

	ctx := pipeline.NewPipelineContext(inputs, manifest)
	pipeline.Default().Run(ctx)

	color := isatty.IsTerminal(os.Stderr.Fd())
	errs := ctx.Errors()
	for i, d := range errs {
		if i >= config.MaxDiagnostics {
			break
		}
		fmt.Fprintln(os.Stderr, renderDiagnostic(d, color))
	}
	fmt.Printf("build %s: %d errors\n", ctx.BuildID, len(errs))

	if len(errs) > 0 {
		return 1
	}
	return 0
}

// discoverProject walks m.Root for every file carrying m.Extension and
// reads it into a pipeline.Input keyed by its dotted module path.
func discoverProject(m *config.ProjectConfig) ([]pipeline.Input, error) {
	var inputs []pipeline.Input
	err := filepath.WalkDir(m.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != m.Extension {
			return nil
		}
		code, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		dotted := utils.FileToDottedPath(m.Root, path[:len(path)-len(m.Extension)])
		inputs = append(inputs, pipeline.Input{Path: splitDots(dotted), Code: string(code)})
		return nil
	})
	return inputs, err
}

func splitDots(dotted string) []string {
	var out []string
	start := 0
	for i := 0; i < len(dotted); i++ {
		if dotted[i] == '.' {
			out = append(out, dotted[start:i])
			start = i + 1
		}
	}
	out = append(out, dotted[start:])
	return out
}

// renderDiagnostic formats one diagnostic as a single line, with the error
// code shown in red when color is enabled.
func renderDiagnostic(d *diagnostics.Diagnostic, color bool) string {
	line, col := d.Span.LineCol()
	file := ""
	if d.Span.File != nil {
		file = d.Span.File.PathString()
	}
	if color {
		return fmt.Sprintf("\x1b[31m%s\x1b[0m %s:%d:%d: %s", d.Code, file, line, col, d.Message)
	}
	return fmt.Sprintf("%s %s:%d:%d: %s", d.Code, file, line, col, d.Message)
}
