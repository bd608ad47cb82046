package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/ashlang/ashc/pkg/builder"
	"github.com/ashlang/ashc/pkg/codegen"
	"github.com/ashlang/ashc/pkg/ir"
	"github.com/ashlang/ashc/pkg/logger"
)

// runCompile drives the pipeline a JSON parse-tree document goes through:
// decode, build (desugar), generate IR, write the result. It never invokes
// an external assembler or linker itself — -target is recorded and handed
// off via toolchainHint only, matching spec.md's "surfaced as a
// collaborator" framing for everything downstream of IR emission.
func runCompile(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: no input file")
		os.Exit(1)
	}

	source, out, target, verbose := parseCompileFlags(args)
	if verbose {
		_ = logger.Init(logger.Config{Level: logger.LevelDebug, Format: "text", Output: os.Stderr, AddSource: true})
	}
	if out == "" {
		out = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)) + ".ll"
	}

	logger.LogCompilerStart(args)
	start := time.Now()

	module, err := compile(source)
	if err != nil {
		logger.LogCompilerComplete(false, time.Since(start).String())
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(out, []byte(module.String()), 0644); err != nil {
		logger.LogCompilerComplete(false, time.Since(start).String())
		fmt.Fprintf(os.Stderr, "error: writing %s: %v\n", out, err)
		os.Exit(1)
	}

	logger.LogCompilerComplete(true, time.Since(start).String())
	fmt.Printf("wrote %s\n", out)

	if target != "" {
		toolchainHint(target, out)
	}
}

// compile reads source, decodes it as a parse-tree document, and runs it
// through the builder and code generator. The returned module is fully
// rendered IR, ready for (*ir.Module).String.
func compile(source string) (*ir.Module, error) {
	f, err := os.Open(source)
	if err != nil {
		return nil, errors.Wrap(err, "open source")
	}
	defer f.Close()

	raw, err := builder.DecodeModule(f)
	if err != nil {
		return nil, errors.Wrap(err, "decode parse tree")
	}

	logger.LogFileProcessing(source)
	b := builder.New()
	mod := b.BuildModule(raw)

	gen := codegen.New()
	out, err := gen.Generate(mod)
	if err != nil {
		return nil, errors.Wrap(err, "generate IR")
	}
	return out, nil
}

// toolchainHint logs the handoff a real build would make to an external
// assembler/linker for the given target — this binary never shells out to
// one itself, per spec.md's external-collaborator boundary.
func toolchainHint(target, out string) {
	logger.LogToolchainHandoff(fmt.Sprintf("clang(-target %s)", target), out)
	if _, err := exec.LookPath("clang"); err != nil {
		fmt.Fprintf(os.Stderr, "note: clang not found on PATH; %s was not assembled\n", out)
	}
}

func parseCompileFlags(args []string) (source, out, target string, verbose bool) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-o":
			if i+1 < len(args) {
				i++
				out = args[i]
			}
		case "-target":
			if i+1 < len(args) {
				i++
				target = args[i]
			}
		case "-v":
			verbose = true
		case "-O":
			if i+1 < len(args) {
				i++
			}
		case "-debug":
			verbose = true
		default:
			if source == "" {
				source = args[i]
			}
		}
	}
	return source, out, target, verbose
}
