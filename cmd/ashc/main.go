// Package main implements the ashc compiler binary.
package main

import (
	"fmt"
	"os"

	"github.com/ashlang/ashc/pkg/logger"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "compile":
		runCompile(os.Args[2:])
	case "version":
		fmt.Printf("ashc compiler version %s\n", version)
	case "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`ashc - Ash compiler

Usage:
    ashc compile <source.json> [-o output.ll]  Compile a parse-tree document to LLVM IR
    ashc version                                Show compiler version
    ashc help                                   Show this help message

Options:
    -o <file>      Output IR file name (default: source name with .ll)
    -v             Verbose (debug) logging
    -target <arch> Target architecture hint, recorded in the toolchain handoff log`)
}

func init() {
	_ = logger.Init(logger.DefaultConfig())
}
