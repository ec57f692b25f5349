// cmd/circuitc/main.go
package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"
	"sort"

	"github.com/circuitlang/circuitc/internal/bignum"
	"github.com/circuitlang/circuitc/internal/examples"
	"github.com/circuitlang/circuitc/internal/interpreter"
	"github.com/circuitlang/circuitc/internal/transpiler"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the whole of circuitc's dispatch, factored out of main so
// cmd/circuitc's testscript suite can invoke it in-process via
// testscript.RunMain instead of shelling out to a built binary.
func run(args []string) int {
	if len(args) == 0 {
		showUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h", "help":
		showUsage()
		return 0
	case "--version", "-v", "version":
		fmt.Println("circuitc (dev build)")
		return 0
	case "list":
		listPrograms()
		return 0
	case "interpret":
		if err := runInterpret(args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	case "transpile":
		if err := runTranspile(args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", args[0])
		showUsage()
		return 1
	}
}

func showUsage() {
	fmt.Println("circuitc - zero-knowledge circuit toolchain driver")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  circuitc interpret [--modulus=N] <program>   Run a named program against the in-memory constraint system")
	fmt.Println("  circuitc transpile [--modulus=N] <program>   Lower a named program to LLVM IR")
	fmt.Println("  circuitc list                                List the named example programs")
	fmt.Println("  circuitc help                                Show this message")
	fmt.Println()
	fmt.Println("<program> names one of the in-repo example programs (no source-text parsing")
	fmt.Println("is supported — see `circuitc list`).")
}

func listPrograms() {
	names := make([]string, 0, len(examples.Catalog))
	for name := range examples.Catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Println(name)
	}
}

func loadProgram(fs *flag.FlagSet, args []string) (string, error) {
	modulus := fs.String("modulus", "", "override the scalar field modulus (decimal)")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if *modulus != "" {
		n, ok := new(big.Int).SetString(*modulus, 10)
		if !ok {
			return "", fmt.Errorf("invalid --modulus value %q", *modulus)
		}
		bignum.FieldPrime = n
	}
	if fs.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one program name, got %d", fs.NArg())
	}
	return fs.Arg(0), nil
}

func runInterpret(args []string) error {
	name, err := loadProgram(flag.NewFlagSet("interpret", flag.ContinueOnError), args)
	if err != nil {
		return err
	}
	build, ok := examples.Catalog[name]
	if !ok {
		return fmt.Errorf("unknown program %q (try `circuitc list`)", name)
	}
	result, runErr := interpreter.Run(build(), os.Stdout)
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w.String())
	}
	if runErr != nil {
		return runErr
	}
	fmt.Printf("run %s: %d constraint(s) recorded\n", result.RunID, len(result.Constraints))
	for _, c := range result.Constraints {
		fmt.Printf("  %s %s -> %s\n", c.Namespace, c.Op, c.Output)
	}
	return nil
}

func runTranspile(args []string) error {
	name, err := loadProgram(flag.NewFlagSet("transpile", flag.ContinueOnError), args)
	if err != nil {
		return err
	}
	build, ok := examples.Catalog[name]
	if !ok {
		return fmt.Errorf("unknown program %q (try `circuitc list`)", name)
	}
	result, runErr := transpiler.Transpile(build())
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w.String())
	}
	if runErr != nil {
		return runErr
	}
	_, werr := result.WriteTo(os.Stdout)
	return werr
}
