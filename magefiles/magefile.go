//go:build mage

// Package main contains Mage build targets for pubmed-fetch developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
)

const (
	binDir  = "bin"
	binName = "pubmed-fetch"
	cmdPkg  = "./cmd/pubmed-fetch"
)

// Default is the target mage runs with no arguments.
var Default = Build

// Build compiles the CLI binary into bin/. The VERSION environment
// variable, when set, is stamped into the binary.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	args := []string{"build", "-o", out}
	if v := os.Getenv("VERSION"); v != "" {
		args = append(args, "-ldflags", "-X main.version="+v)
	}
	args = append(args, cmdPkg)
	if err := goCmd(args...); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs vet and then the unit tests of every package.
func Test() error {
	if err := goCmd("vet", "./..."); err != nil {
		return fmt.Errorf("go vet: %w", err)
	}
	if err := goCmd("test", "-count=1", "./..."); err != nil {
		return fmt.Errorf("go test: %w", err)
	}
	return nil
}

// Install builds and copies the binary to $GOPATH/bin.
func Install() error {
	mg.Deps(Test)
	if err := goCmd("install", "-ldflags", "-X main.version="+versionOr("dev"), cmdPkg); err != nil {
		return fmt.Errorf("go install: %w", err)
	}
	return nil
}

// Clean removes build output.
func Clean() error {
	return os.RemoveAll(binDir)
}

// Stats prints project metrics: Go production/test LOC and documentation word count.
func Stats() error {
	prodLines, testLines, err := countGoLines(".")
	if err != nil {
		return err
	}
	docWords, err := countDocWords(".")
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Words (documentation):           %d\n", docWords)
	return nil
}

func goCmd(args ...string) error {
	cmd := exec.Command("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func versionOr(fallback string) string {
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return fallback
}

// skipDir reports whether a directory is outside the project's own code.
func skipDir(name string) bool {
	return name == binDir || name == "vendor" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// countGoLines counts non-blank lines in production and test Go files.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && skipDir(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			if strings.TrimSpace(sc.Text()) != "" {
				n++
			}
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return sc.Err()
	})
	return prod, test, err
}

// countDocWords counts words in the project's markdown and yaml files.
func countDocWords(root string) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && skipDir(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		switch filepath.Ext(path) {
		case ".md", ".yaml", ".yml":
		default:
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		total += len(strings.Fields(string(data)))
		return nil
	})
	return total, err
}
