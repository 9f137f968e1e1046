//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default builds smart-save.
var Default = Build

const (
	binary = "smart-save"
	cmdPkg = "./cmd/smart-save"
)

// Build compiles smart-save into the repository root.
func Build() error {
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-o", binary, cmdPkg)
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "-shuffle=on", "./...")
}

// Integration runs the CLI tests, which drive concurrent smart-save
// processes against a shared scenes folder.
func Integration() error {
	return sh.RunV("go", "test", "-race", "-tags=integration", cmdPkg)
}

// Lint runs golangci-lint with the repository config.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "-c", ".golangci.yml", "./...")
}

// Fmt rewrites the sources with gofmt -s.
func Fmt() error {
	return sh.RunV("gofmt", "-s", "-w", ".")
}

// Install puts smart-save in GOBIN.
func Install() error {
	return sh.RunV("go", "install", cmdPkg)
}

// Clean removes the built binary.
func Clean() error {
	if err := os.Remove(binary); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

// Check formats, lints and runs every test suite.
func Check() {
	mg.SerialDeps(Fmt, Lint, Test, Integration)
}
