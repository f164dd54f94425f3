// Package main provides the memoir CLI.
package main

import "github.com/mesh-intelligence/memoir/internal/cli"

func main() {
	cli.Execute()
}
