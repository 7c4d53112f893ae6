// Package main is the entry point for the ghostscan CLI.
package main

import "ghostscan.dev/pkg/ghostscan/cmd"

func main() {
	cmd.Execute()
}
