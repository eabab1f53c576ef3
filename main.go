// Package main is the entry point for the heft CLI.
package main

import "github.com/mouse-blink/heft/cmd"

func main() {
	cmd.Execute()
}
