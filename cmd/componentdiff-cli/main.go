package main

import "componentdiff/cmd/componentdiff-cli/cmd"

func main() {
	cmd.Execute()
}
