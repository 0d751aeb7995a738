package main

import "scrivo/cmd/scrivo-cli/cmd"

func main() {
	cmd.Execute()
}
