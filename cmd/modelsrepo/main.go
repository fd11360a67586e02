package main

import "modelsrepo/internal/cli"

func main() {
	cli.Execute()
}
