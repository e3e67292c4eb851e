package main

import "github.com/pictora/pictora/internal/cli"

func main() {
	cli.Execute()
}
