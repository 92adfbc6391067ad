package main

import "github.com/mvp-joe/project-docgen/internal/cli"

func main() {
	cli.Execute()
}
