package main

import "github.com/mvp-joe/scribe/internal/cli"

func main() {
	cli.Execute()
}
