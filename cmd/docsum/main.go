package main

import "github.com/dgallion1/docsum/internal/cli"

func main() {
	cli.Execute()
}
