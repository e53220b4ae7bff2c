// Command count-tokens prints the token count of every PDF in a folder.
package main

import "github.com/dgallion1/docsum/internal/cli"

func main() {
	cli.ExecuteAs("count")
}
