// Command summarize writes a Markdown summary for every PDF in a folder.
package main

import "github.com/dgallion1/docsum/internal/cli"

func main() {
	cli.ExecuteAs("summarize")
}
