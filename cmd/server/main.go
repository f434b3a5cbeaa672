// Command server runs the news API. See `server --help` for the commands.
package main

import "github.com/sakif/news-api/internal/cli"

func main() {
	cli.Execute()
}
