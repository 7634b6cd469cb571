// Command simpleconf-gen generates load and save code for Go types annotated
// with //simpleconf:from_config.
//
// Typical use is a go:generate line in the package holding the types:
//
//	//go:generate go run simpleconf/cmd/simpleconf-gen generate .
package main

import (
	"os"

	"simpleconf/cmd/simpleconf-gen/commands"
)

func main() {
	os.Exit(commands.Execute())
}
