// Package renamed has a field renamed after its file was last generated.
package renamed

//simpleconf:from_config(path = "server.toml")
type Server struct {
	Host       string
	PortNumber int
}
