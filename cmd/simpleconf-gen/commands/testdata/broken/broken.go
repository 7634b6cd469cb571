// Package broken holds annotations with errors for the command tests.
package broken

// NoSource has no path and no serialized text.
//
//simpleconf:from_config(serializer = "encoding/json.Marshal")
type NoSource struct {
	Name string
}

// Fine derives without problems.
//
//simpleconf:from_config(path = "fine.yaml")
type Fine struct {
	Name string //simpleconf:from_confg(save = "n")
}
