// Package typeerror does not type-check.
package typeerror

//simpleconf:from_config(path = "app.yaml")
type App struct {
	Name string
}

var count int = "three"
