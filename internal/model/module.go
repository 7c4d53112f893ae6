// Package model defines the data structures shared by the scan pipeline.
package model

// Path represents a file system path.
type Path string

// Module is a Python module discovered under a standard-library root.
type Module struct {
	// Name is the dotted import name, e.g. "email.mime.text".
	Name string
	// Path is the source file the name was derived from.
	Path Path
}

func (mod Module) String() string {
	return mod.Name
}
