package types

import "fmt"

// Package represents one installed package record read from the package
// database. Values are immutable once returned by a store; Name is always
// non-empty and Size is the installed size in bytes.
type Package struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Release string `json:"release,omitempty"`
	Arch    string `json:"arch,omitempty"`
	Size    int64  `json:"size"`
}

// Label returns the conventional name-version form used in query output.
func (p Package) Label() string {
	return fmt.Sprintf("%s-%s", p.Name, p.Version)
}
