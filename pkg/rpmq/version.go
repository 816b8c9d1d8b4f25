// Package rpmq exposes build metadata shared by the CLI and library consumers.
package rpmq

// Version is the rpmq release version.
const Version = "0.1.0"
