// Package types defines the installed-package data model, the store
// interfaces consumed by the query layer, and the standard errors shared
// across rpmq.
package types
