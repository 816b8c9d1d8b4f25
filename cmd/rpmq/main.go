// Package main provides the rpmq CLI.
package main

func main() {
	Execute()
}
