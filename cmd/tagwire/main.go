package main

import (
	"tagwire/cmd/tagwire/cmd"
)

func main() {
	cmd.Execute()
}
