package main

import (
	"github.com/chsjkfqwjk/pixel-image-generator/cmd"
)

var version = "v0.1.0"

func main() {
	cmd.Execute(version)
}
