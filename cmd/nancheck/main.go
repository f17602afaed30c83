package main

import (
	"github.com/dogeorg/wifiaware/cmd/nancheck/cmd"
)

func main() {
	cmd.Execute()
}
