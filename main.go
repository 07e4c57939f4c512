package main

import (
	"github.com/luma/marbus/cmd"
)

func main() {
	cmd.Execute()
}
