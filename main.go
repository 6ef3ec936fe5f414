package main

import (
	"github.com/sagan/respimg/cmd"
	_ "github.com/sagan/respimg/cmd/all"
)

func main() {
	cmd.Execute()
}
