package main

import (
	"github.com/commonsgame/commons-go/internal/cli"
)

func main() {
	cli.Execute()
}
