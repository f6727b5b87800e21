package main

import "github.com/shootout-game/shootout-go/internal/cli"

func main() {
	cli.Execute()
}
