package main

import "github.com/pfrederiksen/events-board/internal/cli"

func main() {
	cli.Execute()
}
