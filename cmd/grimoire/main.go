package main

import "grimoire/internal/cli"

func main() {
	cli.Execute()
}
