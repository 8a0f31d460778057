package main

import "take5/internal/cli"

func main() {
	cli.Execute()
}
