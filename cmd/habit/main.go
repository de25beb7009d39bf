package main

import "habit/internal/delivery/cli"

func main() {
	cli.Execute()
}
