package main

import "github.com/mmynk/campsite/internal/cli"

func main() {
	cli.Execute()
}
