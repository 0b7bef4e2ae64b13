package main

import "github.com/beka-birhanu/mazebot/cli"

func main() {
	cli.Execute()
}
