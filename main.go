package main

import "github.com/mugit-vcs/mugit/cli"

func main() {
	cli.Execute()
}
