package main

import "kbd/cmd"

func main() {
	cmd.Execute()
}
