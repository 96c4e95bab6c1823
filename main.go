package main

import "github.com/mineskin/skinbot/cmd"

func main() {
	cmd.Execute()
}
