package main

import "confluo/cmd/confluo/commands"

func main() {
	commands.Execute()
}
