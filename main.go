package main

import "github.com/they4kman/sweeper/cmd"

func main() {
	cmd.Execute()
}
