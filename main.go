package main

import "craft-sleuth/cmd"

func main() {
	cmd.Execute()
}
