package main

import "modforge/cmd"

func main() {
	cmd.Execute()
}
