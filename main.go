package main

import "github.com/teeshell/teeshell/cmd"

func main() {
	cmd.Execute()
}
