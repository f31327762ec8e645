package main

import "github.com/tranvictor/allowance/cmd"

func main() {
	cmd.Execute()
}
