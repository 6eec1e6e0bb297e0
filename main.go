package main

import "github.com/Daskott/raksha/cmd"

func main() {
	cmd.Execute()
}
