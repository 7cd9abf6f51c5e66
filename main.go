package main

import "github.com/kasuboski/guessr/cmd"

func main() {
	cmd.Execute()
}
