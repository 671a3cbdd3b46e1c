package main

import "github.com/iksnae/cursor-export/cmd"

func main() {
	cmd.Execute()
}
