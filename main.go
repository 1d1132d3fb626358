package main

import "github.com/iksnae/eight-sleep/cmd"

func main() {
	cmd.Execute()
}
