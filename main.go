package main

import "github.com/rapc-project/rapc/cmd"

func main() {
	cmd.Execute()
}
