package main

import "github.com/ssargent/kvtree/cmd/kvctl/cmd"

func main() {
	cmd.Execute()
}
