/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ssargent/kvtree/cmd/kvserver/cmd"

func main() {
	cmd.Execute()
}
