package main

import "asset-lists/cmd"

func main() {
	cmd.Execute()
}
