package main

import "netviz/cmd"

func main() {
	cmd.Execute()
}
