package main

import "github.com/naka-gawa/pr-notify/cmd"

func main() {
	cmd.Execute()
}
