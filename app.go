package main

import "github.com/mistahuman/gitstats/cmd"

func main() {
	cmd.Run()
}
