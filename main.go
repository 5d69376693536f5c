package main

import "github.com/danpilch/sampled/cmd"

func main() {
	cmd.Execute()
}
