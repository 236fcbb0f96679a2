package main

import "github.com/aceteam-ai/ccperf/cmd"

func main() {
	cmd.Execute()
}
