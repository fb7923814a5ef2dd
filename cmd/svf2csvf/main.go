package main

import "github.com/OpenTraceLab/svf2csvf/cmd/svf2csvf/cmd"

func main() {
	cmd.Execute()
}
