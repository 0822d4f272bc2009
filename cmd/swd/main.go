package main

import "github.com/OpenTraceLab/OpenTraceSWD/cmd/swd/cmd"

func main() {
	cmd.Execute()
}
