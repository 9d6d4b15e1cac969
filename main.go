package main

import "github.com/Beastly713/sss256/cmd"

func main() {
	cmd.Execute()
}
