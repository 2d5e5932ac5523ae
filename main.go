package main

import "github.com/quillpress/quillpress/cmd"

func main() {
	cmd.Execute()
}
