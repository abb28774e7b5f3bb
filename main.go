package main

import "github.com/pr-poehali-dev/planeval/cmd"

func main() {
	cmd.Execute()
}
