package main

import "github.com/MiracleBell/java-go-game/internal/cli"

func main() {
	cli.Execute()
}
