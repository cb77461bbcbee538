package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker recompute [project_id]")
	}

	switch os.Args[1] {
	case "recompute":
		RunRecompute(os.Args[2:])
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}
