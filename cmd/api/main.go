package main

import (
	"context"
	"log"
	"os"

	"github.com/edutrack/core/cmd/api/commands"
)

// @title EduTrack API
// @version 1.0
// @description Reports and updates over the EduTrack learning dataset

// @host localhost:3333
// @BasePath /

func main() {
	if err := commands.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
