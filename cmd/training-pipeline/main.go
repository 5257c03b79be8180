package main

import (
	"log"

	"github.com/laraAkg/immoscout-project/internal"
)

func main() {
	application, err := internal.NewTrainingApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Application run failed: %v", err)
	}
}
