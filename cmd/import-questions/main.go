package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/lmodev/asaa_quiz/internal/config"
	"github.com/lmodev/asaa_quiz/internal/services"
	"github.com/lmodev/asaa_quiz/internal/storage"
	"github.com/lmodev/asaa_quiz/pkg/logger"
)

// Bulk-loads a question file into whichever store the environment selects.
// Accepts the admin-export JSON format or an XLSX sheet with one question
// per row.
func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger.Init()
	defer logger.Sync()

	path := flag.String("file", "", "path to a .json or .xlsx question file")
	flag.Parse()
	if *path == "" {
		log.Fatal("usage: import-questions -file questions.json")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load config:", err)
	}

	store, err := storage.New(cfg)
	if err != nil {
		log.Fatal("failed to initialize storage:", err)
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	questions := services.NewQuestionService(store)

	var imported int
	switch {
	case strings.HasSuffix(*path, ".xlsx"):
		imported, err = questions.ImportXLSX(context.Background(), f)
	case strings.HasSuffix(*path, ".json"):
		imported, err = questions.ImportJSON(context.Background(), f)
	default:
		log.Fatal("unsupported file type, expected .json or .xlsx")
	}
	if err != nil {
		log.Fatal("import failed:", err)
	}

	fmt.Printf("Successfully imported %d questions.\n", imported)
}
