package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/shahdhi/SHaBridge-English-Mastery-Framework/internal/application"
	"github.com/shahdhi/SHaBridge-English-Mastery-Framework/internal/domain"
)

func main() {
	var (
		answersPath = flag.String("answers", "", "Path to an answers JSON file (question id -> answer text)")
		examPath    = flag.String("exam", "", "Optional exam definition YAML; defaults to the built-in SEMF placement exam")
		asJSON      = flag.Bool("json", false, "Print the full report as JSON instead of the narrative summary")
	)
	flag.Parse()

	if *answersPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*answersPath)
	if err != nil {
		log.Fatalf("Failed to read answers file: %v", err)
	}

	var answers domain.AnswerSet
	if err := json.Unmarshal(data, &answers); err != nil {
		log.Fatalf("Failed to parse answers file: %v", err)
	}

	exam, err := loadExam(*examPath)
	if err != nil {
		log.Fatalf("Failed to load exam definition: %v", err)
	}

	engine, err := application.NewEngine(exam)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	report := engine.Score(context.Background(), answers)

	if *asJSON {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode report: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	fmt.Println(report.Summary)
}

// loadExam compiles the exam definition: a YAML file when a path is
// given, otherwise the built-in SEMF placement exam.
func loadExam(path string) (*application.Exam, error) {
	if path == "" {
		return application.NewDefaultExam()
	}

	loader, err := application.NewExamLoader(application.NewDefaultStrategyRegistry())
	if err != nil {
		return nil, err
	}
	return loader.LoadFromFile(path)
}
