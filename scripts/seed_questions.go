package main

import (
	"encoding/json"
	"log"
	"os"

	"mockmate/interview-coach/internal/config"
	"mockmate/interview-coach/internal/models"
	"mockmate/interview-coach/internal/repositories"
)

type seedQuestion struct {
	Profession   string `json:"profession"`
	Grade        string `json:"grade"`
	QuestionText string `json:"question_text"`
}

func main() {
	log.Println("🚀 Starting question bank seeding...")

	// Load configuration
	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	catalogRepo := repositories.NewCatalogRepository(db)

	raw, err := os.ReadFile("data/questions.json")
	if err != nil {
		log.Fatalf("❌ Failed to read data/questions.json: %v", err)
	}

	var seedQuestions []seedQuestion
	if err := json.Unmarshal(raw, &seedQuestions); err != nil {
		log.Fatalf("❌ Failed to parse questions file: %v", err)
	}

	// Create professions first so questions can reference them
	professionIDs := map[string]models.Profession{}
	for _, sq := range seedQuestions {
		if _, exists := professionIDs[sq.Profession]; exists {
			continue
		}
		profession := models.Profession{Name: sq.Profession}
		if err := catalogRepo.CreateProfession(&profession); err != nil {
			log.Fatalf("❌ Failed to create profession %q: %v", sq.Profession, err)
		}
		professionIDs[sq.Profession] = profession
		log.Printf("📋 Created profession: %s", sq.Profession)
	}

	questions := make([]models.Question, 0, len(seedQuestions))
	skipped := 0
	for _, sq := range seedQuestions {
		grade := models.Grade(sq.Grade)
		if !grade.Valid() {
			log.Printf("⚠️  Skipping question with invalid grade %q", sq.Grade)
			skipped++
			continue
		}
		questions = append(questions, models.Question{
			ProfessionID: professionIDs[sq.Profession].ID,
			Grade:        grade,
			QuestionText: sq.QuestionText,
		})
	}

	if err := catalogRepo.CreateQuestions(questions); err != nil {
		log.Fatalf("❌ Failed to create questions: %v", err)
	}

	log.Printf("📊 Seeding summary: %d professions, %d questions, %d skipped",
		len(professionIDs), len(questions), skipped)
	log.Println("✅ Question bank seeded successfully!")
}
