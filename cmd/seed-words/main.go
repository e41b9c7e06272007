package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/vocastudio/voca-backend/internal/config"
	"github.com/vocastudio/voca-backend/internal/database"
	"github.com/vocastudio/voca-backend/internal/logger"
	"github.com/vocastudio/voca-backend/internal/model"
	"github.com/vocastudio/voca-backend/internal/repository"
	"github.com/vocastudio/voca-backend/internal/service"
)

type seedWord struct {
	english string
	korean  string
	example string
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	wordbookRepo := repository.NewWordbookRepository(pool)
	wordRepo := repository.NewWordRepository(pool)
	wordbookService := service.NewWordbookService(wordbookRepo, log)

	fmt.Println("=== Seeding Starter Wordbook ===")

	authorID := findSuperAdmin(ctx, pool, log)
	title := "기초 영단어 100"

	// Reuse an existing seed wordbook instead of duplicating it.
	var wordbookID uuid.UUID
	err = pool.QueryRow(ctx,
		`SELECT id FROM wordbooks WHERE title = $1 AND academy_id IS NULL`, title,
	).Scan(&wordbookID)

	switch {
	case err == pgx.ErrNoRows:
		wb := &model.Wordbook{
			AuthorID:    authorID,
			Title:       title,
			Description: "모든 학원에 공개되는 기본 제공 단어장입니다.",
			Level:       "beginner",
		}
		if err := wordbookService.Create(ctx, wb); err != nil {
			log.Fatal().Err(err).Msg("Failed to create wordbook")
		}
		wordbookID = wb.ID
		fmt.Printf("Created shared wordbook %s\n", wordbookID)
	case err != nil:
		log.Fatal().Err(err).Msg("Failed to check existing wordbook")
	default:
		fmt.Printf("Found existing wordbook %s, reseeding words\n", wordbookID)
	}

	seeds := []seedWord{
		{"apple", "사과", "I eat an apple every morning."},
		{"book", "책", "She reads a book before bed."},
		{"school", "학교", "The school is near my house."},
		{"water", "물", "Please give me a glass of water."},
		{"friend", "친구", "He is my best friend."},
		{"house", "집", "Their house has a red roof."},
		{"teacher", "선생님", "Our teacher speaks three languages."},
		{"morning", "아침", "I wake up early in the morning."},
		{"family", "가족", "My family lives in Busan."},
		{"music", "음악", "She listens to music while studying."},
		{"window", "창문", "Open the window, please."},
		{"weather", "날씨", "The weather is nice today."},
		{"dinner", "저녁 식사", "We had dinner together."},
		{"library", "도서관", "The library closes at nine."},
		{"question", "질문", "May I ask a question?"},
		{"answer", "대답", "Her answer was correct."},
		{"train", "기차", "The train leaves at seven."},
		{"market", "시장", "Mom went to the market."},
		{"winter", "겨울", "Winter in Seoul is very cold."},
		{"promise", "약속", "Keep your promise."},
	}

	words := make([]model.Word, 0, len(seeds))
	for i, s := range seeds {
		words = append(words, model.Word{
			WordbookID:      wordbookID,
			English:         s.english,
			Korean:          s.korean,
			ExampleSentence: s.example,
			OrderNum:        i,
		})
	}

	if err := wordRepo.BulkCreate(ctx, wordbookID, words); err != nil {
		log.Fatal().Err(err).Msg("Failed to insert words")
	}
	if err := wordbookService.SyncWordCount(ctx, wordbookID); err != nil {
		log.Fatal().Err(err).Msg("Failed to sync word count")
	}

	fmt.Printf("Seeded %d words into '%s'\n", len(words), title)
}

func findSuperAdmin(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) int {
	var id int
	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE role = 'super_admin' ORDER BY id LIMIT 1`).Scan(&id)
	if err != nil {
		log.Fatal().Err(err).Msg("No super admin found. Run cmd/create-admin first.")
	}
	return id
}
