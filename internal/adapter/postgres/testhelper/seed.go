package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with a placeholder password hash.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		Username:     "testuser-" + suffix,
		PasswordHash: "$2a$10$test-hash-" + suffix,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, username, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.Username, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert: %v", err)
	}

	return user
}

// SeedHistoryEntry creates a history entry with a valid 4-card set for userID.
// createdAt controls list ordering in tests.
func SeedHistoryEntry(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, topic string, createdAt time.Time) domain.HistoryEntry {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	entry := domain.HistoryEntry{
		ID:     uuid.New(),
		UserID: userID,
		Topic:  topic,
		Cards: domain.CardSet{
			{Title: "Definition " + suffix, Content: "The **core idea** in one line."},
			{Title: "Analogy " + suffix, Content: "Like a **postbox** for values."},
			{Title: "Usage " + suffix, Content: "Reach for it when **sharing state**."},
			{Title: "Confusion " + suffix, Content: "Often mixed up with **copies**."},
		},
		Settings:  domain.GenerationSettings{}.WithDefaults(),
		CreatedAt: createdAt.UTC().Truncate(time.Microsecond),
	}

	cards, err := json.Marshal(entry.Cards)
	if err != nil {
		t.Fatalf("testhelper: marshal cards: %v", err)
	}
	settings, err := json.Marshal(entry.Settings)
	if err != nil {
		t.Fatalf("testhelper: marshal settings: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO history_entries (id, user_id, topic, cards, settings, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.UserID, entry.Topic, cards, settings, entry.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedHistoryEntry insert: %v", err)
	}

	return entry
}

// SeedSavedCard creates a saved card for userID.
func SeedSavedCard(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, title, content string) domain.SavedCard {
	t.Helper()
	ctx := context.Background()

	card := domain.SavedCard{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      title,
		Content:    content,
		Topic:      "seed-topic",
		ColorClass: "card-color-1",
		SavedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO saved_cards (id, user_id, title, content, topic, color_class, saved_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		card.ID, card.UserID, card.Title, card.Content, card.Topic, card.ColorClass, card.SavedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSavedCard insert: %v", err)
	}

	return card
}
