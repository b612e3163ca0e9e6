package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/tahcohcat/ttsstudio/internal/database"
	"github.com/tahcohcat/ttsstudio/internal/models"
)

var ErrNotFound = errors.New("generation not found")

// HistoryService stores one row per saved audio artifact.
type HistoryService struct {
	db *database.DB
}

func NewHistoryService(db *database.DB) *HistoryService {
	return &HistoryService{db: db}
}

// Record inserts a generation.
func (s *HistoryService) Record(g *models.Generation) error {
	query := `
		INSERT INTO generations (id, file_name, path, voice, style, tone, punctuation, delivery, emphasis,
			speed, characters, words, size_bytes, created_at)
		VALUES (:id, :file_name, :path, :voice, :style, :tone, :punctuation, :delivery, :emphasis,
			:speed, :characters, :words, :size_bytes, :created_at)
	`
	if _, err := s.db.NamedExec(query, g); err != nil {
		return fmt.Errorf("failed to record generation: %w", err)
	}
	return nil
}

// Recent returns the newest generations first.
func (s *HistoryService) Recent(limit int) ([]models.Generation, error) {
	if limit <= 0 {
		limit = 20
	}
	var gens []models.Generation
	query := `SELECT * FROM generations ORDER BY created_at DESC, rowid DESC LIMIT ?`
	if err := s.db.Select(&gens, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	return gens, nil
}

// ByFileName looks up the record for a stored artifact.
func (s *HistoryService) ByFileName(name string) (*models.Generation, error) {
	var g models.Generation
	err := s.db.Get(&g, `SELECT * FROM generations WHERE file_name = ? ORDER BY created_at DESC LIMIT 1`, name)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get generation: %w", err)
	}
	return &g, nil
}

// Count returns the number of recorded generations.
func (s *HistoryService) Count() (int, error) {
	var n int
	err := s.db.Get(&n, `SELECT COUNT(*) FROM generations`)
	return n, err
}
