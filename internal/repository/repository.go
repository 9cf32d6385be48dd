package repository

import (
	"fmt"

	"github.com/yourusername/bet-journal/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Wager WagerRepository
}

// NewRepositories creates and returns the PostgreSQL repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Wager: NewPostgresWagerRepository(db),
	}, nil
}

// NewFileRepositories serves wagers from a YAML or JSON file
func NewFileRepositories(path string) (*Repositories, error) {
	wagers, err := NewFileWagerRepository(path)
	if err != nil {
		return nil, err
	}
	return &Repositories{Wager: wagers}, nil
}
