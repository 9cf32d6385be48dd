package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/bet-journal/internal/models"
	"gopkg.in/yaml.v3"
)

// Format is a wager file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks the encoding from a file extension
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported wager file extension %q", filepath.Ext(path))
	}
}

// FileWagerRepository implements WagerRepository over a YAML or JSON file holding
// a list of wagers. Every write rewrites the whole file.
type FileWagerRepository struct {
	mu     sync.RWMutex
	path   string
	format Format
	wagers []models.Wager
}

// NewFileWagerRepository loads wagers from path. A missing file starts empty.
func NewFileWagerRepository(path string) (*FileWagerRepository, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	repo := &FileWagerRepository{path: path, format: format}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return repo, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read wager file: %w", err)
	}

	wagers, err := DecodeWagers(data, format)
	if err != nil {
		return nil, err
	}
	for i := range wagers {
		if wagers[i].ID == uuid.Nil {
			wagers[i].ID = uuid.New()
		}
		if err := wagers[i].Validate(); err != nil {
			return nil, fmt.Errorf("wager %d: %w", i+1, err)
		}
	}
	repo.wagers = wagers
	return repo, nil
}

// DecodeWagers parses a list of wagers in the given format
func DecodeWagers(data []byte, format Format) ([]models.Wager, error) {
	var wagers []models.Wager
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &wagers); err != nil {
			return nil, fmt.Errorf("failed to parse wager YAML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &wagers); err != nil {
			return nil, fmt.Errorf("failed to parse wager JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported wager format %q", format)
	}
	if wagers == nil {
		wagers = []models.Wager{}
	}
	return wagers, nil
}

// EncodeWagers serialises wagers in the given format
func EncodeWagers(wagers []models.Wager, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(wagers); err != nil {
			return nil, fmt.Errorf("failed to encode wager YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode wager YAML: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(wagers, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode wager JSON: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported wager format %q", format)
	}
}

// All returns every wager in file order
func (r *FileWagerRepository) All() []models.Wager {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Wager(nil), r.wagers...)
}

// Create appends a wager and persists the file
func (r *FileWagerRepository) Create(_ context.Context, w *models.Wager) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if err := w.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	w.CreatedAt, w.UpdatedAt = now, now
	r.wagers = append(r.wagers, *w)
	if err := r.save(); err != nil {
		r.wagers = r.wagers[:len(r.wagers)-1]
		return err
	}
	return nil
}

// GetByID retrieves a wager by ID
func (r *FileWagerRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Wager, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.wagers {
		if r.wagers[i].ID == id {
			w := r.wagers[i]
			return &w, nil
		}
	}
	return nil, models.ErrNotFound
}

// ListByUser returns the user's wagers dated within [from, to], oldest first
func (r *FileWagerRepository) ListByUser(_ context.Context, userID uuid.UUID, from, to time.Time) ([]models.Wager, error) {
	return r.filter(func(w *models.Wager) bool {
		return w.UserID == userID && withinDates(w.BetDate, from, to)
	}), nil
}

// ListPending returns the user's wagers without a profit/loss, oldest first
func (r *FileWagerRepository) ListPending(_ context.Context, userID uuid.UUID) ([]models.Wager, error) {
	return r.filter(func(w *models.Wager) bool {
		return w.UserID == userID && w.ProfitLoss == nil
	}), nil
}

// UpdateProfitLoss stores a computed profit/loss and persists the file
func (r *FileWagerRepository) UpdateProfitLoss(_ context.Context, id uuid.UUID, profitLoss *float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.wagers {
		if r.wagers[i].ID != id {
			continue
		}
		previous := r.wagers[i]
		var pl *float64
		if profitLoss != nil {
			v := *profitLoss
			pl = &v
		}
		r.wagers[i].ProfitLoss = pl
		r.wagers[i].UpdatedAt = time.Now().UTC()
		if err := r.save(); err != nil {
			r.wagers[i] = previous
			return err
		}
		return nil
	}
	return models.ErrNotFound
}

// ListUserIDs returns the distinct user IDs in the file, sorted
func (r *FileWagerRepository) ListUserIDs(_ context.Context) ([]uuid.UUID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0)
	for _, w := range r.wagers {
		if !seen[w.UserID] {
			seen[w.UserID] = true
			ids = append(ids, w.UserID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

func (r *FileWagerRepository) filter(keep func(*models.Wager) bool) []models.Wager {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Wager, 0)
	for i := range r.wagers {
		if keep(&r.wagers[i]) {
			result = append(result, r.wagers[i])
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return dateOf(result[i].BetDate).Before(dateOf(result[j].BetDate))
	})
	return result
}

// save writes the file atomically; callers hold the write lock
func (r *FileWagerRepository) save() error {
	data, err := EncodeWagers(r.wagers, r.format)
	if err != nil {
		return err
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write wager file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace wager file: %w", err)
	}
	return nil
}

func withinDates(t, from, to time.Time) bool {
	d := dateOf(t)
	if !from.IsZero() && d.Before(dateOf(from)) {
		return false
	}
	if !to.IsZero() && d.After(dateOf(to)) {
		return false
	}
	return true
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
