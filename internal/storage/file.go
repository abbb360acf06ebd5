// Package storage provides file-based JSON persistence.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/finbuddy/finbuddy/internal/common"
	"github.com/finbuddy/finbuddy/internal/interfaces"
	"github.com/finbuddy/finbuddy/internal/models"
)

// FileStore provides file-based JSON storage for portfolios, news, and reports.
type FileStore struct {
	basePath string
	logger   *common.Logger
}

// subdirectories defines the directory layout under basePath.
var subdirectories = []string{"portfolios", "news", "reports"}

const articlesKey = "articles"

// NewFileStore creates a new FileStore and ensures all subdirectories exist.
func NewFileStore(logger *common.Logger, basePath string) (*FileStore, error) {
	fs := &FileStore{
		basePath: basePath,
		logger:   logger,
	}

	for _, sub := range subdirectories {
		dir := filepath.Join(fs.basePath, sub)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	logger.Debug().Str("path", basePath).Msg("FileStore opened")
	return fs, nil
}

// sanitizeKey makes a key safe for use as a filename.
// Replaces /, \, : with _ and collapses ".." to "_" to prevent path traversal.
func (fs *FileStore) sanitizeKey(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return r.Replace(key)
}

// filePath returns the full path for a key in a subdirectory.
func (fs *FileStore) filePath(sub, key string) string {
	return filepath.Join(fs.basePath, sub, fs.sanitizeKey(key)+".json")
}

// readJSON reads and unmarshals a JSON file.
func (fs *FileStore) readJSON(sub, key string, dest interface{}) error {
	path := fs.filePath(sub, key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("'%s' not found", key)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return fmt.Errorf("'%s' is empty", key)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// writeJSON marshals data to indented JSON and writes it atomically.
func (fs *FileStore) writeJSON(sub, key string, data interface{}) error {
	dir := filepath.Join(fs.basePath, sub)
	target := fs.filePath(sub, key)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonData = append(jsonData, '\n')

	// Atomic write: temp file in the same directory, then rename
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(jsonData); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// SavePortfolio persists a portfolio, stamping timestamps.
func (fs *FileStore) SavePortfolio(p *models.Portfolio) error {
	if p.ID == "" {
		return fmt.Errorf("portfolio ID is required")
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	return fs.writeJSON("portfolios", p.ID, p)
}

// GetPortfolio loads a portfolio by ID.
func (fs *FileStore) GetPortfolio(id string) (*models.Portfolio, error) {
	var p models.Portfolio
	if err := fs.readJSON("portfolios", id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPortfolios loads all stored portfolios, sorted by ID.
func (fs *FileStore) ListPortfolios() ([]*models.Portfolio, error) {
	dir := filepath.Join(fs.basePath, "portfolios")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read portfolios directory: %w", err)
	}

	var portfolios []*models.Portfolio
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		var p models.Portfolio
		if err := fs.readJSON("portfolios", strings.TrimSuffix(name, ".json"), &p); err != nil {
			fs.logger.Warn().Str("file", name).Err(err).Msg("Skipping unreadable portfolio")
			continue
		}
		portfolios = append(portfolios, &p)
	}

	sort.Slice(portfolios, func(i, j int) bool { return portfolios[i].ID < portfolios[j].ID })
	return portfolios, nil
}

// SaveArticles appends articles to the news archive, deduplicating by
// URL, and returns the number of newly stored articles.
func (fs *FileStore) SaveArticles(articles []models.NewsItem) (int, error) {
	var existing []models.NewsItem
	if err := fs.readJSON("news", articlesKey, &existing); err != nil {
		existing = nil
	}

	seen := make(map[string]bool, len(existing))
	for _, a := range existing {
		seen[a.URL] = true
	}

	added := 0
	for _, a := range articles {
		if a.URL == "" || seen[a.URL] {
			continue
		}
		seen[a.URL] = true
		existing = append(existing, a)
		added++
	}

	if added == 0 {
		return 0, nil
	}

	sort.SliceStable(existing, func(i, j int) bool {
		return existing[i].PublishedAt.After(existing[j].PublishedAt)
	})

	if err := fs.writeJSON("news", articlesKey, existing); err != nil {
		return 0, err
	}
	return added, nil
}

// RecentArticles returns up to limit stored articles, newest first.
func (fs *FileStore) RecentArticles(limit int) ([]models.NewsItem, error) {
	var articles []models.NewsItem
	if err := fs.readJSON("news", articlesKey, &articles); err != nil {
		return nil, nil
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})

	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles, nil
}

// SaveRiskReport caches the most recent risk report.
func (fs *FileStore) SaveRiskReport(report *models.RiskReport) error {
	return fs.writeJSON("reports", "risk_latest", report)
}

// GetRiskReport loads the most recent cached risk report.
func (fs *FileStore) GetRiskReport() (*models.RiskReport, error) {
	var report models.RiskReport
	if err := fs.readJSON("reports", "risk_latest", &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Ensure FileStore implements the storage interfaces
var (
	_ interfaces.NewsStore      = (*FileStore)(nil)
	_ interfaces.PortfolioStore = (*FileStore)(nil)
)
