package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/kerbaras/mangaverse/pkg/reader"
	"github.com/kerbaras/mangaverse/pkg/search"
	"github.com/kerbaras/mangaverse/pkg/sources"
	"go.uber.org/zap"
)

// CatalogStats summarizes the catalog for the admin dashboard.
type CatalogStats struct {
	Entries  int
	Indexed  int
	Searched int
	Chapters int
	Genres   int
	Views    int64
	ByStatus map[data.Status]int
}

// MangaController answers catalog questions from a source, a search
// matcher and the browse index.
type MangaController struct {
	source sources.Source
	logger *zap.Logger

	mu      sync.RWMutex
	entries []*data.Entry
	matcher *search.Matcher
	browse  *data.BrowseIndex
}

func NewMangaController(ctx context.Context, source sources.Source, logger *zap.Logger) (*MangaController, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &MangaController{source: source, logger: logger}

	entries, err := source.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	browse, err := data.OpenBrowseIndex(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to build browse index: %w", err)
	}

	c.entries = entries
	c.matcher = search.NewMatcher(entries)
	c.browse = browse
	logger.Info("Catalog loaded", zap.Int("entries", len(entries)))
	return c, nil
}

func (c *MangaController) Entries() []*data.Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*data.Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Featured lists the entries flagged for the home carousel, or the whole
// catalog when none are.
func (c *MangaController) Featured() []*data.Entry {
	all := c.Entries()
	var featured []*data.Entry
	for _, e := range all {
		if e.Featured {
			featured = append(featured, e)
		}
	}
	if len(featured) == 0 {
		return all
	}
	return featured
}

func (c *MangaController) Search(query string) search.Result {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res := c.matcher.Match(query)
	c.logger.Debug("Search", zap.String("query", res.Query), zap.Bool("active", res.Active), zap.Int("matches", len(res.Entries)))
	return res
}

func (c *MangaController) Browse(ctx context.Context, q data.BrowseQuery) ([]*data.Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.browse.Browse(ctx, q)
}

func (c *MangaController) Genres(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.browse.Genres(ctx)
}

func (c *MangaController) GetManga(ctx context.Context, id string) (*data.Entry, error) {
	if id == "" {
		return nil, fmt.Errorf("manga id cannot be empty")
	}
	return c.source.Entry(ctx, id)
}

func (c *MangaController) Chapters(ctx context.Context, entryID string) ([]data.Chapter, error) {
	return c.source.Chapters(ctx, entryID)
}

// OpenChapter starts a fresh reader session for a chapter.
func (c *MangaController) OpenChapter(ctx context.Context, chapterID string) (*reader.Session, error) {
	pages, err := c.source.Pages(ctx, chapterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pages: %w", err)
	}
	session, err := reader.NewSession(chapterID, pages)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("Chapter opened", zap.String("chapter", chapterID), zap.Int("pages", len(pages)))
	return session, nil
}

// RebuildCache reloads the catalog and rebuilds the derived indexes.
func (c *MangaController) RebuildCache(ctx context.Context) error {
	entries, err := c.source.Catalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload catalog: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.browse.Rebuild(ctx, entries); err != nil {
		return err
	}
	c.entries = entries
	c.matcher = search.NewMatcher(entries)
	c.logger.Info("Catalog cache rebuilt", zap.Int("entries", len(entries)))
	return nil
}

func (c *MangaController) Stats(ctx context.Context) (CatalogStats, error) {
	genres, err := c.Genres(ctx)
	if err != nil {
		return CatalogStats{}, err
	}
	c.mu.RLock()
	indexed, err := c.browse.Count(ctx)
	searched := c.matcher.Len()
	c.mu.RUnlock()
	if err != nil {
		return CatalogStats{}, err
	}
	stats := CatalogStats{Indexed: indexed, Searched: searched, Genres: len(genres), ByStatus: make(map[data.Status]int)}
	for _, e := range c.Entries() {
		stats.Entries++
		stats.Chapters += e.ChapterCount
		stats.Views += e.Views
		stats.ByStatus[e.Status]++
	}
	return stats, nil
}

func (c *MangaController) Close() error {
	return c.browse.Close()
}
