package sources

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kerbaras/mangaverse/pkg/data"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

const (
	DefaultPagesPerChapter = 45
	defaultPageURL         = "https://images.example.com/%s/%d.jpg"
)

var (
	ErrEntryNotFound   = errors.New("entry not found")
	ErrChapterNotFound = errors.New("chapter not found")
)

type catalogFile struct {
	PageURL       string                    `yaml:"page_url"`
	ChapterTitles map[string]map[int]string `yaml:"chapter_titles"`
	Entries       []*data.Entry             `yaml:"entries"`
}

// Static serves a catalog that is fully known at start-up.
type Static struct {
	pageURL       string
	chapterTitles map[string]map[int]string
	entries       []*data.Entry
	byID          map[string]*data.Entry
}

// NewStatic returns the catalog compiled into the binary.
func NewStatic() (*Static, error) {
	return ParseStatic(embeddedCatalog)
}

// LoadStatic reads a catalog file, falling back to the embedded catalog
// when path is empty.
func LoadStatic(path string) (*Static, error) {
	if path == "" {
		return NewStatic()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return ParseStatic(raw)
}

func ParseStatic(raw []byte) (*Static, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	s := &Static{
		pageURL:       f.PageURL,
		chapterTitles: f.ChapterTitles,
		entries:       f.Entries,
		byID:          make(map[string]*data.Entry, len(f.Entries)),
	}
	if s.pageURL == "" {
		s.pageURL = defaultPageURL
	}

	for i, e := range f.Entries {
		if e == nil || e.ID == "" {
			return nil, fmt.Errorf("catalog entry %d has no id", i)
		}
		if e.Title == "" {
			return nil, fmt.Errorf("catalog entry %s has no title", e.ID)
		}
		if _, dup := s.byID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog entry %s", e.ID)
		}
		if e.ChapterCount < 0 {
			return nil, fmt.Errorf("catalog entry %s has a negative chapter count", e.ID)
		}
		if e.Status == "" {
			e.Status = data.StatusOngoing
		}
		if e.PagesPerChapter <= 0 {
			e.PagesPerChapter = DefaultPagesPerChapter
		}
		s.byID[e.ID] = e
	}

	return s, nil
}

func (s *Static) Catalog(ctx context.Context) ([]*data.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]*data.Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *Static) Entry(_ context.Context, id string) (*data.Entry, error) {
	e, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	return e, nil
}

func (s *Static) Chapters(ctx context.Context, entryID string) ([]data.Chapter, error) {
	e, err := s.Entry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	titles := s.chapterTitles[e.ID]
	chapters := make([]data.Chapter, e.ChapterCount)
	for i := range chapters {
		n := i + 1
		chapters[i] = data.Chapter{
			ID:      ChapterID(e.ID, n),
			EntryID: e.ID,
			Number:  n,
			Title:   titles[n],
		}
	}
	return chapters, nil
}

func (s *Static) Pages(ctx context.Context, chapterID string) ([]string, error) {
	entryID, n, err := ParseChapterID(chapterID)
	if err != nil {
		return nil, err
	}
	e, err := s.Entry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if n > e.ChapterCount {
		return nil, fmt.Errorf("%w: %s", ErrChapterNotFound, chapterID)
	}

	pages := make([]string, e.PagesPerChapter)
	for i := range pages {
		pages[i] = fmt.Sprintf(s.pageURL, chapterID, i+1)
	}
	return pages, nil
}

func ChapterID(entryID string, number int) string {
	return fmt.Sprintf("%s-ch-%d", entryID, number)
}

func ParseChapterID(chapterID string) (string, int, error) {
	i := strings.LastIndex(chapterID, "-ch-")
	if i <= 0 {
		return "", 0, fmt.Errorf("%w: malformed id %q", ErrChapterNotFound, chapterID)
	}
	n, err := strconv.Atoi(chapterID[i+len("-ch-"):])
	if err != nil || n < 1 {
		return "", 0, fmt.Errorf("%w: malformed id %q", ErrChapterNotFound, chapterID)
	}
	return chapterID[:i], n, nil
}
