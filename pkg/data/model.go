package data

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusOngoing   Status = "Ongoing"
	StatusCompleted Status = "Completed"
	StatusHiatus    Status = "Hiatus"
)

// ParseStatus accepts any casing of a known status.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ongoing":
		return StatusOngoing, nil
	case "completed":
		return StatusCompleted, nil
	case "hiatus":
		return StatusHiatus, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

// Entry is one readable title of the catalog.
type Entry struct {
	ID              string    `yaml:"id"`
	Title           string    `yaml:"title"`
	AltTitles       []string  `yaml:"alt_titles"`
	Genres          []string  `yaml:"genres"`
	Rating          float64   `yaml:"rating"`
	Status          Status    `yaml:"status"`
	Author          string    `yaml:"author"`
	Synopsis        string    `yaml:"synopsis"`
	CoverURL        string    `yaml:"cover_url"`
	Views           int64     `yaml:"views"`
	UpdatedAt       time.Time `yaml:"updated_at"`
	ChapterCount    int       `yaml:"chapters"`
	PagesPerChapter int       `yaml:"pages_per_chapter"`
	Featured        bool      `yaml:"featured"`
}

type Chapter struct {
	ID      string
	EntryID string
	Number  int
	Title   string
}

// Label renders a chapter the way lists show it.
func (c Chapter) Label() string {
	if c.Title == "" {
		return fmt.Sprintf("Ch. %d", c.Number)
	}
	return fmt.Sprintf("Ch. %d: %s", c.Number, c.Title)
}
