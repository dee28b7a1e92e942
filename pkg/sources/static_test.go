package sources

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedCatalog(t *testing.T) {
	s, err := NewStatic()
	require.NoError(t, err)

	entries, err := s.Catalog(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	assert.Equal(t, "Solo Leveling", entries[0].Title)
	for _, e := range entries {
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, DefaultPagesPerChapter, e.PagesPerChapter)
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	s, err := NewStatic()
	require.NoError(t, err)

	a, _ := s.Catalog(context.Background())
	a[0] = nil
	b, _ := s.Catalog(context.Background())
	assert.NotNil(t, b[0])
}

func TestChaptersAndPages(t *testing.T) {
	s, err := NewStatic()
	require.NoError(t, err)
	ctx := context.Background()

	chapters, err := s.Chapters(ctx, "5")
	require.NoError(t, err)
	require.Len(t, chapters, 139)
	assert.Equal(t, "5-ch-1", chapters[0].ID)
	assert.Equal(t, "To You, 2,000 Years From Now", chapters[0].Title)
	assert.Equal(t, "", chapters[1].Title)

	pages, err := s.Pages(ctx, chapters[0].ID)
	require.NoError(t, err)
	assert.Len(t, pages, 45)
	assert.Contains(t, pages[44], "page=45")

	_, err = s.Pages(ctx, "5-ch-140")
	assert.ErrorIs(t, err, ErrChapterNotFound)

	_, err = s.Chapters(ctx, "missing")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestParseChapterID(t *testing.T) {
	entryID, n, err := ParseChapterID("my-ch-title-ch-12")
	require.NoError(t, err)
	assert.Equal(t, "my-ch-title", entryID)
	assert.Equal(t, 12, n)

	for _, bad := range []string{"", "-ch-1", "5-ch-", "5-ch-0", "5-ch-x", "5"} {
		_, _, err := ParseChapterID(bad)
		assert.ErrorIs(t, err, ErrChapterNotFound, bad)
	}
}

func TestLoadStaticFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `
entries:
  - id: a
    title: Alpha
    chapters: 2
    pages_per_chapter: 3
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	s, err := LoadStatic(path)
	require.NoError(t, err)

	e, err := s.Entry(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, data.StatusOngoing, e.Status)

	pages, err := s.Pages(context.Background(), "a-ch-2")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://images.example.com/a-ch-2/1.jpg",
		"https://images.example.com/a-ch-2/2.jpg",
		"https://images.example.com/a-ch-2/3.jpg",
	}, pages)
}

func TestParseStaticValidation(t *testing.T) {
	tests := map[string]string{
		"missing id":    "entries:\n  - title: X\n",
		"missing title": "entries:\n  - id: x\n",
		"duplicate":     "entries:\n  - {id: x, title: X}\n  - {id: x, title: Y}\n",
		"bad status":    "entries:\n  - {id: x, title: X, status: gone}\n",
		"negative":      "entries:\n  - {id: x, title: X, chapters: -1}\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseStatic([]byte(doc))
			assert.Error(t, err)
		})
	}
}
