package sources

import (
	"context"

	"github.com/kerbaras/mangaverse/pkg/data"
)

// Source provides the catalog and the page references of its chapters.
type Source interface {
	Catalog(ctx context.Context) ([]*data.Entry, error)
	Entry(ctx context.Context, id string) (*data.Entry, error)
	Chapters(ctx context.Context, entryID string) ([]data.Chapter, error)
	Pages(ctx context.Context, chapterID string) ([]string, error)
}
