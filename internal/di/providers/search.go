package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/inkwellapp/inkwell-server/internal/config"
	"github.com/inkwellapp/inkwell-server/internal/logger"
	"github.com/inkwellapp/inkwell-server/internal/search"
	"github.com/inkwellapp/inkwell-server/internal/service"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the bleve search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewIndex(search.Options{
		Path:   cfg.SearchIndexPath(),
		Logger: log.Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{Index: index}, nil
}

// ReindexIfEmpty rebuilds the search index from the catalog when the index
// has no documents, such as after a mapping version bump wiped it.
// Should be called after all services are wired.
func ReindexIfEmpty(i do.Injector) {
	bookService := do.MustInvoke[*service.BookService](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	docCount, err := indexHandle.DocumentCount()
	if err != nil {
		log.Warn("Could not read search index document count", "error", err)
		return
	}
	if docCount > 0 {
		return
	}

	count, err := bookService.ReindexBooks(context.Background())
	if err != nil {
		log.Warn("Startup reindex failed", "error", err)
		return
	}
	if count > 0 {
		log.Info("Startup reindex complete", "books", count)
	}
}
