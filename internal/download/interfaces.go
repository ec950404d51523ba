package download

import (
	"context"

	"github.com/clipdl/clipd/internal/extract"
	"github.com/clipdl/clipd/internal/model"
)

// Engine is the extraction/fetch capability the service drives. The
// production implementation is the extract.Gateway; tests substitute fakes.
type Engine interface {
	Extract(ctx context.Context, url string, opts extract.Options) (*model.Metadata, error)
	Fetch(ctx context.Context, url string, plan model.DownloadPlan) error
}
