package ports

import (
	"context"

	"respawn/internal/domain/player"
)

type CatalogProvider interface {
	Load(ctx context.Context) (player.Catalog, error)
}
