package catalog

import (
	"context"
	"errors"
	"strings"

	"respawn/internal/app/ports"
	"respawn/internal/domain/player"
)

var ErrInvalidRequest = errors.New("invalid catalog request")

type Request struct {
	// Category filters the listing when set.
	Category string
}

type Response struct {
	Objectives []player.Objective `json:"objectives"`
}

type UseCase struct {
	Provider ports.CatalogProvider
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	category := player.Category(strings.ToLower(strings.TrimSpace(req.Category)))
	if category != "" && !category.IsValid() {
		return Response{}, ErrInvalidRequest
	}
	c, err := u.Provider.Load(ctx)
	if err != nil {
		return Response{}, err
	}
	out := Response{Objectives: make([]player.Objective, 0, c.Len())}
	for _, o := range c.Entries() {
		if category != "" && o.Category != category {
			continue
		}
		out.Objectives = append(out.Objectives, o)
	}
	return out, nil
}
