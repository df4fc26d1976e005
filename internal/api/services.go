package api

import (
	"github.com/srkarthi1982/poem-studio/internal/service"
)

// Services groups the business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Collection *service.CollectionService
	Poem       *service.PoemService
	Search     *service.SearchService
}
