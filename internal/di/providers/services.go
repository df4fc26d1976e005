package providers

import (
	"github.com/samber/do/v2"

	"github.com/srkarthi1982/poem-studio/internal/logger"
	"github.com/srkarthi1982/poem-studio/internal/service"
)

// ProvideCollectionService provides the collection service.
func ProvideCollectionService(i do.Injector) (*service.CollectionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCollectionService(storeHandle.Store, log.Logger), nil
}

// ProvidePoemService provides the poem service.
func ProvidePoemService(i do.Injector) (*service.PoemService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	searchService := do.MustInvoke[*service.SearchService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPoemService(storeHandle.Store, searchService, log.Logger), nil
}
