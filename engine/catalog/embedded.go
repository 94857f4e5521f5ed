package catalog

import (
	"context"

	"github.com/BoilerWiseAI/boilerwise-mvp/engine/dataset"
	"github.com/BoilerWiseAI/boilerwise-mvp/engine/domain"
	"github.com/BoilerWiseAI/boilerwise-mvp/engine/index"
)

// Embedded serves the catalog contract from a dataset store's in-memory
// index. Each call reads the store's current generation, so a reload swap
// is picked up without coordination.
type Embedded struct {
	store *dataset.Store
}

var _ Catalog = (*Embedded)(nil)

// NewEmbedded wraps a dataset store.
func NewEmbedded(store *dataset.Store) *Embedded {
	return &Embedded{store: store}
}

func (e *Embedded) Makers(context.Context) []string {
	return e.store.Index().Makers()
}

func (e *Embedded) Models(_ context.Context, maker string) []string {
	return e.store.Index().Models(maker)
}

func (e *Embedded) FaultCodes(_ context.Context, maker, model string) []index.CodeEntry {
	return e.store.Index().FaultCodes(maker, model)
}

func (e *Embedded) Fault(_ context.Context, maker, model, code string) (domain.FaultRecord, error) {
	return e.store.Index().Fault(maker, model, code)
}

func (e *Embedded) AllFaults(context.Context) []domain.FaultKey {
	return e.store.Index().Keys()
}

// Filter exposes the index's conjunction filter. Filtering is an
// embedded-mode operation; remote callers use the search endpoint instead.
func (e *Embedded) Filter(_ context.Context, maker, model, codeQuery string) []domain.FaultRecord {
	return e.store.Index().Filter(maker, model, codeQuery)
}
