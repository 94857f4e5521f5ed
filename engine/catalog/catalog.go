// Package catalog unifies the two lookup backends, the embedded in-memory
// index and the remote read API, behind one query contract so consumers
// never care where records live.
package catalog

import (
	"context"

	"github.com/BoilerWiseAI/boilerwise-mvp/engine/domain"
	"github.com/BoilerWiseAI/boilerwise-mvp/engine/index"
)

// Catalog is the read-only fault query contract. Enumeration queries return
// empty sequences on no match or backend failure; Fault is the only
// operation with a distinct not-found outcome (domain.ErrFaultNotFound).
type Catalog interface {
	Makers(ctx context.Context) []string
	Models(ctx context.Context, maker string) []string
	FaultCodes(ctx context.Context, maker, model string) []index.CodeEntry
	Fault(ctx context.Context, maker, model, code string) (domain.FaultRecord, error)
	AllFaults(ctx context.Context) []domain.FaultKey
}
