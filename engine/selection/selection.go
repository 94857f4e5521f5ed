// Package selection models the maker -> model -> code dependent selection
// that drives hierarchical dropdowns. Downstream options are always derived
// fresh from the current upstream selection; in-flight refreshes are tagged
// with the selection generation they were issued for, and a slow response
// for a superseded selection is discarded instead of overwriting newer
// state.
package selection

import (
	"context"
	"sync"

	"github.com/BoilerWiseAI/boilerwise-mvp/engine/catalog"
	"github.com/BoilerWiseAI/boilerwise-mvp/engine/index"
	"github.com/BoilerWiseAI/boilerwise-mvp/pkg/fn"
)

// Selection is the three-level pick state; each field is optional until
// chosen.
type Selection struct {
	Maker string
	Model string
	Code  string
}

// Options holds the dropdown choices derived from a Selection.
type Options struct {
	Makers []string
	Models []string
	Codes  []index.CodeEntry
}

// Controller owns a Selection and keeps its Options consistent with it.
// Methods are safe for concurrent use; the catalog queries they trigger run
// on the calling goroutine, so callers wanting async refresh run Set* in
// their own goroutines.
type Controller struct {
	cat catalog.Catalog

	mu   sync.Mutex
	gen  uint64
	sel  Selection
	opts Options
}

// NewController creates a Controller over the given catalog backend.
func NewController(cat catalog.Catalog) *Controller {
	return &Controller{cat: cat}
}

// Current returns the selection and its derived options.
func (c *Controller) Current() (Selection, Options) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel, c.opts
}

// Refresh re-derives all options for the current selection.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	gen, sel := c.gen, c.sel
	c.mu.Unlock()
	c.derive(ctx, gen, sel)
}

// SetMaker picks a maker and clears the downstream selection.
func (c *Controller) SetMaker(ctx context.Context, maker string) {
	c.mu.Lock()
	c.gen++
	c.sel = Selection{Maker: maker}
	gen, sel := c.gen, c.sel
	c.mu.Unlock()
	c.derive(ctx, gen, sel)
}

// SetModel picks a model under the current maker and clears the code.
func (c *Controller) SetModel(ctx context.Context, model string) {
	c.mu.Lock()
	c.gen++
	c.sel.Model = model
	c.sel.Code = ""
	gen, sel := c.gen, c.sel
	c.mu.Unlock()
	c.derive(ctx, gen, sel)
}

// SetCode picks a code. No downstream options exist, so nothing is fetched.
func (c *Controller) SetCode(code string) {
	c.mu.Lock()
	c.sel.Code = code
	c.mu.Unlock()
}

// derive computes options for sel and commits them only if the selection
// has not moved on since gen was issued.
func (c *Controller) derive(ctx context.Context, gen uint64, sel Selection) {
	lists := fn.FanOut(
		func() []string { return c.cat.Makers(ctx) },
		func() []string { return c.cat.Models(ctx, sel.Maker) },
	)

	var codes []index.CodeEntry
	if sel.Maker != "" && sel.Model != "" {
		codes = c.cat.FaultCodes(ctx, sel.Maker, sel.Model)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return // stale response for a superseded selection
	}
	c.opts = Options{Makers: lists[0], Models: lists[1], Codes: codes}
}
