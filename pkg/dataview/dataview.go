// Package dataview re-exports the table service for applications that do not
// want to import components directly.
package dataview

import (
	core "github.com/goliatone/go-dataview/components/dataview"
)

// Service exposes the underlying components/dataview.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// TableDefinition re-export for convenience.
type TableDefinition = core.TableDefinition

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}
