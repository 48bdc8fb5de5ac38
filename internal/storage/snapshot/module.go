package snapshot

import "go.uber.org/fx"

// Module exposes the embedded snapshot source to the fx graph.
var Module = fx.Provide(New)
