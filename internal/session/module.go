package session

import "go.uber.org/fx"

// Module provides the session manager to the fx container.
var Module = fx.Provide(NewManager)
