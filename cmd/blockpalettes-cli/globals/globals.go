package globals

import (
	"context"

	"blockpalettes/internal/components/assert"
	"blockpalettes/pkg/blockpalettes"
)

type key struct{}

type Value struct {
	Client *blockpalettes.Client
}

func Set(ctx context.Context, value *Value) context.Context {
	return context.WithValue(ctx, key{}, value)
}

// Get panics if the root command did not call Set.
func Get(ctx context.Context) *Value {
	value := ctx.Value(key{})
	assert.NotNil(value, "cli globals")
	return value.(*Value)
}
