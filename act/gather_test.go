package act

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

func TestWaitAll_ResultsInSpawnOrder(t *testing.T) {
	constant := func(v any) ActorFunc {
		return func(self Self, args ...any) (any, error) {
			return v, nil
		}
	}

	results, err := WaitAll(constant("a"), constant("b"), constant("c"))

	assert.NilError(t, err)
	assert.Equal(t, len(results), 3)
	assert.Equal(t, results[0].Value, "a")
	assert.Equal(t, results[1].Value, "b")
	assert.Equal(t, results[2].Value, "c")
	for _, r := range results {
		assert.NilError(t, r.Err)
		assert.Assert(t, !r.Addr.IsNil())
	}
}

func TestWaitAll_FailedActorCarriesError(t *testing.T) {
	results, err := WaitAll(ActorFunc(four), ActorFunc(explode), ActorFunc(four))

	assert.NilError(t, err)
	assert.Equal(t, len(results), 3)

	assert.Equal(t, results[0].Value, float64(4))
	assert.Equal(t, results[2].Value, float64(4))

	var remErr *RemoteError
	assert.Assert(t, errors.As(results[1].Err, &remErr))
	assert.ErrorContains(t, results[1].Err, exceptionMarker)
	assert.Assert(t, results[1].Value == nil)
}

func TestWaitAll_Empty(t *testing.T) {
	results, err := WaitAll()

	assert.NilError(t, err)
	assert.Equal(t, len(results), 0)
}
