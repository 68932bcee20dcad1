package main

import (
	"testing"

	"impulse3d/internal/physics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCounts(t *testing.T) {
	counts, err := parseCounts("10, 200,3000")
	require.NoError(t, err)
	assert.Equal(t, []int{10, 200, 3000}, counts)

	_, err = parseCounts("10,x")
	assert.Error(t, err)
	_, err = parseCounts("-1")
	assert.Error(t, err)
}

func TestBroadPhaseAgreesOnRain(t *testing.T) {
	assert.True(t, testBroadPhase(300, 1, 1))
}

func TestSamePairsIgnoresOrder(t *testing.T) {
	w := spawnRain(3, 1)
	hs := w.Bodies.Handles()
	a := []physics.BroadPair{{A: hs[0], B: hs[1]}, {A: hs[1], B: hs[2]}}
	b := []physics.BroadPair{{A: hs[2], B: hs[1]}, {A: hs[0], B: hs[1]}}

	assert.True(t, samePairs(a, b))
	assert.False(t, samePairs(a, b[:1]))
	assert.False(t, samePairs(a, []physics.BroadPair{{A: hs[0], B: hs[2]}, {A: hs[0], B: hs[1]}}))
}
