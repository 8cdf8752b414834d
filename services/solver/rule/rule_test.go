// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package rule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "conway", input: "B3/S23", want: "B3/S23"},
		{name: "lowercase", input: "b3/s23", want: "B3/S23"},
		{name: "highlife", input: "B36/S23", want: "B36/S23"},
		{name: "seeds", input: "B2/S", want: "B2/S"},
		{name: "survival first", input: "S23/B3", want: "B3/S23"},
		{name: "bare digits", input: "23/3", want: "B3/S23"},
		{name: "day and night", input: "B3678/S34678", want: "B3678/S34678"},
		{name: "whitespace", input: "  B3/S23  ", want: "B3/S23"},
		{name: "empty", input: "", wantErr: true},
		{name: "no slash", input: "B3S23", wantErr: true},
		{name: "two slashes", input: "B3/S23/", wantErr: true},
		{name: "digit nine", input: "B9/S23", wantErr: true},
		{name: "letters in digits", input: "B3a/S23", wantErr: true},
		{name: "b0 rejected", input: "B0/S8", wantErr: true},
		{name: "b0 bare rejected", input: "8/0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidRule),
					"error should wrap ErrInvalidRule, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.String())
		})
	}
}

func TestNext_Conway(t *testing.T) {
	r := Conway()

	for alive := 0; alive <= 8; alive++ {
		wantDead := Dead
		if alive == 3 {
			wantDead = Alive
		}
		assert.Equal(t, wantDead, r.Next(Dead, alive), "dead cell, %d neighbors", alive)

		wantAlive := Dead
		if alive == 2 || alive == 3 {
			wantAlive = Alive
		}
		assert.Equal(t, wantAlive, r.Next(Alive, alive), "live cell, %d neighbors", alive)
	}
}

func TestPossibleSuccessors(t *testing.T) {
	r := Conway()

	t.Run("fully known is a singleton", func(t *testing.T) {
		for _, self := range []State{Dead, Alive} {
			for alive := 0; alive <= 8; alive++ {
				ss := r.PossibleSuccessors(self, alive, 0)
				st, ok := ss.Single()
				require.True(t, ok, "self=%v alive=%d", self, alive)
				assert.Equal(t, r.Next(self, alive), st)
			}
		}
	})

	t.Run("unknowns widen the answer", func(t *testing.T) {
		// Dead cell, 2 live, 1 unknown: 2 or 3 live -> stays dead or
		// is born depending on how the unknown falls.
		ss := r.PossibleSuccessors(Dead, 2, 1)
		assert.True(t, ss.Contains(Dead))
		assert.True(t, ss.Contains(Alive))

		// Dead cell, 0 live, 1 unknown: at most 1 live neighbor can
		// never reach B3.
		ss = r.PossibleSuccessors(Dead, 0, 1)
		st, ok := ss.Single()
		require.True(t, ok)
		assert.Equal(t, Dead, st)

		// Live cell, 4 live already: overcrowded regardless.
		ss = r.PossibleSuccessors(Alive, 4, 4)
		st, ok = ss.Single()
		require.True(t, ok)
		assert.Equal(t, Dead, st)
	})

	t.Run("unknown self unions both rows", func(t *testing.T) {
		// 3 live, 0 unknown: dead self births, live self survives.
		ss := r.PossibleSuccessors(Unknown, 3, 0)
		st, ok := ss.Single()
		require.True(t, ok)
		assert.Equal(t, Alive, st)

		// 2 live, 0 unknown: dead stays dead, live survives.
		ss = r.PossibleSuccessors(Unknown, 2, 0)
		assert.True(t, ss.Contains(Dead))
		assert.True(t, ss.Contains(Alive))
	})
}

func TestImpliedSelf(t *testing.T) {
	r := Conway()

	// 2 live, 0 unknown, successor alive: only survival explains it.
	ss := r.ImpliedSelf(Alive, 2, 0)
	st, ok := ss.Single()
	require.True(t, ok)
	assert.Equal(t, Alive, st)

	// 3 live, 0 unknown, successor alive: birth or survival.
	ss = r.ImpliedSelf(Alive, 3, 0)
	assert.True(t, ss.Contains(Dead))
	assert.True(t, ss.Contains(Alive))

	// 3 live, 0 unknown, successor dead: impossible either way.
	ss = r.ImpliedSelf(Dead, 3, 0)
	assert.True(t, ss.Empty())
}

func TestForcedUnknownNeighbor(t *testing.T) {
	r := Conway()

	t.Run("last unknown forced alive", func(t *testing.T) {
		// Dead cell, 2 live, 1 unknown, successor alive: the unknown
		// must supply the third neighbor.
		st, ok := r.ForcedUnknownNeighbor(Dead, Alive, 2, 1)
		require.True(t, ok)
		assert.Equal(t, Alive, st)
	})

	t.Run("last unknown forced dead", func(t *testing.T) {
		// Live cell, 3 live, 1 unknown, successor alive: a fourth
		// live neighbor would kill it.
		st, ok := r.ForcedUnknownNeighbor(Alive, Alive, 3, 1)
		require.True(t, ok)
		assert.Equal(t, Dead, st)
	})

	t.Run("all unknowns forced together", func(t *testing.T) {
		// Dead cell, 0 live, 3 unknown, successor alive: all three
		// unknowns must be alive to reach B3.
		st, ok := r.ForcedUnknownNeighbor(Dead, Alive, 0, 3)
		require.True(t, ok)
		assert.Equal(t, Alive, st)
	})

	t.Run("unforced when counts have slack", func(t *testing.T) {
		// Dead cell, 2 live, 2 unknown, successor dead: 0 or 2 live
		// unknowns both work, so neither cell is individually forced.
		_, ok := r.ForcedUnknownNeighbor(Dead, Dead, 2, 2)
		assert.False(t, ok)
	})
}

// TestImplicationTable_MatchesEnumeration cross-checks every table
// entry against a direct enumeration of completions, independently of
// the table construction.
func TestImplicationTable_MatchesEnumeration(t *testing.T) {
	for _, ruleStr := range []string{"B3/S23", "B36/S23", "B2/S", "B3678/S34678"} {
		r := MustParse(ruleStr)
		t.Run(ruleStr, func(t *testing.T) {
			states := []State{Unknown, Dead, Alive}
			for _, self := range states {
				for _, succ := range states {
					for alive := 0; alive <= 8; alive++ {
						for unknown := 0; alive+unknown <= 8; unknown++ {
							checkEntry(t, r, self, succ, alive, unknown)
						}
					}
				}
			}
		})
	}
}

func checkEntry(t *testing.T, r *Rule, self, succ State, alive, unknown int) {
	t.Helper()

	selfChoices := []State{self}
	if self == Unknown {
		selfChoices = []State{Dead, Alive}
	}

	feasible := false
	selfSeen := map[State]bool{}
	kMin, kMax := unknown+1, -1
	for _, s := range selfChoices {
		for k := 0; k <= unknown; k++ {
			out := r.Next(s, alive+k)
			if succ != Unknown && out != succ {
				continue
			}
			feasible = true
			selfSeen[s] = true
			if k < kMin {
				kMin = k
			}
			if k > kMax {
				kMax = k
			}
		}
	}

	imp := r.Implication(self, succ, alive, unknown)
	if !feasible {
		assert.True(t, imp.Conflict,
			"self=%v succ=%v a=%d u=%d: want conflict", self, succ, alive, unknown)
		return
	}
	require.False(t, imp.Conflict,
		"self=%v succ=%v a=%d u=%d: unexpected conflict", self, succ, alive, unknown)

	if self == Unknown && len(selfSeen) == 1 {
		require.NotEqual(t, Unknown, imp.Self,
			"self=%v succ=%v a=%d u=%d: missed self deduction", self, succ, alive, unknown)
		for s := range selfSeen {
			assert.Equal(t, s, imp.Self)
		}
	}
	if imp.Self != Unknown {
		assert.Equal(t, Unknown, self, "self implication on a known self")
		assert.Len(t, selfSeen, 1)
	}

	if imp.Nbhd != Unknown {
		require.Greater(t, unknown, 0)
		require.Equal(t, kMin, kMax)
		if imp.Nbhd == Dead {
			assert.Equal(t, 0, kMin)
		} else {
			assert.Equal(t, unknown, kMin)
		}
	}
}
