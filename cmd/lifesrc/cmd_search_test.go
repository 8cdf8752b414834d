// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/lifesrc/services/solver/world"
)

func TestParseGeometry(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    world.Config
		wantErr bool
	}{
		{
			name: "width and height only",
			args: []string{"5", "5"},
			want: world.Config{Width: 5, Height: 5, Period: 1},
		},
		{
			name: "explicit period",
			args: []string{"3", "3", "2"},
			want: world.Config{Width: 3, Height: 3, Period: 2},
		},
		{
			name: "full spaceship arguments",
			args: []string{"16", "5", "3", "0", "1"},
			want: world.Config{Width: 16, Height: 5, Period: 3, Dx: 0, Dy: 1},
		},
		{
			name: "negative translation allowed",
			args: []string{"8", "8", "4", "-1", "0"},
			want: world.Config{Width: 8, Height: 8, Period: 4, Dx: -1},
		},
		{
			name:    "non-numeric argument",
			args:    []string{"5", "five"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseGeometry(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, world.ErrInvalidGeometry))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchMode(t *testing.T) {
	flagAll, flagRandom = false, false
	assert.Equal(t, "first", searchMode().String())

	flagAll = true
	assert.Equal(t, "all", searchMode().String())

	flagAll, flagRandom = false, true
	assert.Equal(t, "random", searchMode().String())
	flagRandom = false
}
