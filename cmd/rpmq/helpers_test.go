package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/josevnz/rpmq/pkg/types"
)

func TestFormatRow(t *testing.T) {
	tests := []struct {
		name string
		pkg  types.Package
		want string
	}{
		{
			name: "comma-grouped size",
			pkg:  types.Package{Name: "glibc-common", Version: "2.38", Size: 1543208},
			want: "glibc-common-2.38: 1,543,208",
		},
		{
			name: "small size has no separators",
			pkg:  types.Package{Name: "tiny", Version: "0.1", Size: 42},
			want: "tiny-0.1: 42",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatRow(tt.pkg))
		})
	}
}
