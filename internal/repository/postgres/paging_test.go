package postgres

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/member-search/internal/domain"
)

func TestDeriveTotal(t *testing.T) {
	cases := []struct {
		name    string
		offset  int64
		limit   int
		n       int
		policy  domain.EmptyPagePolicy
		want    derivation
		wantErr error
	}{
		{"first page under-full", 0, 10, 4, domain.EmptyPageCount, derivation{total: 4, derived: true, reason: reasonFirstPage}, nil},
		{"first page empty", 0, 10, 0, domain.EmptyPageReject, derivation{total: 0, derived: true, reason: reasonFirstPage}, nil},
		{"first page full", 0, 4, 4, domain.EmptyPageCount, derivation{}, nil},
		{"last page under-full", 3, 2, 1, domain.EmptyPageCount, derivation{total: 4, derived: true, reason: reasonLastPage}, nil},
		{"limit equals remaining rows", 2, 2, 2, domain.EmptyPageCount, derivation{}, nil},
		{"middle page full", 10, 10, 10, domain.EmptyPageOffset, derivation{}, nil},
		{"empty past offset, count", 8, 4, 0, domain.EmptyPageCount, derivation{}, nil},
		{"empty past offset, assume offset", 8, 4, 0, domain.EmptyPageOffset, derivation{total: 8, derived: true, reason: reasonEmptyOffset}, nil},
		{"empty past offset, reject", 8, 4, 0, domain.EmptyPageReject, derivation{}, domain.ErrAmbiguousCount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := deriveTotal(domain.PageRequest{Offset: tc.offset, Limit: tc.limit}, tc.n, tc.policy)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
