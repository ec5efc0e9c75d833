// Package ordering reorders alternatives and objectives without rescoring
// them. Every strategy reduces to an index permutation applied through
// Permute, and every change is described by a Record the caller may journal.
package ordering

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned for a reorder that references an index
// outside the list being reordered.
var ErrIndexOutOfRange = errors.New("index out of range")

// Permute returns a new slice where out[i] = items[order[i]]. order must be a
// permutation of 0..len(items)-1.
func Permute[T any](items []T, order []int) []T {
	out := make([]T, len(order))
	for i, j := range order {
		out[i] = items[j]
	}
	return out
}

// permuteInPlace rewrites items through order, keeping the backing array so
// anything aliasing it sees the new order.
func permuteInPlace[T any](items []T, order []int) {
	copy(items, Permute(items, order))
}

func identity(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

func isIdentity(order []int) bool {
	for i, j := range order {
		if i != j {
			return false
		}
	}
	return true
}

// moveOrder is the permutation that removes the element at from and
// reinserts it at to.
func moveOrder(n, from, to int) ([]int, error) {
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, fmt.Errorf("move %d -> %d in list of %d: %w", from, to, n, ErrIndexOutOfRange)
	}
	order := identity(n)
	moved := order[from]
	order = append(order[:from], order[from+1:]...)
	order = append(order[:to], append([]int{moved}, order[to:]...)...)
	return order, nil
}

// orderByNames builds the permutation that arranges current into the order
// given by names. Names missing from current are skipped and elements of
// current missing from names keep their relative order at the end.
func orderByNames(current, names []string) []int {
	index := make(map[string]int, len(current))
	for i, name := range current {
		index[name] = i
	}
	used := make([]bool, len(current))
	order := make([]int, 0, len(current))
	for _, name := range names {
		if i, ok := index[name]; ok && !used[i] {
			order = append(order, i)
			used[i] = true
		}
	}
	for i := range current {
		if !used[i] {
			order = append(order, i)
		}
	}
	return order
}
