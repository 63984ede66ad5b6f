package perft_test

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/matryer/is"

	"perft/internal/perft"
	"perft/internal/tt"
)

func TestCountParallelThreadInvariance(t *testing.T) {
	is := is.New(t)
	// four root moves at (1, 0)
	root := toy{a: 1, b: 0, limit: 16}
	is.Equal(len(root.LegalMoves()), 4)

	for depth := 1; depth <= 8; depth++ {
		want := bruteForce(root, depth)
		for _, threads := range []int{1, 2, 3, 4, 7, 16} {
			got, err := perft.CountParallel(root, depth, nil, threads)
			is.NoErr(err)
			is.Equal(got, want)

			got, err = perft.CountParallel(root, depth, tt.New(1), threads)
			is.NoErr(err)
			is.Equal(got, want)
		}
	}
}

func TestCountParallelSharedTable(t *testing.T) {
	is := is.New(t)
	// raw fingerprints pile every worker onto the same slot
	table := tt.New(1)
	for _, raw := range []bool{false, true} {
		root := toy{a: 1, b: 0, limit: 18, raw: raw}
		want := perft.Count(root, 9, nil)
		for i := 0; i < 5; i++ {
			got, err := perft.CountParallel(root, 9, table, 4)
			is.NoErr(err)
			is.Equal(got, want)
		}
	}
}

func TestCountParallelInvalidThreads(t *testing.T) {
	is := is.New(t)
	_, err := perft.CountParallel(toy{limit: 10}, 3, nil, 0)
	is.True(errors.Is(err, perft.ErrInvalidThreads))

	_, err = perft.CountParallel(toy{limit: 10}, 3, nil, -2)
	is.True(errors.Is(err, perft.ErrInvalidThreads))

	_, err = perft.CountParallel(toy{limit: 10}, -1, nil, 2)
	is.True(errors.Is(err, perft.ErrInvalidDepth))
}

func TestCountParallelEdgeDepths(t *testing.T) {
	is := is.New(t)
	got, err := perft.CountParallel(toy{a: 5, b: 5, limit: 10}, 4, nil, 3)
	is.NoErr(err)
	is.Equal(got, uint64(0))

	got, err = perft.CountParallel(toy{limit: 10}, 0, nil, 3)
	is.NoErr(err)
	is.Equal(got, uint64(1))
}

func TestDivideParallelOrder(t *testing.T) {
	is := is.New(t)
	root := toy{a: 1, b: 0, limit: 16}
	seqCounts, seqTotal := perft.Divide(root, 6, nil, nil)

	for _, threads := range []int{1, 2, 3, 8} {
		var out bytes.Buffer
		counts, total, err := perft.DivideParallel(root, 6, tt.New(1), threads, &out)
		is.NoErr(err)
		is.Equal(total, seqTotal)
		is.Equal(counts, seqCounts)

		// lines may arrive in any order but each one is whole
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		is.Equal(len(lines), len(counts))
		want := map[string]bool{}
		for _, mc := range counts {
			want[mc.String()] = true
		}
		for _, line := range lines {
			is.True(want[line])
		}
	}
}

func TestConcurrentParallelRuns(t *testing.T) {
	root := toy{a: 1, b: 0, limit: 16}
	want := bruteForce(root, 7)
	table := tt.New(1)

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := perft.CountParallel(root, 7, table, 3)
			if err != nil {
				errs <- err
				return
			}
			if got != want {
				errs <- errors.New("count mismatch")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}
