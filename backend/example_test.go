package backend_test

import (
	"context"
	"fmt"

	"github.com/crillab/reductions/backend"
	"github.com/crillab/reductions/sat"
)

func ExampleGophersat_SolveSAT() {
	s := sat.MustNew(2, sat.Clause{1, -2}, sat.Clause{2})
	model, ok, err := backend.NewGophersat().SolveSAT(context.Background(), s)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(ok, model)
	// Output: true [1 1]
}

func ExampleGini_MUS() {
	s := sat.MustNew(2, sat.Clause{1}, sat.Clause{1, 2}, sat.Clause{-1}, sat.Clause{2})
	mus, err := backend.NewGini().MUS(context.Background(), s)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(mus)
	// Output: [0 2]
}
