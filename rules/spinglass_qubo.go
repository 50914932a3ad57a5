package rules

import (
	"fmt"

	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/ising"
	"github.com/crillab/reductions/problem"
)

// QUBOToSpinGlass maps a QUBO to a spin glass by substituting x = (s+1)/2.
// Both problems share their configurations; their objectives differ by a constant.
type QUBOToSpinGlass[V problem.Numeric] struct {
	src *ising.QUBO[V]
	tgt *ising.SpinGlass[float64]
}

// ReduceQUBOToSpinGlass returns the reduction of q to a spin glass.
func ReduceQUBOToSpinGlass[V problem.Numeric](q *ising.QUBO[V]) *QUBOToSpinGlass[V] {
	n := q.NbVars()
	fields := make([]float64, n)
	var interactions []ising.Interaction[float64]
	for i := 0; i < n; i++ {
		fields[i] += float64(q.At(i, i)) / 2
		for j := i + 1; j < n; j++ {
			qij := float64(q.At(i, j))
			if qij == 0 {
				continue
			}
			interactions = append(interactions, ising.Interaction[float64]{I: i, J: j, Coupling: qij / 4})
			fields[i] += qij / 4
			fields[j] += qij / 4
		}
	}
	tgt, err := ising.NewSpinGlass(interactions, fields)
	if err != nil {
		panic(fmt.Errorf("invalid spin glass: %w", err))
	}
	return &QUBOToSpinGlass[V]{src: q, tgt: tgt}
}

func (r *QUBOToSpinGlass[V]) Target() *ising.SpinGlass[float64] { return r.tgt }

func (r *QUBOToSpinGlass[V]) ExtractSolution(c config.Config) config.Config { return c.Clone() }

func (r *QUBOToSpinGlass[V]) SourceSize() problem.SizeProfile { return r.src.Size() }
func (r *QUBOToSpinGlass[V]) TargetSize() problem.SizeProfile { return r.tgt.Size() }

// SpinGlassToQUBO maps a spin glass to a QUBO by substituting s = 2x-1.
type SpinGlassToQUBO[V problem.Numeric] struct {
	src *ising.SpinGlass[V]
	tgt *ising.QUBO[V]
}

// ReduceSpinGlassToQUBO returns the reduction of sg to a QUBO.
func ReduceSpinGlassToQUBO[V problem.Numeric](sg *ising.SpinGlass[V]) *SpinGlassToQUBO[V] {
	n := sg.NbSpins()
	q := make([][]V, n)
	for i := range q {
		q[i] = make([]V, n)
	}
	for _, it := range sg.Interactions() {
		i, j := min(it.I, it.J), max(it.I, it.J)
		q[i][j] += 4 * it.Coupling
		q[i][i] -= 2 * it.Coupling
		q[j][j] -= 2 * it.Coupling
	}
	for i, h := range sg.Fields() {
		q[i][i] += 2 * h
	}
	tgt, err := ising.NewQUBO(q)
	if err != nil {
		panic(fmt.Errorf("invalid QUBO: %w", err))
	}
	return &SpinGlassToQUBO[V]{src: sg, tgt: tgt}
}

func (r *SpinGlassToQUBO[V]) Target() *ising.QUBO[V] { return r.tgt }

func (r *SpinGlassToQUBO[V]) ExtractSolution(c config.Config) config.Config { return c.Clone() }

func (r *SpinGlassToQUBO[V]) SourceSize() problem.SizeProfile { return r.src.Size() }
func (r *SpinGlassToQUBO[V]) TargetSize() problem.SizeProfile { return r.tgt.Size() }
