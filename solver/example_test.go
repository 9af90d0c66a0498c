package solver_test

import (
	"fmt"

	"github.com/go-air/gini/z"

	"github.com/katalvlaran/graphsat/solver"
)

// ExampleGraph_Reaches asks for a path while two edges are forced off and
// reads back the witness.
func ExampleGraph_Reaches() {
	s := solver.New()
	g, _ := s.NewGraph()
	for i := 0; i < 4; i++ {
		_, _ = g.AddNode()
	}
	e01, _ := g.AddEdge(0, 1)
	e02, _ := g.AddEdge(0, 2)
	e13, _ := g.AddEdge(1, 3)
	_, _ = g.AddEdge(1, 2)
	_, _ = g.AddEdge(2, 3)

	r, _ := g.Reaches(0, 3)
	ok, _ := s.Solve(r, e02.Not(), e13.Not())
	nodes, _ := g.GetPathNodes(r)
	fmt.Println(ok, nodes, s.Value(e01))

	ok, _ = s.Solve(r, e01.Not(), e02.Not())
	fmt.Println(ok)
	// Output:
	// true [0 1 2 3] true
	// false
}

// ExampleGraph_MaximumFlow reads the maximum flow as a bit-vector.
func ExampleGraph_MaximumFlow() {
	s := solver.New()
	g, _ := s.NewGraph(solver.WithBitwidth(4))
	for i := 0; i < 3; i++ {
		_, _ = g.AddNode()
	}
	a, _ := g.AddEdge(0, 1, solver.WithWeight(5))
	b, _ := g.AddEdge(1, 2, solver.WithWeight(3))

	flow, _ := g.MaximumFlow(0, 2)
	ok, _ := s.Solve(a, b)
	v, _ := flow.Value()
	fmt.Println(ok, v)
	// Output: true 3
}

// ExampleGraph_Acyclic forbids every directed cycle of a triangle.
func ExampleGraph_Acyclic() {
	s := solver.New()
	g, _ := s.NewGraph()
	for i := 0; i < 3; i++ {
		_, _ = g.AddNode()
	}
	var assume []z.Lit
	for i := 0; i < 3; i++ {
		e, _ := g.AddEdge(solver.NodeID(i), solver.NodeID((i+1)%3))
		assume = append(assume, e)
	}

	ok, _ := s.Solve(append(assume, g.Acyclic(true))...)
	fmt.Println(ok)
	// Output: false
}
