// Package main provides the pytensor CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HelloBroBro/pytensor/compile"
	"github.com/HelloBroBro/pytensor/graph"
	"github.com/HelloBroBro/pytensor/internal/backend/cpu"
	"github.com/HelloBroBro/pytensor/internal/debugprint"
	"github.com/HelloBroBro/pytensor/internal/fgraph"
	igraph "github.com/HelloBroBro/pytensor/internal/graph"
	"github.com/HelloBroBro/pytensor/internal/rewrite"
	"github.com/HelloBroBro/pytensor/tensor"
)

// Version is the current pytensor CLI version.
var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "pytensor",
	Short:   "pytensor - symbolic tensor expression compiler",
	Long:    `pytensor builds symbolic tensor expressions, rewrites them into simpler equivalent graphs, and compiles them into reusable functions.`,
	Version: Version,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Compile and run a sample expression",
	Long:  `Build sigmoid(dot(x, w) + b) symbolically, compile it, and evaluate it on sample 2x2 inputs.`,
	RunE:  runDemo,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the demo expression before and after rewriting",
	RunE:  runInspect,
}

func main() {
	rootCmd.AddCommand(demoCmd, inspectCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// demoExpression builds sigmoid(dot(x, w) + b) over float64 matrices.
func demoExpression() (x, w, b, out *graph.Variable, err error) {
	x = graph.Matrix(tensor.Float64, "x")
	w = graph.Matrix(tensor.Float64, "w")
	b = graph.Row(tensor.Float64, "b")

	xw, err := graph.Dot(x, w)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	z, err := graph.Add(xw, b)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	out, err = graph.Sigmoid(z)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return x, w, b, out, nil
}

func runDemo(cmd *cobra.Command, args []string) error {
	x, w, b, out, err := demoExpression()
	if err != nil {
		return err
	}
	fmt.Println("expression:", graph.Str(out))

	fn, err := compile.Compile([]*graph.Variable{x, w, b}, []*graph.Variable{out}, compile.FastRun())
	if err != nil {
		return err
	}
	fmt.Printf("compiled to %d thunk(s)\n", fn.NumThunks())

	xv, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	if err != nil {
		return err
	}
	wv, err := tensor.FromSlice([]float64{0.5, -0.5, 0.25, 0.75}, tensor.Shape{2, 2})
	if err != nil {
		return err
	}
	bv, err := tensor.FromSlice([]float64{0.1, -0.1}, tensor.Shape{1, 2})
	if err != nil {
		return err
	}

	outs, err := fn.Call(xv, wv, bv)
	if err != nil {
		return err
	}
	fmt.Println("result:", outs[0])
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	x, w, b, out, err := demoExpression()
	if err != nil {
		return err
	}
	fmt.Println("before:", debugprint.Str(out))

	fg, err := fgraph.New([]*igraph.Variable{x, w, b}, []*igraph.Variable{out})
	if err != nil {
		return err
	}
	engine := rewrite.NewEngine(compile.DefaultMode().RewriteRoundsLimit, inspectPasses()...)
	result := engine.Run(fg)
	if result.RuleErrors != nil {
		return result.RuleErrors
	}
	fmt.Printf("rewriting: %d round(s), fixed point: %t\n", result.Rounds, result.FixedPoint)
	fmt.Println("after: ", debugprint.Str(fg.Outputs()[0]))

	fmt.Println("schedule:")
	schedule := fg.Toposort()
	for i, node := range schedule {
		fmt.Printf("  %2d  %s\n", i, node)
	}
	return nil
}

// inspectPasses mirrors the fast-run compilation pipeline.
func inspectPasses() []rewrite.Rewriter {
	passes := []rewrite.Rewriter{rewrite.Lowering()}
	passes = append(passes, rewrite.AlgebraicSimplifications()...)
	passes = append(passes, rewrite.ConstantFolding(cpu.New()), rewrite.CSE(), rewrite.ElemwiseFusion())
	return passes
}
