package coloring_test

import (
	"fmt"

	"github.com/matzehuels/rnadraw/pkg/coloring"
	"github.com/matzehuels/rnadraw/pkg/structure"
)

func ExampleResolve() {
	pm := structure.MustParse("((..))")
	colors, err := coloring.Resolve("GGAACC", pm, coloring.Inputs{
		Ranges:  "0:red",
		Default: "#cccccc",
	})
	if err != nil {
		panic(err)
	}
	for _, c := range colors {
		fmt.Print(c, " ")
	}
	fmt.Println()
	// Output: #ff0000 #cccccc #cccccc #cccccc #cccccc #cccccc
}
