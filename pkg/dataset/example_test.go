package dataset_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/stackchart/pkg/dataset"
)

func ExampleReadCSV() {
	ds, err := dataset.ReadCSV(strings.NewReader("month,sales\nJan,10\nFeb,12px\nMar,n/a\n"))
	if err != nil {
		panic(err)
	}

	acc := dataset.Keys{XKey: "month", YKey: "sales"}
	for _, r := range ds {
		fmt.Println(acc.X(r), acc.Y(r).Float())
	}
	// Output:
	// Jan 10
	// Feb 12
	// Mar 0
}
