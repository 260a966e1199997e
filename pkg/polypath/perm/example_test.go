package perm_test

import (
	"fmt"

	"github.com/matzehuels/polypath/pkg/polypath/perm"
)

func ExampleDecode() {
	// Every visit order of a square that starts at vertex 0
	for rank := 0; rank < perm.Factorial(3); rank++ {
		fmt.Println(rank, perm.Decode(rank, 4))
	}
	// Output:
	// 0 [0 1 2 3]
	// 1 [0 2 1 3]
	// 2 [0 3 1 2]
	// 3 [0 1 3 2]
	// 4 [0 2 3 1]
	// 5 [0 3 2 1]
}

func ExampleRank() {
	rank, _ := perm.Rank([]int{0, 3, 1, 2})
	fmt.Println(rank)
	// Output:
	// 2
}

func ExampleFactorial() {
	fmt.Println("4! =", perm.Factorial(4))
	fmt.Println("5! =", perm.Factorial(5))
	// Output:
	// 4! = 24
	// 5! = 120
}
