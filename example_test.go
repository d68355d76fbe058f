package etchmory_test

import (
	"fmt"
	"log"

	"github.com/aretw0/etchmory"
	"github.com/aretw0/etchmory/pkg/domain"
	"github.com/aretw0/etchmory/pkg/memory"
)

// ExampleNew demonstrates recording two cycles and merging them.
func ExampleNew() {
	eng, err := etchmory.New()
	if err != nil {
		log.Fatal(err)
	}

	tree := eng.NewUnified()
	for _, turn := range []string{"left", "right"} {
		rec := eng.NewRecorder()
		_ = rec.Mark("start", domain.String("ok"))
		_ = rec.Mark("turn", domain.String(turn))
		if err := rec.Complete(); err != nil {
			log.Fatal(err)
		}
		if err := tree.Merge(rec); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Println(tree.Display(false))
	// Output:
	// ⏺
	//   start = ok
	//     turn = left
	//     turn = right
}

// ExampleEngine_ParseToken demonstrates replaying a linear token.
func ExampleEngine_ParseToken() {
	eng, err := etchmory.New(etchmory.WithBackend(memory.LinearTag))
	if err != nil {
		log.Fatal(err)
	}

	rec, err := eng.ParseToken("lm:coin/sheads:roll/n4")
	if err != nil {
		log.Fatal(err)
	}

	roll, _ := rec.Recall("roll")
	fmt.Println(roll.Kind(), roll)
	// Output: number 4
}
