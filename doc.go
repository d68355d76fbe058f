/*
Package etchmory records the decisions made during an execution cycle so the
cycle can be replayed, summarized as a deterministic token, and compared with
other cycles.

# Concept

A recorder is created Active, receives decisions through Mark, and is locked
by Complete. Once complete it can Recall a decision, Replay all of them in
order and derive a Token. Completed recordings can be folded into a unified
tree, which shares every common decision prefix and branches where histories
diverge. The unified tree serializes to JSON and back without loss.

# Backends

  - "lm" (memory.Linear): a doubly linked list.
  - "gm" (memory.Graph): a single chain on a generic tree; the default.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/etchmory"
		"github.com/aretw0/etchmory/pkg/domain"
	)

	func main() {
		eng, err := etchmory.New()
		if err != nil {
			log.Fatal(err)
		}

		tree := eng.NewUnified()
		for _, second := range []string{"left", "right"} {
			rec := eng.NewRecorder()
			_ = rec.Mark("start", domain.String("ok"))
			_ = rec.Mark("turn", domain.String(second))
			if err := rec.Complete(); err != nil {
				log.Fatal(err)
			}
			if err := tree.Merge(rec); err != nil {
				log.Fatal(err)
			}
		}

		fmt.Println(tree.Display(false))
	}
*/
package etchmory
