/*
Package memory provides the decision recorders.

Two backends implement ports.Recorder:

  - Linear: an append-only doubly linked list. O(1) mark, O(n) recall and replay.
  - Graph: a single root-to-leaf chain hung on a tree.Tree, ready to be merged
    into a unified tree.

Both compose a Lifecycle, which owns the Active/Complete state machine and the
duplicate-key index. A recorder is owned by one goroutine while Active; once
Complete it never changes and may be read concurrently.

	rec := memory.NewLinear()
	_ = rec.Mark("coin", domain.String("heads"))
	_ = rec.Mark("roll", domain.Number(4))
	_ = rec.Complete()
	token, _ := rec.Token() // lm:coin/sheads:roll/n4
*/
package memory
