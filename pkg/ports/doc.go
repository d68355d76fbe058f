/*
Package ports defines the interfaces shared by recorders and their consumers.

These interfaces decouple the merge engine, the token parser and the adapters
from any particular recording backend.

# Key Interfaces

  - Recorder: the Active/Complete lifecycle contract every backend honors.
  - Replayer: anything that can hand out a fresh replay sequence (what the merge engine consumes).
  - Sequence: a lazy, forward-only cursor over recorded decisions.
*/
package ports
