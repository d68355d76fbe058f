/*
Package domain contains the core value types shared by every recorder and by the
merge engine.

It is kept free of I/O and of any dependency beyond the standard library.

# Key Entities

  - Value: the outcome of a decision (string, number or boolean).
  - Decision: an immutable key/value pair identifying one decision.
  - Error: the structured failure type; its Kind drives errors.Is matching.
  - RecorderHooks / MergeHooks: observability callbacks.
*/
package domain
