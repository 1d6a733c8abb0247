// Package batch drains the queue sequentially, compressing one source at a
// time and recording per-item outcomes. A failed item never aborts the run;
// it is marked failed and the loop moves on.
package batch
