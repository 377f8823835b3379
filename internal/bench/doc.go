// Package bench measures priority queue variants under a mixed
// insert/retrieve workload.
//
// For every thread count from 1 to Params.Threads, and for every run, a
// fresh queue is created and that many workers are started. Each worker
// performs Params.Pushes inserts of random integers and Params.Pops
// retrieves, choosing between the two at random in proportion to how many
// of each it has left. Retrieves that find the queue empty still count as
// operations. The wall time of the whole batch is averaged over the runs.
//
// Reports can be printed as an aligned table, as the
// "Execution time per thread for the X:" line format understood by the
// plotting script, or as JSON.
package bench
