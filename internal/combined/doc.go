// Package combined provides interaction benchmarks that test multiple
// components together.
//
// These benchmarks are more representative of real-world performance
// than isolated micro-benchmarks, as they capture the cumulative cost
// and any interactions between components: the combiner's
// cancel-and-tick loop, producer/consumer pipelines over each priority
// queue variant, and the graveyard ring that carries retired elements
// back to the combiner.
package combined
