// Package pipeline provides a framework for executing crawl run steps
// in sequence.
//
// A run moves through up to three stages: crawling the quote listing
// pages, archiving the results to the run history database, and
// exporting the CSV files and summaries. Each stage is a Step that
// receives the shared report and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function
// calls because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for long-running crawls
// 4. Step ordering encodes the output guarantee: nothing is written
// unless the crawl succeeded
package pipeline
