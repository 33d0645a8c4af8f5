// Package retrieval implements the hybrid retrieval stage of the query
// pipeline: embed the query, over-fetch candidate sections from the hybrid
// search, filter out deprecated and out-of-scope documents, re-rank with
// document authority breaking near-ties, and cap the result at the
// requested number of sources.
package retrieval
