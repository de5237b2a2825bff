// Package batch splits bulk activity imports into fixed-size batches so a
// large legacy export or CSV dump is validated and folded a slice at a time,
// with progress reported after every batch and cancellation checked between
// batches.
package batch
