// Package model provides the data structures shared by the dataprep runner and its options.
// It defines the stage identities, the outcome of a freshness check and the lifecycle hooks
// a run option can attach to.
package model
