// Package types defines the Experiment entity, the Store and RecordTable
// interfaces, the storage Config, and the standard error values for the
// labrec record-keeping system.
package types
