// Package memory provides in-process implementations of the storage
// interfaces defined in the internal/store package. Data lives only for the
// lifetime of the process.
package memory
