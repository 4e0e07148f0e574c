// Package catalog enumerates a resolved scope and classifies what it finds.
// A scan produces a consistent snapshot that is replaced wholesale on the
// next scan; sorting and filtering are views over the snapshot and never
// touch the disk again.
package catalog
