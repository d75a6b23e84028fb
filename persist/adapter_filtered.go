package persist

import "github.com/riftlabs/authcore/model"

// FilteredAdapter is implemented by adapters that can load a caller-
// supplied subset of policies (spec.md §4.3 "Filtered loading"). The
// filter's shape is adapter-defined; the core only needs IsFiltered to
// decide whether SavePolicy must be rejected.
type FilteredAdapter interface {
	Adapter
	// LoadFilteredPolicy reads only the rules matching filter into m.
	LoadFilteredPolicy(m model.Model, filter interface{}) error
	// IsFiltered reports whether the last load was filtered, per
	// spec.md §4.3: while true, SavePolicy must fail with
	// ErrorKind::CannotSaveFiltered to avoid a partial overwrite.
	IsFiltered() bool
}
