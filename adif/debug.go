package adif

import (
	"adifc/utils/debug"
)

// Dump writes record fields into tree writer, used for debug reports.
func (r *Record) Dump(tw *debug.TreeWriter, depth int) {
	for _, f := range r.fields {
		key := f.Name
		if len(f.Type) > 0 {
			key += ":" + f.Type
		}
		tw.KeyValue(depth, key, f.Value)
	}
}
