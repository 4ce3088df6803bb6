package utils

import (
	"github.com/buger/jsonparser"
)

// CountResourceTypes tallies the resourceType of every entry in a serialized
// bundle. Entries without a well-formed resource.resourceType are skipped so
// a partially malformed bundle still yields counts for the rest.
func CountResourceTypes(bundleJSON []byte) map[string]int {
	counts := make(map[string]int)
	jsonparser.ArrayEach(bundleJSON, func(entry []byte, dataType jsonparser.ValueType, offset int, err error) {
		if err != nil || dataType != jsonparser.Object {
			return
		}
		resourceType, err := jsonparser.GetString(entry, "resource", "resourceType")
		if err != nil || resourceType == "" {
			return
		}
		counts[resourceType]++
	}, "entry")
	return counts
}

// CountBundleEntries returns the number of entries in a serialized bundle,
// zero when the entry array is absent or unreadable.
func CountBundleEntries(bundleJSON []byte) int {
	total := 0
	jsonparser.ArrayEach(bundleJSON, func(entry []byte, dataType jsonparser.ValueType, offset int, err error) {
		if err != nil {
			return
		}
		total++
	}, "entry")
	return total
}
