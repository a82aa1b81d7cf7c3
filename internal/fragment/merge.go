package fragment

import (
	"reflect"

	"github.com/agentpack-dev/agentpack/internal/item"
)

// Conflict records one leaf configuration path contributed differently
// by two items. The merged document already resolved it (later item
// wins); the conflict exists so the caller can decide policy.
type Conflict struct {
	// Path is the dotted leaf path, e.g. "mcpServers.shared.command".
	Path string

	// FirstItem contributed FirstValue earlier in resolution order;
	// SecondItem overrode it with SecondValue.
	FirstItem   string
	FirstValue  interface{}
	SecondItem  string
	SecondValue interface{}
}

// Merge deep-merges the config fragments of items, in the given order,
// into a single document. Nested mappings merge recursively. When two
// items set the same leaf to different values, the later item's value
// lands in the document and a Conflict is recorded; equal values merge
// silently. Items without a fragment contribute nothing, and an empty
// input yields an empty, well-formed document.
func Merge(items []*item.Item) (map[string]interface{}, []Conflict) {
	merged := make(map[string]interface{})
	owners := make(map[string]string) // leaf path -> contributing item
	var conflicts []Conflict

	for _, it := range items {
		if it.ConfigFragment == nil {
			continue
		}
		conflicts = mergeMap(merged, it.ConfigFragment, it.Name, "", owners, conflicts)
	}

	return merged, conflicts
}

// mergeMap merges src into dst, recording leaf ownership under prefix.
func mergeMap(dst, src map[string]interface{}, itemName, prefix string, owners map[string]string, conflicts []Conflict) []Conflict {
	for key, srcVal := range src {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		dstVal, exists := dst[key]
		if !exists {
			dst[key] = copyValue(srcVal)
			owners[path] = itemName
			if srcMap, ok := srcVal.(map[string]interface{}); ok {
				claimLeaves(srcMap, itemName, path, owners)
			}
			continue
		}

		dstMap, dstIsMap := dstVal.(map[string]interface{})
		srcMap, srcIsMap := srcVal.(map[string]interface{})
		if dstIsMap && srcIsMap {
			conflicts = mergeMap(dstMap, srcMap, itemName, path, owners, conflicts)
			continue
		}

		if reflect.DeepEqual(dstVal, srcVal) {
			// Same value from two items is not a conflict; the first
			// contributor keeps ownership.
			continue
		}

		conflicts = append(conflicts, Conflict{
			Path:        path,
			FirstItem:   owners[path],
			FirstValue:  dstVal,
			SecondItem:  itemName,
			SecondValue: copyValue(srcVal),
		})
		dst[key] = copyValue(srcVal)
		owners[path] = itemName
	}

	return conflicts
}

// claimLeaves records ownership for every leaf of a newly inserted subtree.
func claimLeaves(m map[string]interface{}, itemName, prefix string, owners map[string]string) {
	for key, val := range m {
		path := prefix + "." + key
		if sub, ok := val.(map[string]interface{}); ok {
			claimLeaves(sub, itemName, path, owners)
			continue
		}
		owners[path] = itemName
	}
}

// copyValue deep-copies mapping and sequence values so the merged
// document never aliases a caller's fragment.
func copyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, nested := range val {
			m[k] = copyValue(nested)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(val))
		for i, nested := range val {
			s[i] = copyValue(nested)
		}
		return s
	default:
		return val
	}
}
