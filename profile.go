package configdir

// resolveProfile computes a file's effective value: the default profile's
// section deep-merged with the active profile's section, active winning on
// conflicting keys. A missing section behaves as an empty mapping, so a file
// with neither profile resolves to an empty tree. Neither input section is
// mutated; the result is a fresh tree.
func resolveProfile(parsed Tree, defaultProfile, activeProfile string) Tree {
	merged := deepMerge(make(Tree), profileSection(parsed, defaultProfile))
	return deepMerge(merged, profileSection(parsed, activeProfile))
}

func profileSection(parsed Tree, name string) Tree {
	if parsed == nil || name == "" {
		return nil
	}
	section, _ := parsed[name].(map[string]any)
	return section
}

// deepMerge recursively merges src into dst and returns dst. Mapping values
// merge key by key; scalars and sequences are replaced wholesale. Values
// copied out of src are cloned so the result shares no structure with it.
func deepMerge(dst, src Tree) Tree {
	if dst == nil {
		dst = make(Tree)
	}
	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = deepMerge(dstMap, srcMap)
			continue
		}
		dst[key] = cloneValue(srcVal)
	}
	return dst
}
