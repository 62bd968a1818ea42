package config

// mergeProfile creates a new Profile by applying override on top of base.
// The merge rules are:
//   - String scalars: use override if non-empty; otherwise keep base.
//   - Int scalars: use override if non-zero; otherwise keep base.
//   - Bool scalars: always use override (false is a valid override value).
//   - *bool scalars: use override if non-nil; otherwise keep base.
//   - Slice fields (Include, Exclude): use override slice if it is non-nil
//     and non-empty; otherwise keep base slice.
//
// Neither base nor override is mutated. A fresh Profile is always returned.
// The Extends field is always cleared on the returned profile.
func mergeProfile(base, override *Profile) *Profile {
	return &Profile{
		Include: mergeSlice(base.Include, override.Include),
		Exclude: mergeSlice(base.Exclude, override.Exclude),

		MaxDepth:           mergeInt(base.MaxDepth, override.MaxDepth),
		IncludeHidden:      override.IncludeHidden,
		RespectIgnoreFiles: mergeBoolPtr(base.RespectIgnoreFiles, override.RespectIgnoreFiles),
		FollowSymlinks:     override.FollowSymlinks,
		GitTrackedOnly:     override.GitTrackedOnly,

		IndentWidth:   mergeInt(base.IndentWidth, override.IndentWidth),
		MaxLineWidth:  mergeInt(base.MaxLineWidth, override.MaxLineWidth),
		ExplicitStart: override.ExplicitStart,

		WorkerCount:   mergeInt(base.WorkerCount, override.WorkerCount),
		MmapThreshold: mergeString(base.MmapThreshold, override.MmapThreshold),
		InPlace:       override.InPlace,
		DryRun:        override.DryRun,
		Verbose:       override.Verbose,
		Quiet:         override.Quiet,
		UseColor:      mergeBoolPtr(base.UseColor, override.UseColor),

		// Extends is always cleared after merge (profile is fully resolved)
		Extends: nil,
	}
}

// mergeString returns override if non-empty, otherwise base.
func mergeString(base, override string) string {
	if override != "" {
		return override
	}
	return base
}

// mergeInt returns override if non-zero, otherwise base.
func mergeInt(base, override int) int {
	if override != 0 {
		return override
	}
	return base
}

// mergeBoolPtr returns override if non-nil, otherwise base.
func mergeBoolPtr(base, override *bool) *bool {
	if override != nil {
		return override
	}
	return base
}

// mergeSlice returns a copy of override if it is non-nil and non-empty,
// otherwise returns a copy of base. Copies are made at the boundary to
// prevent callers from sharing slice backing arrays.
func mergeSlice(base, override []string) []string {
	if len(override) > 0 {
		result := make([]string, len(override))
		copy(result, override)
		return result
	}
	if len(base) > 0 {
		result := make([]string, len(base))
		copy(result, base)
		return result
	}
	return nil
}
