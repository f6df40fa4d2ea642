package sanitizer

func NormalizeStringSlice(items []string, normalizer func(string) string) []string {
	if len(items) == 0 {
		return []string{}
	}

	seen := make(map[string]bool)
	result := make([]string, 0, len(items))

	for _, item := range items {
		normalized := normalizer(item)

		if normalized == "" {
			continue
		}

		if seen[normalized] {
			continue
		}

		seen[normalized] = true
		result = append(result, normalized)
	}

	return result
}

// NormalizeSchedule canonicalizes weekday keys and their ranges.
func NormalizeSchedule(schedule map[string][]string) map[string][]string {
	if schedule == nil {
		return nil
	}
	out := make(map[string][]string, len(schedule))
	for day, ranges := range schedule {
		key := SanitizeWeekday(day)
		out[key] = append(out[key], NormalizeStringSlice(ranges, SanitizeRange)...)
	}
	for day, ranges := range out {
		out[day] = NormalizeStringSlice(ranges, SanitizeRange)
	}
	return out
}
