package mapping

import "strings"

// Classify turns two parsed header lines into a draft mapping. Main-field
// detection runs first and wins over category classification; remaining
// columns are tested against the category rules in priority order; columns
// nothing matched go to the itemCode category for manual triage.
func Classify(parsed ParsedHeaders) Config {
	config := EmptyConfig()
	config.ParsedHeaders = append([]string{}, parsed.HeaderCodes...)

	for i := 0; i < parsed.Len(); i++ {
		displayName := parsed.DisplayNames[i]
		headerCode := parsed.HeaderCodes[i]

		if displayName == "" && headerCode == "" {
			continue
		}

		if key, ok := matchMainField(displayName, headerCode); ok {
			if _, taken := config.MainFields[key]; !taken {
				config = config.SetMainField(key, MainField{
					ColumnIndex: i,
					HeaderCode:  headerCode,
					DisplayName: displayName,
				})
				continue
			}
		}

		category := matchCategory(displayName, headerCode)
		config = config.AddItem(category, i, headerCode, displayName)
	}

	return config
}

func matchMainField(displayName, headerCode string) (MainFieldKey, bool) {
	for _, rule := range mainFieldRules {
		if matchesAny(displayName, rule.Keywords) || matchesAny(headerCode, rule.Keywords) {
			return rule.Key, true
		}
	}
	return "", false
}

func matchCategory(displayName, headerCode string) Category {
	for _, rule := range categoryRules {
		if matchesAny(displayName, rule.Keywords) || matchesAny(headerCode, rule.Keywords) {
			return rule.Category
		}
	}
	return CategoryItemCode
}

func matchesAny(value string, keywords []string) bool {
	if value == "" {
		return false
	}
	lowered := strings.ToLower(value)
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
