package mapping

import (
	"fmt"
	"strings"
)

// GenerateItemID builds the stable identity of a mapped column. The same
// (category, headerCode, columnIndex) always yields the same id, which is what
// lets repeated saves of an unchanged mapping converge instead of minting new
// ids, and keeps previously persisted payslip item keys resolvable.
//
// Do not change the normalization rule without a migration plan for ids that
// are already persisted.
func GenerateItemID(category Category, headerCode string, columnIndex int) string {
	return fmt.Sprintf("%s_%s_%d", category, sanitizeHeaderCode(headerCode), columnIndex)
}

// sanitizeHeaderCode lower-cases the code and replaces every character outside
// [a-z0-9] with an underscore.
func sanitizeHeaderCode(code string) string {
	lowered := strings.ToLower(code)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
