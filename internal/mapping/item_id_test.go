package mapping_test

import (
	"testing"

	"go-payslip/internal/mapping"

	"github.com/stretchr/testify/assert"
)

func TestGenerateItemID(t *testing.T) {
	assert.Equal(t, "income_ky21_2", mapping.GenerateItemID(mapping.CategoryIncome, "KY21", 2))
	assert.Equal(t, "total_ky99_3", mapping.GenerateItemID(mapping.CategoryTotal, "KY99", 3))
}

func TestGenerateItemID_SanitizesHeaderCode(t *testing.T) {
	// Every character outside [a-z0-9] becomes an underscore.
	assert.Equal(t, "deduction_a_b_1_5", mapping.GenerateItemID(mapping.CategoryDeduction, "A-b 1", 5))
	assert.Equal(t, "income____0", mapping.GenerateItemID(mapping.CategoryIncome, "支給", 0))
	assert.Equal(t, "attendance__7", mapping.GenerateItemID(mapping.CategoryAttendance, "", 7))
}

func TestGenerateItemID_Deterministic(t *testing.T) {
	first := mapping.GenerateItemID(mapping.CategoryIncome, "KY21", 2)
	second := mapping.GenerateItemID(mapping.CategoryIncome, "KY21", 2)
	assert.Equal(t, first, second)

	// Any differing input changes the id.
	assert.NotEqual(t, first, mapping.GenerateItemID(mapping.CategoryDeduction, "KY21", 2))
	assert.NotEqual(t, first, mapping.GenerateItemID(mapping.CategoryIncome, "KY22", 2))
	assert.NotEqual(t, first, mapping.GenerateItemID(mapping.CategoryIncome, "KY21", 3))
}
