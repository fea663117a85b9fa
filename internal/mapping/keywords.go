package mapping

// Keyword tables driving the automatic classification. They are data, not
// code: localizing or tuning the matching means editing these lists only.
// Japanese payroll exports are the primary input, English variants cover
// bilingual systems.

// mainFieldRule matches a column onto a single-valued main field. Main-field
// detection runs before category classification and a claimed column is
// excluded from every category list.
type mainFieldRule struct {
	Key      MainFieldKey
	Keywords []string
}

// Only the identifying main fields are auto-detected. Amount main fields
// (basic salary, totals, net) keep their keyword collisions with the income
// and total categories, so they are left to manual placement.
var mainFieldRules = []mainFieldRule{
	{Key: MainIdentificationCode, Keywords: []string{
		"識別コード", "識別cd", "identification code",
	}},
	{Key: MainEmployeeCode, Keywords: []string{
		"社員番号", "社員コード", "従業員番号", "従業員コード", "職員番号",
		"employee code", "employee no", "employee number", "emp no",
	}},
	{Key: MainEmployeeName, Keywords: []string{
		"氏名", "社員名", "従業員名",
		"employee name", "full name",
	}},
	{Key: MainDepartmentCode, Keywords: []string{
		"部門コード", "部署コード", "所属コード",
		"department code", "dept code",
	}},
	{Key: MainDepartmentName, Keywords: []string{
		"部門名", "部署名", "所属名",
		"department name", "dept name",
	}},
	{Key: MainPaymentDate, Keywords: []string{
		"支給日", "支払日", "支給年月日",
		"payment date", "pay date",
	}},
}

// categoryRule assigns a column to an item category. Rules are evaluated in
// slice order and the first match wins. The total rule sits first because
// total labels ("支給合計") embed income words and would otherwise be
// swallowed by the income rule.
type categoryRule struct {
	Category Category
	Keywords []string
}

var categoryRules = []categoryRule{
	{Category: CategoryTotal, Keywords: []string{
		"合計", "総額", "差引",
		"total", "gross", "net",
	}},
	{Category: CategoryIncome, Keywords: []string{
		"給", "手当", "賞与", "報酬", "支給",
		"salary", "allowance", "bonus", "income", "wage",
	}},
	{Category: CategoryDeduction, Keywords: []string{
		"控除", "保険", "税", "年金", "天引",
		"deduction", "insurance", "tax", "pension",
	}},
	{Category: CategoryAttendance, Keywords: []string{
		"出勤", "欠勤", "残業", "遅刻", "早退", "有給", "休暇", "日数", "時間",
		"attendance", "overtime", "absence", "days", "hours",
	}},
}
