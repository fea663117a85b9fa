package mapping

import (
	"fmt"
	"time"
)

type Category string

const (
	CategoryIncome     Category = "income"
	CategoryDeduction  Category = "deduction"
	CategoryAttendance Category = "attendance"
	CategoryTotal      Category = "total"
	CategoryItemCode   Category = "itemCode"
)

// Categories lists every item category in its canonical order.
var Categories = []Category{
	CategoryIncome,
	CategoryDeduction,
	CategoryAttendance,
	CategoryTotal,
	CategoryItemCode,
}

type MainFieldKey string

const (
	MainIdentificationCode MainFieldKey = "identificationCode"
	MainEmployeeCode       MainFieldKey = "employeeCode"
	MainEmployeeName       MainFieldKey = "employeeName"
	MainDepartmentCode     MainFieldKey = "departmentCode"
	MainDepartmentName     MainFieldKey = "departmentName"
	MainPaymentDate        MainFieldKey = "paymentDate"
	MainBasicSalary        MainFieldKey = "basicSalary"
	MainTotalIncome        MainFieldKey = "totalIncome"
	MainTotalDeduction     MainFieldKey = "totalDeduction"
	MainNetAmount          MainFieldKey = "netAmount"
)

type MainField struct {
	ColumnIndex int    `json:"columnIndex"`
	HeaderCode  string `json:"headerCode"`
	DisplayName string `json:"displayName"`
}

type Item struct {
	ID            string `json:"id"`
	ColumnIndex   int    `json:"columnIndex"`
	HeaderCode    string `json:"headerCode"`
	DisplayName   string `json:"displayName"`
	Visible       bool   `json:"visible"`
	ShowZeroValue bool   `json:"showZeroValue"`
}

// Config is the full column mapping of one company. It is a value: every
// manual operation returns a new Config and never mutates the receiver, so a
// config handed to a running ingestion stays a point-in-time snapshot.
type Config struct {
	MainFields      map[MainFieldKey]MainField `json:"mainFields"`
	IncomeItems     []Item                     `json:"incomeItems"`
	DeductionItems  []Item                     `json:"deductionItems"`
	AttendanceItems []Item                     `json:"attendanceItems"`
	TotalItems      []Item                     `json:"totalItems"`
	ItemCodeItems   []Item                     `json:"itemCodeItems"`
	ParsedHeaders   []string                   `json:"parsedHeaders"`
	UpdatedAt       time.Time                  `json:"updatedAt"`
}

// EmptyConfig is the skeleton returned for a company that has not configured
// a mapping yet.
func EmptyConfig() Config {
	return Config{
		MainFields:      map[MainFieldKey]MainField{},
		IncomeItems:     []Item{},
		DeductionItems:  []Item{},
		AttendanceItems: []Item{},
		TotalItems:      []Item{},
		ItemCodeItems:   []Item{},
		ParsedHeaders:   []string{},
	}
}

func (c Config) Items(category Category) []Item {
	switch category {
	case CategoryIncome:
		return c.IncomeItems
	case CategoryDeduction:
		return c.DeductionItems
	case CategoryAttendance:
		return c.AttendanceItems
	case CategoryTotal:
		return c.TotalItems
	case CategoryItemCode:
		return c.ItemCodeItems
	default:
		return nil
	}
}

func (c Config) withItems(category Category, items []Item) Config {
	next := c.clone()
	switch category {
	case CategoryIncome:
		next.IncomeItems = items
	case CategoryDeduction:
		next.DeductionItems = items
	case CategoryAttendance:
		next.AttendanceItems = items
	case CategoryTotal:
		next.TotalItems = items
	case CategoryItemCode:
		next.ItemCodeItems = items
	}
	return next
}

func (c Config) clone() Config {
	next := c

	next.MainFields = make(map[MainFieldKey]MainField, len(c.MainFields))
	for k, v := range c.MainFields {
		next.MainFields[k] = v
	}

	next.IncomeItems = append([]Item{}, c.IncomeItems...)
	next.DeductionItems = append([]Item{}, c.DeductionItems...)
	next.AttendanceItems = append([]Item{}, c.AttendanceItems...)
	next.TotalItems = append([]Item{}, c.TotalItems...)
	next.ItemCodeItems = append([]Item{}, c.ItemCodeItems...)
	next.ParsedHeaders = append([]string{}, c.ParsedHeaders...)

	return next
}

// AddItem places an unused header column into a category. The id is derived,
// never supplied by the caller.
func (c Config) AddItem(category Category, columnIndex int, headerCode, displayName string) Config {
	item := Item{
		ID:          GenerateItemID(category, headerCode, columnIndex),
		ColumnIndex: columnIndex,
		HeaderCode:  headerCode,
		DisplayName: displayName,
		Visible:     true,
	}
	return c.withItems(category, append(append([]Item{}, c.Items(category)...), item))
}

func (c Config) RemoveItem(category Category, id string) Config {
	items := make([]Item, 0, len(c.Items(category)))
	for _, item := range c.Items(category) {
		if item.ID != id {
			items = append(items, item)
		}
	}
	return c.withItems(category, items)
}

func (c Config) RenameItem(category Category, id, displayName string) Config {
	return c.updateItem(category, id, func(item *Item) {
		item.DisplayName = displayName
	})
}

func (c Config) SetItemVisible(category Category, id string, visible bool) Config {
	return c.updateItem(category, id, func(item *Item) {
		item.Visible = visible
	})
}

func (c Config) SetItemShowZero(category Category, id string, showZero bool) Config {
	return c.updateItem(category, id, func(item *Item) {
		item.ShowZeroValue = showZero
	})
}

// MoveItem transfers an item to another category. columnIndex and headerCode
// are preserved; the id is regenerated for the target category so it stays
// consistent with GenerateItemID.
func (c Config) MoveItem(from, to Category, id string) Config {
	var moved *Item
	for _, item := range c.Items(from) {
		if item.ID == id {
			copied := item
			moved = &copied
			break
		}
	}
	if moved == nil || from == to {
		return c.clone()
	}

	moved.ID = GenerateItemID(to, moved.HeaderCode, moved.ColumnIndex)

	next := c.RemoveItem(from, id)
	return next.withItems(to, append(append([]Item{}, next.Items(to)...), *moved))
}

func (c Config) SetMainField(key MainFieldKey, field MainField) Config {
	next := c.clone()
	next.MainFields[key] = field
	return next
}

func (c Config) ClearMainField(key MainFieldKey) Config {
	next := c.clone()
	delete(next.MainFields, key)
	return next
}

func (c Config) updateItem(category Category, id string, mutate func(*Item)) Config {
	items := append([]Item{}, c.Items(category)...)
	for i := range items {
		if items[i].ID == id {
			mutate(&items[i])
		}
	}
	return c.withItems(category, items)
}

// Normalize recomputes every item id from its own (category, headerCode,
// columnIndex). Saving the same mapping twice therefore converges to the same
// ids instead of minting new ones.
func (c Config) Normalize() Config {
	next := c.clone()
	for _, category := range Categories {
		items := append([]Item{}, next.Items(category)...)
		for i := range items {
			items[i].ID = GenerateItemID(category, items[i].HeaderCode, items[i].ColumnIndex)
		}
		next = next.withItems(category, items)
	}
	return next
}

// Validate rejects mappings that an ingestion run cannot work with: the two
// identifier main fields must be present and no two visible columns may point
// at the same CSV index.
func (c Config) Validate() error {
	if _, ok := c.MainFields[MainIdentificationCode]; !ok {
		return ErrMissingIdentificationCode
	}
	if _, ok := c.MainFields[MainEmployeeCode]; !ok {
		return ErrMissingEmployeeCode
	}

	seen := map[int]string{}

	for key, field := range c.MainFields {
		label := field.DisplayName
		if label == "" {
			label = string(key)
		}
		if prev, dup := seen[field.ColumnIndex]; dup {
			return duplicateColumnError(prev, label, field.ColumnIndex)
		}
		seen[field.ColumnIndex] = label
	}

	for _, category := range Categories {
		for _, item := range c.Items(category) {
			if !item.Visible {
				continue
			}
			label := item.DisplayName
			if label == "" {
				label = item.ID
			}
			if prev, dup := seen[item.ColumnIndex]; dup {
				return duplicateColumnError(prev, label, item.ColumnIndex)
			}
			seen[item.ColumnIndex] = label
		}
	}

	return nil
}

func duplicateColumnError(first, second string, columnIndex int) error {
	return fmt.Errorf("%w: %q and %q both use column %d", ErrDuplicateColumn, first, second, columnIndex)
}
