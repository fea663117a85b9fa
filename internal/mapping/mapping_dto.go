package mapping

import "time"

type ParseHeadersRequest struct {
	DisplayLine string `json:"display_line"`
	CodeLine    string `json:"code_line"`
}

type MainFieldPayload struct {
	ColumnIndex int    `json:"columnIndex"`
	HeaderCode  string `json:"headerCode"`
	DisplayName string `json:"displayName"`
}

type ItemPayload struct {
	ID            string `json:"id"`
	ColumnIndex   int    `json:"columnIndex"`
	HeaderCode    string `json:"headerCode"`
	DisplayName   string `json:"displayName"`
	Visible       bool   `json:"visible"`
	ShowZeroValue bool   `json:"showZeroValue"`
}

// SaveMappingRequest is the persisted wire shape of a mapping config. Item
// ids in the payload are advisory: the service recomputes them on save.
type SaveMappingRequest struct {
	MainFields      map[string]MainFieldPayload `json:"mainFields"`
	IncomeItems     []ItemPayload               `json:"incomeItems"`
	DeductionItems  []ItemPayload               `json:"deductionItems"`
	AttendanceItems []ItemPayload               `json:"attendanceItems"`
	TotalItems      []ItemPayload               `json:"totalItems"`
	ItemCodeItems   []ItemPayload               `json:"itemCodeItems"`
	ParsedHeaders   []string                    `json:"parsedHeaders"`
}

type MappingResponse struct {
	MainFields      map[string]MainFieldPayload `json:"mainFields"`
	IncomeItems     []ItemPayload               `json:"incomeItems"`
	DeductionItems  []ItemPayload               `json:"deductionItems"`
	AttendanceItems []ItemPayload               `json:"attendanceItems"`
	TotalItems      []ItemPayload               `json:"totalItems"`
	ItemCodeItems   []ItemPayload               `json:"itemCodeItems"`
	ParsedHeaders   []string                    `json:"parsedHeaders"`
	UpdatedAt       time.Time                   `json:"updatedAt"`
}

func (r SaveMappingRequest) toConfig() Config {
	config := EmptyConfig()

	for key, field := range r.MainFields {
		config.MainFields[MainFieldKey(key)] = MainField(field)
	}

	config.IncomeItems = toItems(r.IncomeItems)
	config.DeductionItems = toItems(r.DeductionItems)
	config.AttendanceItems = toItems(r.AttendanceItems)
	config.TotalItems = toItems(r.TotalItems)
	config.ItemCodeItems = toItems(r.ItemCodeItems)
	config.ParsedHeaders = append(config.ParsedHeaders, r.ParsedHeaders...)

	return config
}

func toItems(payloads []ItemPayload) []Item {
	items := make([]Item, len(payloads))
	for i, p := range payloads {
		items[i] = Item(p)
	}
	return items
}

func mapToResponse(config Config) MappingResponse {
	resp := MappingResponse{
		MainFields:      make(map[string]MainFieldPayload, len(config.MainFields)),
		IncomeItems:     fromItems(config.IncomeItems),
		DeductionItems:  fromItems(config.DeductionItems),
		AttendanceItems: fromItems(config.AttendanceItems),
		TotalItems:      fromItems(config.TotalItems),
		ItemCodeItems:   fromItems(config.ItemCodeItems),
		ParsedHeaders:   config.ParsedHeaders,
		UpdatedAt:       config.UpdatedAt,
	}

	for key, field := range config.MainFields {
		resp.MainFields[string(key)] = MainFieldPayload(field)
	}

	return resp
}

func fromItems(items []Item) []ItemPayload {
	payloads := make([]ItemPayload, len(items))
	for i, item := range items {
		payloads[i] = ItemPayload(item)
	}
	return payloads
}
