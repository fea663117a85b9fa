package payrollitem

type ItemPayload struct {
	ID        string `json:"id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Type      string `json:"type" binding:"required,oneof=income deduction attendance time days other"`
	CSVColumn *int   `json:"csv_column"`
}

type ReplaceItemsRequest struct {
	Items []ItemPayload `json:"items" binding:"required,dive"`
}

type ItemResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	CSVColumn *int   `json:"csv_column,omitempty"`
}

func mapToResponse(item PayrollItem) ItemResponse {
	return ItemResponse{
		ID:        item.ID,
		Name:      item.Name,
		Type:      item.Type,
		CSVColumn: item.CSVColumn,
	}
}

func mapToListResponse(items []PayrollItem) []ItemResponse {
	resp := make([]ItemResponse, len(items))
	for i, item := range items {
		resp[i] = mapToResponse(item)
	}
	return resp
}
