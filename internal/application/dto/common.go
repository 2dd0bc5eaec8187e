package dto

// Response is the uniform result envelope every public operation returns.
// Exactly one of Data or Error is meaningful depending on Success.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK wraps a successful payload.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// OKMessage wraps a successful payload with a human-readable message.
func OKMessage(data any, message string) Response {
	return Response{Success: true, Data: data, Message: message}
}

// Fail wraps an error message.
func Fail(message string) Response {
	return Response{Success: false, Error: message}
}

// PageRequest carries 1-based pagination for list endpoints.
type PageRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"pageSize"`
}

// Normalize applies defaults and clamps out-of-range values.
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// Offset converts the page to a row offset.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Paginated is the list payload: items plus page metadata.
type Paginated struct {
	Items       any `json:"items"`
	Total       int `json:"total"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
}

// NewPaginated assembles the page envelope. totalPages = ceil(total/pageSize).
func NewPaginated(items any, total, page, pageSize int) *Paginated {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return &Paginated{
		Items:       items,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    pageSize,
	}
}
