package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Params holds pagination parameters extracted from a request.
// The API accepts one convention only: pageNumber (1-based) and pageSize.
type Params struct {
	PageNumber int
	PageSize   int
}

// FromContext extracts pagination parameters from the echo context.
func FromContext(c echo.Context) Params {
	page, _ := strconv.Atoi(c.QueryParam("pageNumber"))
	if page <= 0 {
		page = 1
	}

	size, _ := strconv.Atoi(c.QueryParam("pageSize"))
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return Params{PageNumber: page, PageSize: size}
}

// Limit returns the SQL LIMIT value for the page.
func (p Params) Limit() int { return p.PageSize }

// Offset returns the SQL OFFSET value for the page.
func (p Params) Offset() int { return (p.PageNumber - 1) * p.PageSize }

// MetaData describes a page of results.
type MetaData struct {
	PageNumber  int  `json:"pageNumber"`
	PageSize    int  `json:"pageSize"`
	TotalCount  int  `json:"totalCount"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

// Response wraps a paginated API response.
type Response struct {
	Data     interface{} `json:"data"`
	MetaData MetaData    `json:"metaData"`
}

func NewResponse(data interface{}, total int, p Params) *Response {
	totalPages := 0
	if p.PageSize > 0 {
		totalPages = (total + p.PageSize - 1) / p.PageSize
	}
	return &Response{
		Data: data,
		MetaData: MetaData{
			PageNumber:  p.PageNumber,
			PageSize:    p.PageSize,
			TotalCount:  total,
			TotalPages:  totalPages,
			HasNext:     p.PageNumber < totalPages,
			HasPrevious: p.PageNumber > 1,
		},
	}
}
