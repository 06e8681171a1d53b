package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func params(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return FromContext(e.NewContext(req, httptest.NewRecorder()))
}

func TestFromContextDefaults(t *testing.T) {
	p := params(t, "")
	if p.PageNumber != 1 || p.PageSize != DefaultPageSize {
		t.Errorf("got %+v, want page 1 size %d", p, DefaultPageSize)
	}
	if p.Offset() != 0 {
		t.Errorf("Offset = %d, want 0", p.Offset())
	}
}

func TestFromContextCapsSize(t *testing.T) {
	p := params(t, "pageNumber=3&pageSize=500")
	if p.PageSize != MaxPageSize {
		t.Errorf("PageSize = %d, want %d", p.PageSize, MaxPageSize)
	}
	if p.Offset() != 2*MaxPageSize {
		t.Errorf("Offset = %d, want %d", p.Offset(), 2*MaxPageSize)
	}
}

func TestFromContextIgnoresGarbage(t *testing.T) {
	p := params(t, "pageNumber=-4&pageSize=abc")
	if p.PageNumber != 1 || p.PageSize != DefaultPageSize {
		t.Errorf("got %+v, want defaults", p)
	}
}

func TestNewResponseMetaData(t *testing.T) {
	resp := NewResponse([]int{1, 2, 3}, 45, Params{PageNumber: 2, PageSize: 20})
	md := resp.MetaData
	if md.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", md.TotalPages)
	}
	if !md.HasNext {
		t.Error("page 2 of 3 should have next")
	}
	if !md.HasPrevious {
		t.Error("page 2 should have previous")
	}

	last := NewResponse(nil, 45, Params{PageNumber: 3, PageSize: 20}).MetaData
	if last.HasNext {
		t.Error("last page should not have next")
	}
}

func TestNewResponseEmpty(t *testing.T) {
	md := NewResponse(nil, 0, Params{PageNumber: 1, PageSize: 20}).MetaData
	if md.TotalPages != 0 || md.HasNext || md.HasPrevious {
		t.Errorf("unexpected metadata for empty result: %+v", md)
	}
}
