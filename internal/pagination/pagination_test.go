package pagination

import "testing"

func TestDefaults(t *testing.T) {
	t.Run("fills_zero_values", func(t *testing.T) {
		p := PageRequest{}
		p.Defaults()
		if p.Page != 1 || p.PageSize != DefaultPageSize {
			t.Errorf("expected 1/%d, got %d/%d", DefaultPageSize, p.Page, p.PageSize)
		}
	})

	t.Run("caps_page_size", func(t *testing.T) {
		p := PageRequest{Page: 3, PageSize: 10000}
		p.Defaults()
		if p.PageSize != MaxPageSize {
			t.Errorf("expected %d, got %d", MaxPageSize, p.PageSize)
		}
		if p.Offset() != 2*MaxPageSize {
			t.Errorf("unexpected offset %d", p.Offset())
		}
	})
}

func TestNewPageResponse(t *testing.T) {
	t.Run("partial_last_page", func(t *testing.T) {
		resp := NewPageResponse([]int{1, 2}, 1, 2, 5)
		if resp.TotalPages != 3 {
			t.Errorf("expected 3 pages, got %d", resp.TotalPages)
		}
		if !resp.HasMore {
			t.Error("expected more pages")
		}
	})

	t.Run("empty_month", func(t *testing.T) {
		resp := NewPageResponse[int](nil, 1, 100, 0)
		if resp.Data == nil || len(resp.Data) != 0 {
			t.Errorf("expected empty non-nil data, got %v", resp.Data)
		}
		if resp.TotalPages != 0 || resp.HasMore {
			t.Errorf("unexpected counters %+v", resp)
		}
	})
}
