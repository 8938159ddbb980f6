package pagination

import "testing"

func TestOffsetRequestValidate(t *testing.T) {
	tests := []struct {
		name     string
		req      OffsetRequest
		wantPage int
		wantSize int
	}{
		{name: "defaults", req: OffsetRequest{}, wantPage: 1, wantSize: PageDefaultSize},
		{name: "negative page", req: OffsetRequest{Page: -3, Size: 10}, wantPage: 1, wantSize: 10},
		{name: "oversized page clamps", req: OffsetRequest{Page: 2, Size: 5000}, wantPage: 2, wantSize: PageMaxSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if tt.req.Page != tt.wantPage || tt.req.Size != tt.wantSize {
				t.Errorf("got page=%d size=%d, want page=%d size=%d", tt.req.Page, tt.req.Size, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page2 := Slice(items, 2, 2)
	if len(page2.Items) != 2 || page2.Items[0] != 3 {
		t.Errorf("page 2 items = %v", page2.Items)
	}
	if page2.Total != 5 || !page2.HasMore {
		t.Errorf("page 2 total=%d hasMore=%v", page2.Total, page2.HasMore)
	}

	last := Slice(items, 3, 2)
	if len(last.Items) != 1 || last.HasMore {
		t.Errorf("last page items=%v hasMore=%v", last.Items, last.HasMore)
	}

	beyond := Slice(items, 9, 2)
	if len(beyond.Items) != 0 {
		t.Errorf("out-of-range page should be empty, got %v", beyond.Items)
	}
}
