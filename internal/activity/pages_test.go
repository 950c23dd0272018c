package activity

import (
	"reflect"
	"testing"
)

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []int
	}{
		{"empty", 1, 0, []int{}},
		{"single page", 1, 1, []int{1}},
		{"all pages shown at five", 3, 5, []int{1, 2, 3, 4, 5}},
		{"short list ignores window", 2, 3, []int{1, 2, 3}},
		{"start of long list", 1, 10, []int{1, 2, 3, 4, Ellipsis, 10}},
		{"near start", 3, 10, []int{1, 2, 3, 4, Ellipsis, 10}},
		{"middle", 5, 10, []int{1, Ellipsis, 4, 5, 6, Ellipsis, 10}},
		{"near end", 9, 10, []int{1, Ellipsis, 7, 8, 9, 10}},
		{"end of long list", 10, 10, []int{1, Ellipsis, 7, 8, 9, 10}},
		{"first middle position", 4, 10, []int{1, Ellipsis, 3, 4, 5, Ellipsis, 10}},
		{"current below range clamps", 0, 10, []int{1, 2, 3, 4, Ellipsis, 10}},
		{"current above range clamps", 42, 10, []int{1, Ellipsis, 7, 8, 9, 10}},
		{"six pages middle", 4, 6, []int{1, Ellipsis, 3, 4, 5, Ellipsis, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PageWindow(tt.current, tt.total)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("PageWindow(%d, %d) = %v, want %v", tt.current, tt.total, got, tt.want)
			}
		})
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		page, totalPages, want int
	}{
		{0, 10, 1},
		{-3, 10, 1},
		{1, 10, 1},
		{10, 10, 10},
		{11, 10, 10},
		{5, 0, 5},
		{0, 0, 1},
	}
	for _, tt := range tests {
		if got := ClampPage(tt.page, tt.totalPages); got != tt.want {
			t.Errorf("ClampPage(%d, %d) = %d, want %d", tt.page, tt.totalPages, got, tt.want)
		}
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{50, 5, 10},
		{7, 0, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestNormalizeLimit(t *testing.T) {
	tests := []struct {
		limit, want int
	}{
		{5, 5},
		{10, 10},
		{20, 20},
		{50, 50},
		{0, DefaultLimit},
		{-1, DefaultLimit},
		{15, DefaultLimit},
		{100, DefaultLimit},
	}
	for _, tt := range tests {
		if got := NormalizeLimit(tt.limit); got != tt.want {
			t.Errorf("NormalizeLimit(%d) = %d, want %d", tt.limit, got, tt.want)
		}
	}
}
