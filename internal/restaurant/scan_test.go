package restaurant

import (
	"errors"
	"testing"
)

func TestParseQR(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Table
		wantErr error
	}{
		{
			name:    "full payload",
			payload: `{"id":"r-42","name":"Luigi's","tableNumber":"12"}`,
			want:    Table{RestaurantID: "r-42", RestaurantName: "Luigi's", TableNumber: "12"},
		},
		{
			name:    "numeric id and table",
			payload: `{"id":42,"name":"Luigi's","tableNumber":7}`,
			want:    Table{RestaurantID: "42", RestaurantName: "Luigi's", TableNumber: "7"},
		},
		{
			name:    "missing table defaults to 1",
			payload: `{"id":"r-42","name":"Luigi's"}`,
			want:    Table{RestaurantID: "r-42", RestaurantName: "Luigi's", TableNumber: "1"},
		},
		{
			name:    "not json falls back to demo",
			payload: "https://example.com/menu",
			want:    DemoTable(),
		},
		{
			name:    "missing name",
			payload: `{"id":"r-42"}`,
			wantErr: ErrInvalidQRCode,
		},
		{
			name:    "empty id",
			payload: `{"id":"","name":"Luigi's"}`,
			wantErr: ErrInvalidQRCode,
		},
		{
			name:    "zero id",
			payload: `{"id":0,"name":"Luigi's"}`,
			wantErr: ErrInvalidQRCode,
		},
		{
			name:    "zero table defaults to 1",
			payload: `{"id":"r-42","name":"Luigi's","tableNumber":0}`,
			want:    Table{RestaurantID: "r-42", RestaurantName: "Luigi's", TableNumber: "1"},
		},
		{
			name:    "whitespace id is kept",
			payload: `{"id":" ","name":"Luigi's"}`,
			want:    Table{RestaurantID: " ", RestaurantName: "Luigi's", TableNumber: "1"},
		},
		{
			name:    "json but not an object",
			payload: `123`,
			wantErr: ErrInvalidQRCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQR(tt.payload)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}
