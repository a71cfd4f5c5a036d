package cli

import "testing"

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name    string
		dark    bool
		light   bool
		want    bool
		wantErr bool
	}{
		{name: "default is dark", want: true},
		{name: "explicit dark", dark: true, want: true},
		{name: "explicit light", light: true, want: false},
		{name: "both flags rejected", dark: true, light: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveMode(tt.dark, tt.light)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveMode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("resolveMode() = %v, want %v", got, tt.want)
			}
		})
	}
}
