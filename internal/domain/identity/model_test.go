package identity

import "testing"

func strPtr(s string) *string { return &s }

func TestDisplayNamePrecedence(t *testing.T) {
	tests := []struct {
		name string
		p    Patient
		want string
	}{
		{
			name: "full name wins over parts and email",
			p:    Patient{FullName: strPtr("Nguyen Thi Mai"), FirstName: "Mai", LastName: "Nguyen", Email: strPtr("mai@example.com")},
			want: "Nguyen Thi Mai",
		},
		{
			name: "blank full name falls through to parts",
			p:    Patient{FullName: strPtr("   "), FirstName: "Mai", LastName: "Nguyen"},
			want: "Mai Nguyen",
		},
		{
			name: "first name only",
			p:    Patient{FirstName: "Mai"},
			want: "Mai",
		},
		{
			name: "email local part",
			p:    Patient{Email: strPtr("mai.nguyen@example.com")},
			want: "mai.nguyen",
		},
		{
			name: "nothing known",
			p:    Patient{},
			want: "Unknown patient",
		},
		{
			name: "malformed email falls through",
			p:    Patient{Email: strPtr("@example.com")},
			want: "Unknown patient",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}
