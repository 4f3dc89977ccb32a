package controller

import "testing"

func TestMaskPath(t *testing.T) {
	cases := []struct {
		name string
		path string
		want string
	}{
		{
			name: "account number segment is masked",
			path: "/accounts/0021000009/statement",
			want: "/accounts/******0009/statement",
		},
		{
			name: "iban segment is masked",
			path: "/identifiers/IN53CRDX0021000009/validate",
			want: "/identifiers/**************0009/validate",
		},
		{
			name: "route words pass through",
			path: "/calculator/maturity",
			want: "/calculator/maturity",
		},
		{
			name: "uuid segments pass through",
			path: "/users/6f1a2b3c-0d4e-4f5a-8b6c-7d8e9f0a1b2c",
			want: "/users/6f1a2b3c-0d4e-4f5a-8b6c-7d8e9f0a1b2c",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := maskPath(tc.path); got != tc.want {
				t.Fatalf("maskPath(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}
