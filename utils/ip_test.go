package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPublicIP(t *testing.T) {
	tests := []struct {
		address string
		valid   bool
	}{
		{"8.8.8.8", true},
		{"1.1.1.1", true},
		{"172.15.0.1", true},
		{"172.32.0.1", true},
		{"2001:4860:4860:0:0:0:0:8888", true},
		{"2a00:1450:4001:0830:0000:0000:0000:200e", true},

		{"", false},
		{"localhost", false},
		{"0.0.0.0", false},
		{"::", true},
		{"0:0:0:0:0:0:0:0", true},
		{"::1", false},
		{"127.0.0.1", false},
		{"127.255.0.9", false},
		{"10.0.0.1", false},
		{"172.16.0.1", false},
		{"172.31.255.255", false},
		{"192.168.1.1", false},
		{"169.254.10.1", false},
		{"fe80:0:0:0:0:0:0:1", false},
		{"fc00:0:0:0:0:0:0:1", false},
		{"fd12:3456:789a:1:0:0:0:1", false},
		{"0:0:0:0:0:0:0:1", false},

		{"999.1.1.1", false},
		{"256.0.0.1", false},
		{"1.2.3", false},
		{"1.2.3.4.5", false},
		{" 8.8.8.8", false},
		{"8.8.8.8 ", false},
		{"abc", false},
		{"fe80::1", false},
		{"2001:4860:4860::8888", false},
		{"2001:4860:4860:0:0:0:0:8888:1", false},
		{"gggg:0:0:0:0:0:0:1", false},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidPublicIP(tt.address))
		})
	}
}
