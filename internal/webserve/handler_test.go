package webserve

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewritePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/", "/reset-password.html"},
		{"/reset-password", "/reset-password.html"},
		{"/reset-password.html", "/reset-password.html"},
		{"/reset-password/", "/reset-password.html"},
		{"/reset-password/a/b", "/reset-password.html"},
		{"/reset-passwords", "/reset-password.html"},
		{"/reset", "/reset"},
		{"/Reset-Password", "/Reset-Password"},
		{"/style.css", "/style.css"},
		{"/a/reset-password", "/a/reset-password"},
		{"//", "//"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rewritePath(tt.in), "rewritePath(%q)", tt.in)
	}
}

func TestFirstLANIPv4(t *testing.T) {
	loopback := &net.IPNet{IP: net.ParseIP("127.0.0.1"), Mask: net.CIDRMask(8, 32)}
	v6 := &net.IPNet{IP: net.ParseIP("fe80::1"), Mask: net.CIDRMask(64, 128)}
	lan := &net.IPNet{IP: net.ParseIP("192.168.1.10"), Mask: net.CIDRMask(24, 32)}

	ip, ok := firstLANIPv4([]net.Addr{loopback, v6, lan})
	assert.True(t, ok)
	assert.Equal(t, "192.168.1.10", ip.String())

	_, ok = firstLANIPv4([]net.Addr{loopback, v6})
	assert.False(t, ok)
}
