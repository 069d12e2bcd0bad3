package webserve

import (
	"net"
	"strconv"
)

// NetworkURL returns the page URL on the first non-loopback IPv4 address,
// for opening the page from another device on the same network.
func (s *Server) NetworkURL() (string, bool) {
	ip, ok := lanIPv4()
	if !ok {
		return "", false
	}
	return "http://" + net.JoinHostPort(ip.String(), strconv.Itoa(s.Port())), true
}

func lanIPv4() (net.IP, bool) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil, false
	}
	return firstLANIPv4(addrs)
}

func firstLANIPv4(addrs []net.Addr) (net.IP, bool) {
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipnet.IP.To4(); ip4 != nil {
			return ip4, true
		}
	}
	return nil, false
}
