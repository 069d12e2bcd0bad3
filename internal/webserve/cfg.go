package webserve

import "time"

type ConfigOptions struct {
	ServerConfigOptions
}

type ServerConfigOptions struct {
	Host string
	Port int

	// Root is the directory holding the page and any other static assets.
	Root string

	ShutdownTimeout time.Duration
}
