package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the server's command-line flags from args (usually
// os.Args[1:]).
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-c/-config json file path with configs
//	-storage storage backend (local, remote)
//	-f local storage directory
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-submit-timeout submission deadline (e.g., "60s")
//	-sweep-interval in-process expiry sweep interval (e.g., "1h")
//	-log-level minimum log level (debug, info, warn, error)
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("pilot-docs-server", flag.ContinueOnError)

	var serverAddress NetAddress
	var jsonConfigPath string
	var storageBackend string
	var filesDir string
	var requestTimeout time.Duration
	var submitTimeout time.Duration
	var sweepInterval time.Duration
	var logLevel string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&storageBackend, "storage", "", "Storage backend: local or remote")
	fs.StringVar(&filesDir, "f", "", "Local storage directory")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&submitTimeout, "submit-timeout", 0, "Submission deadline (e.g., 60s)")
	fs.DurationVar(&sweepInterval, "sweep-interval", 0, "In-process expiry sweep interval (e.g., 1h)")
	fs.StringVar(&logLevel, "log-level", "", "Minimum log level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			SubmitTimeout:  submitTimeout,
		},
		Storage: Storage{
			Backend: storageBackend,
			Files: Files{
				Dir: filesDir,
			},
		},
		Workers: Workers{
			SweepInterval: sweepInterval,
		},
		LogLevel:     logLevel,
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string so the default
// address applies.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host listens on all interfaces. Otherwise the host must be
// "localhost" or a valid IP address.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "" && host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
