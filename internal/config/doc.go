// Package config loads the hostguard service configuration.
//
// Environment variables are parsed first (defaults come from envDefault
// tags), then an optional YAML file is decoded on top. Only keys present in
// the file override environment values.
//
//	address: ":8080"
//	metrics_address: ":9090"
//	admin_host: admin.example.com
//	log:
//	  level: info
//	  format: json
//	resolver:
//	  trust_forwarded_headers: true
//	  trusted_proxies: ["10.0.0.0/8", "127.0.0.1"]
//	  trusted_host_patterns: ["example.com", "*.example.com"]
//	  default_host: example.com
package config
