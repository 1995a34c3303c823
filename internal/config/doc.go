// Package config manages the console's persistent settings.
//
// Settings live in a YAML file under the user configuration directory
// (~/.config/catena/console.yaml on the appliance). Everything has a working
// default: a missing, unreadable or unparsable file never prevents the
// console from starting - it simply runs with defaults.
//
// The settings cover the ambient concerns of the console itself (log level
// and destination, sudo usage, the location of the port naming source). The
// system values the console configures - hostname, timezone, time, network -
// are owned by the operating system and are never persisted here.
package config
