// Package config holds quotecrawl's configuration: documented default
// constants, the Config struct populated from CLI flags, validation
// with sentinel errors, and the optional .quotecrawl YAML file loader.
//
// Configuration flows through the application by explicit parameter
// passing. There are no globals and no environment variables.
package config
