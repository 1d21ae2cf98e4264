// Package config loads the objtree command configuration from YAML.
//
// The same keys can be overridden from command flags and OBJTREE_* variables;
// that binding lives in the command package, this one only knows the file.
package config
