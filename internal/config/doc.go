// Package config provides configuration structures and utilities for
// jobreport. It defines where the dataset and the generated files live,
// which dataset columns feed the charts, and how the skills are ranked.
//
// A Config is built with NewConfig, optionally overlaid with a YAML
// configuration file (see LoadConfigFile and FindConfigFile) and CLI
// flags, and then passed explicitly to the pipeline.
package config
