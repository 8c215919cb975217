// Package config finds out where things are.
//
// Settings come from, in order of preference: command line flags, ftledit.ini, and
// defaults.  The ini file only uses its default section:
//
//	dir = C:/Users/me/Documents/My Games/FasterThanLight
//	data = ./data
//	log_file = ftledit.log
//	log_level = debug
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/ini.v1"
)

// FileName is the ini file looked for in the working directory when no other is named.
const FileName = "ftledit.ini"

type Config struct {
	Dir      string // save directory
	Data     string // blueprint data directory
	LogFile  string // empty for console logging
	LogLevel string
}

// Load reads an ini file.  A missing ftledit.ini is fine; a missing file that was
// asked for by name is not.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}

	cfg := &Config{}
	file, err := ini.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	// Classic read of values, default section can be represented as empty string
	section := file.Section("")
	cfg.Dir = section.Key("dir").String()
	cfg.Data = section.Key("data").String()
	cfg.LogFile = section.Key("log_file").String()
	cfg.LogLevel = section.Key("log_level").String()
	return cfg, nil
}

// Merge overrides c with every non-empty setting in flags, then fills what is still
// empty with defaults: the working directory for saves, the save directory for
// blueprint data, and "info" logging.
func (c *Config) Merge(flags Config) error {
	for _, s := range []struct {
		dst *string
		src string
	}{
		{&c.Dir, flags.Dir},
		{&c.Data, flags.Data},
		{&c.LogFile, flags.LogFile},
		{&c.LogLevel, flags.LogLevel},
	} {
		if s.src != "" {
			*s.dst = s.src
		}
	}

	if c.Dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		c.Dir = wd
	}
	if c.Data == "" {
		c.Data = c.Dir
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return nil
}

// Save writes c back out as an ini file.
func (c *Config) Save(path string) error {
	file := ini.Empty()
	section := file.Section("")
	for _, kv := range [][2]string{
		{"dir", c.Dir},
		{"data", c.Data},
		{"log_file", c.LogFile},
		{"log_level", c.LogLevel},
	} {
		if kv[1] == "" {
			continue
		}
		if _, err := section.NewKey(kv[0], kv[1]); err != nil {
			return err
		}
	}
	return file.SaveTo(path)
}
