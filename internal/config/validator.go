package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// maxIOSize bounds the throughput test so a typo cannot fill a disk.
const maxIOSize = 16 << 30

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation: %s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validator validates configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateConfig validates cfg with a fresh Validator.
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}

// Validate validates the entire configuration.
func (v *Validator) Validate(cfg *Config) error {
	v.validateLog(&cfg.Log)
	v.validateOutput(&cfg.Output)
	v.validateIO(&cfg.IO)
	v.validateGPU(&cfg.GPU)
	v.validateFilesystem(&cfg.Filesystem)

	if len(v.errors) > 0 {
		return v.errors
	}
	return nil
}

func (v *Validator) addError(field string, value interface{}, msg string) {
	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: msg,
	})
}

func (v *Validator) validateLog(cfg *LogConfig) {
	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		v.addError("log.level", cfg.Level, "must be one of debug, info, warn, error")
	}
	switch cfg.Format {
	case "auto", "text", "json":
	default:
		v.addError("log.format", cfg.Format, "must be one of auto, text, json")
	}
}

func (v *Validator) validateOutput(cfg *OutputConfig) {
	if cfg.Prefix == "" {
		v.addError("output.prefix", cfg.Prefix, "must not be empty")
	} else if isNotBareName(cfg.Prefix) {
		v.addError("output.prefix", cfg.Prefix, "must not contain path separators")
	}
}

func (v *Validator) validateIO(cfg *IOConfig) {
	if !cfg.Enabled {
		return
	}
	size, err := cfg.SizeBytes()
	switch {
	case err != nil:
		v.addError("io.size", cfg.Size, "must be a size such as 100MiB or 1g")
	case size <= 0:
		v.addError("io.size", cfg.Size, "must be positive")
	case size > maxIOSize:
		v.addError("io.size", cfg.Size, "must not exceed 16GiB")
	}
	if cfg.FileName == "" || isNotBareName(cfg.FileName) {
		v.addError("io.file_name", cfg.FileName, "must be a plain file name")
	}
}

func (v *Validator) validateGPU(cfg *GPUConfig) {
	if !cfg.Enabled {
		return
	}
	d, err := cfg.TimeoutDuration()
	if err != nil || d <= 0 {
		v.addError("gpu.timeout", cfg.Timeout, "must be a positive duration")
	}
}

func (v *Validator) validateFilesystem(cfg *FilesystemConfig) {
	for _, name := range cfg.PathNames() {
		if strings.TrimSpace(name) == "" {
			v.addError("filesystem.paths", name, "names must not be empty")
		}
		if strings.TrimSpace(cfg.Paths[name]) == "" {
			v.addError("filesystem.paths."+name, cfg.Paths[name], "path must not be empty")
		}
	}
}

func isNotBareName(s string) bool {
	return s == "." || s == ".." || s != filepath.Base(s) || strings.ContainsAny(s, `/\`)
}
