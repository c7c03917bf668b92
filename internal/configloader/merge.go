package configloader

import "github.com/yaklabco/asmlex/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer booleans: override overwrites base if set, so false can be forced
//   - Plain booleans: only true overrides
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Preprocess != nil {
		result.Preprocess = override.Preprocess
	}
	if override.RecoverEncoding != nil {
		result.RecoverEncoding = override.RecoverEncoding
	}

	if override.MemoryLimit != 0 {
		result.MemoryLimit = override.MemoryLimit
	}
	if override.RequiredVersion != "" {
		result.RequiredVersion = override.RequiredVersion
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.NameFormat != "" {
		result.NameFormat = override.NameFormat
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.DetectLanguage {
		result.DetectLanguage = true
	}
	if override.Strict {
		result.Strict = true
	}

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
