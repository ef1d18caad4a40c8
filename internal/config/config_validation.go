// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Kotelnikov

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Rules:
//   - the HTTP listen address must be set;
//   - the storage driver must be one of "memory", "postgres", "sqlite"
//     (empty defaults to "memory");
//   - SQL drivers require a non-empty DSN.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	switch cfg.Storage.DB.Driver {
	case "":
		cfg.Storage.DB.Driver = DriverMemory
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if cfg.Storage.DB.DSN == "" {
			return ErrInvalidStorageConfigs
		}
	default:
		return ErrInvalidStorageConfigs
	}

	return nil
}
