// Package registry reads the distribution client's product and install
// registries.
//
// Both registries are SQLite files holding a single DbSet table. The reader
// opens them read-only, checks the table against an explicit column contract,
// and decodes rows by column name so reordered or extended schemas still load.
// Missing files surface as ErrSourceUnavailable and contract violations as
// ErrSchemaMismatch; neither is ever papered over with an empty result.
package registry
