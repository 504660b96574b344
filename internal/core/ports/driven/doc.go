// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - SearchEngine: the Fess REST API (search, suggest, popular words,
//     labels, health, document text)
//   - LabelSource: Fess labels, usually behind a TTL cache
//   - ConfigStore: the configuration file
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
