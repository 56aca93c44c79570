// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Analysis Interfaces
//
// These carry the numeric pipeline and are always required:
//
//   - Chunker: Splits a document into heading-bounded sections
//   - FeatureExtractor: Builds the TF-IDF vector space for one document
//   - KeyphraseExtractor: Scores representative phrases per section
//   - Clusterer: Partitions section vectors into topic groups
//
// # Persistence Interfaces
//
// These are used by the CLI, MCP server and watcher around the services:
//
//   - GraphStore: Graph persistence (node-link JSON, SQLite, memory)
//   - TopicStore: Topic term persistence (JSON, memory)
//   - MarkdownWriter: Per-node and topic context markdown output
//   - NodeRenderer: Markdown text for nodes and contexts
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or analysis package
package driven
