// Package etl contains the core components of a small, pull-based ETL engine.
// This root package defines the types employed during regular use of the engine (Rows, Values,
// Stages and the iterators which connect them), as well as the interfaces implemented when
// extending it with new Sources, Sinks and parsers. It is an excellent overview of the key concepts.
package etl
