// Package journal keeps an in-process, append-only journal of circulation events.
//
// A Journal stores events as StorableEvent DTOs with JSON payload and metadata, numbers them with
// a sequence number and answers filtered queries. It implements library.EventRecorder, so a Library
// configured with library.WithEventRecorder writes every state change into it.
//
// Queries combine event types and payload predicates, e.g. all borrow, failure and return events of
// one patron, and report the max sequence number among the matching events.
//
// The journal lives in memory only and is gone when the process ends.
package journal
