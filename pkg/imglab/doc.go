// Package imglab implements the moderation pipeline for user-submitted
// images: pending -> approved | rejected, with at most one submission per
// user at a time.
//
// The package exposes a single Service interface that allocates upload
// slots (presigned, scoped write grants against an object store), moves
// submissions between moderation states, and produces access-controlled
// listings of a state with time-limited read grants. Blob storage
// implementations (memory, S3) live under subpackages, as does the
// notification sink used for new-submission events.
//
// Moderation state is encoded in the leading segment of the object key
// ("pending/{user}/{file}"); the service never stores submission records
// anywhere else. Consequences of that choice (the slot-uniqueness check
// is a racy prefix scan, and state transitions are copy-then-delete) are
// documented on the relevant operations.
package imglab
