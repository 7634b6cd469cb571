// Package descriptor turns the annotations of one declaration into the
// descriptors the code generator consumes.
//
// Derive runs the whole pipeline for a single type:
//
//  1. extract and resolve the type-level from_config arguments
//  2. detect the cli annotation
//  3. build the ConfigDescriptor (exactly one input source)
//  4. check that the type is a plain struct with named fields
//  5. extract and resolve every field's save argument
//
// The first error aborts the type. DeriveAll derives every type and collects
// all their errors.
package descriptor
