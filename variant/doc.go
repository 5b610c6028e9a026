// Package variant implements a runtime variant/type system.
//
// A value's shape is described at runtime by a DataSpec: its logical kind,
// encoding, storage width and collection semantics. A DataProvider turns an
// access-level DataSpec into a Variable whose typed accessor reads and writes
// values conforming to that shape, whatever physical storage backs it.
//
// # Specs
//
// Every primitive kind has an immutable spec (IntegerSpec, ListSpec, ...)
// built through a builder:
//
//	amount := variant.NewIntegerSpecBuilder().
//		WithEncoding(variant.Signed).
//		WithStorage(variant.B64).
//		Build()
//
// A spec with every storage field bound is at LevelAccess and can create
// variables. A spec with unbound fields is at LevelCompare and can only be
// used to test compatibility.
//
// # Compatibility
//
// Each optional field F follows one rule: a bound field matches only an equal
// bound field; any field matches an unbound requirement; an unbound field
// never satisfies a bound requirement. A spec is compatible with a required
// spec when every field is. Categories (Numeric, Collection, ...) give a
// coarser match:
//
//	amount.IsCompatibleWith(variant.NewCategorySpec(variant.CategoryNumeric)) // true
//
// # Providers, adaptors and accessors
//
// An adaptor implements raw, unchecked storage for one kind. An accessor
// wraps exactly one adaptor and owns every validation: overflow, bounds,
// resolution and spec checks. A DataProvider manufactures adaptors:
//
//	v, err := variant.NewVariable(provider, amount)
//	err = v.AsInteger().SetInt64(50)
//
// # Deep assignment
//
// SetEqualTo copies a compatible value into a variable by value. TryClone
// builds a fresh variable from the same provider and spec and deep-assigns
// into it, so variables never share values by reference.
//
// # Failure modes
//
// Data-dependent failures are returned as errors (see errors.go). Programmer
// errors panic: downcasting a Variable to the wrong kind, calling a capability
// an adaptor does not support, and contradictory builder configuration.
package variant
