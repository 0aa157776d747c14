// Package wire implements the generic dynamically-typed value tree used as
// the intermediate representation for every protocol message.
//
// A Value is a closed tagged variant over the JSON scalar kinds plus
// insertion-ordered objects and arrays. Typed request arguments are
// lowered into this representation by ToObject, vendor-extension fields
// are merged in with InjectIntoAncestor or Merge, and DeepClone copies
// values into caller-owned storage with a pluggable string strategy.
package wire
