// Package core contains the rummage hook contract, binding registry, and the
// engine that folds a queryable and parameter map through an ordered hook
// chain. Concrete hook implementations and persistence adapters depend on
// this package; core must not depend on any store- or transport-specific
// package.
package core
