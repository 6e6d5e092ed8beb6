package dsk

// AnyResumer is the type-erased resumer handle described in spec.md §4.3 and
// §9: a (scheduler-identity, post-function) pair. [Resumer] already has
// exactly this shape — a comparable identity plus an opaque post func — so
// AnyResumer is an alias rather than a second type: there is nothing a
// wrapper could add once the underlying handle has already erased the
// concrete scheduler type behind a closure.
//
// The alias exists so call sites that only ever need to erase across
// scheduler implementations (never to inspect scheduler-specific behavior)
// can spell their intent as AnyResumer instead of Resumer, matching the
// vocabulary of spec.md's component table (C9).
type AnyResumer = Resumer
