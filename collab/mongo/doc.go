// Package dskmongo exposes go.mongodb.org/mongo-driver/v2 collection
// operations as dsk.Op values, grounded on
// dmitrymomot-foundation/integration/database/mongo/doc.go's
// New/NewWithDatabase/Healthcheck usage shape.
//
// Unlike dskredis/dskpg, which hold one long-lived driver handle for the
// package's lifetime, dskmongo demonstrates dsk.MakeHostedOp backed by a
// dsk.HostSlot: HostedClient re-resolves which *mongo.Client to use per
// call from a routing tag (e.g. a tenant's configured cluster URI),
// reusing the existing client when the tag is unchanged and only paying
// the reconnect cost when it changes — the identity-preservation case
// dsk.HostSlot's own documentation calls out.
package dskmongo
