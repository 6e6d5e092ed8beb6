package dskmongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/go-dsk/dsk"
)

// HostedClient adapts a dsk.HostSlot into a dsk.HostedResource[*mongo.Client]:
// Acquire resolves which client to use from tag(ctx) and only reconnects
// when that tag changes between calls, leaving an unchanged tag's client
// cached in the slot. Release is a no-op — the client stays hosted in the
// slot for the next call rather than being torn down after each op.
type HostedClient struct {
	slot      *dsk.HostSlot[string, *mongo.Client]
	tag       func(dsk.Ctx) string
	construct func(ctx context.Context, tag string) (*mongo.Client, error)
}

// NewHostedClient builds a HostedClient. tag derives the routing key (e.g.
// a tenant's configured cluster URI) from the calling Ctx; construct dials
// a new client for a given tag.
func NewHostedClient(tag func(dsk.Ctx) string, construct func(ctx context.Context, tag string) (*mongo.Client, error)) *HostedClient {
	return &HostedClient{
		slot: dsk.NewHostSlot[string, *mongo.Client](func(c *mongo.Client) error {
			return c.Disconnect(context.Background())
		}),
		tag:       tag,
		construct: construct,
	}
}

func (h *HostedClient) Acquire(ctx dsk.Ctx) (*mongo.Client, error) {
	tag := h.tag(ctx)
	return h.slot.AssureHolds(tag, func() (*mongo.Client, error) {
		return h.construct(dsk.StdContext(context.Background(), ctx.StopToken()), tag)
	})
}

func (h *HostedClient) Release(*mongo.Client) {}

// Close evicts and disconnects whatever client the slot currently holds.
func (h *HostedClient) Close() error { return h.slot.Close() }

// Collection returns an Op that resolves the hosted client via host, then
// runs fn against the named database/collection pair.
func Collection[T any](host dsk.HostedResource[*mongo.Client], db, collection string, fn func(ctx context.Context, coll *mongo.Collection) (T, error)) dsk.Op[T] {
	return dsk.MakeHostedOp(host, func(ctx dsk.Ctx, client *mongo.Client) (T, error) {
		coll := client.Database(db).Collection(collection)
		v, err := fn(dsk.StdContext(context.Background(), ctx.StopToken()), coll)
		if err != nil {
			var zero T
			return zero, classifyError(err)
		}
		return v, nil
	})
}

// FindOne decodes the first document matching filter into a T.
func FindOne[T any](host dsk.HostedResource[*mongo.Client], db, collection string, filter any) dsk.Op[T] {
	return Collection(host, db, collection, func(ctx context.Context, coll *mongo.Collection) (T, error) {
		var v T
		err := coll.FindOne(ctx, filter).Decode(&v)
		return v, err
	})
}

// InsertOne inserts doc and returns its assigned ObjectID.
func InsertOne(host dsk.HostedResource[*mongo.Client], db, collection string, doc any) dsk.Op[bson.ObjectID] {
	return Collection(host, db, collection, func(ctx context.Context, coll *mongo.Collection) (bson.ObjectID, error) {
		res, err := coll.InsertOne(ctx, doc)
		if err != nil {
			return bson.ObjectID{}, err
		}
		id, _ := res.InsertedID.(bson.ObjectID)
		return id, nil
	})
}

// EnsureUniqueIndex creates a unique index on keys, the way a migration
// step would before the package's ops rely on duplicate-key rejection.
func EnsureUniqueIndex(host dsk.HostedResource[*mongo.Client], db, collection string, keys bson.D) dsk.Op[string] {
	return Collection(host, db, collection, func(ctx context.Context, coll *mongo.Collection) (string, error) {
		return coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    keys,
			Options: options.Index().SetUnique(true),
		})
	})
}
