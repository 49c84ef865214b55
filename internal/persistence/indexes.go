package persistence

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/spec-kit/daily-pulse/internal/repository"
)

type collectionIndexes struct {
	collection string
	models     []mongo.IndexModel
}

// requiredIndexes lists the indexes the service relies on. The unique email index is
// what keeps POST /users idempotent under concurrent requests.
func requiredIndexes() []collectionIndexes {
	return []collectionIndexes{
		{
			collection: repository.UsersCollection,
			models: []mongo.IndexModel{{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("users_email_unique").SetUnique(true),
			}},
		},
		{
			collection: repository.NewsCollection,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "status", Value: 1}, {Key: "views", Value: -1}},
					Options: options.Index().SetName("news_status_views"),
				},
				{
					Keys:    bson.D{{Key: "authorEmail", Value: 1}},
					Options: options.Index().SetName("news_author_email"),
				},
			},
		},
		{
			collection: repository.PublishersCollection,
			models: []mongo.IndexModel{{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetName("publishers_name"),
			}},
		},
	}
}

// Server codes for an index that exists under other options or another name.
const (
	codeIndexOptionsConflict  = 85
	codeIndexKeySpecsConflict = 86
)

// EnsureIndexes creates any missing indexes. An existing index with the same
// keys and uniqueness counts as present whatever its name.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	if db == nil {
		logger.Warn("no mongodb database available; skipping index setup")
		return nil
	}

	count := 0
	for _, idx := range requiredIndexes() {
		n, err := ensureCollectionIndexes(ctx, db.Collection(idx.collection), idx.models, logger)
		if err != nil {
			return fmt.Errorf("create indexes on %s: %w", idx.collection, err)
		}
		count += n
	}

	logger.Info("index setup complete", zap.Int("count", count))
	return nil
}

func ensureCollectionIndexes(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel, logger *zap.Logger) (int, error) {
	count := 0
	for _, model := range models {
		name, err := coll.Indexes().CreateOne(ctx, model)
		switch {
		case err == nil:
			logger.Info("index ensured", zap.String("collection", coll.Name()), zap.String("name", name))
			count++
		case isIndexConflict(err):
			ok, lerr := hasEquivalentIndex(ctx, coll, model)
			if lerr != nil {
				return count, lerr
			}
			if !ok {
				return count, err
			}
			logger.Info("equivalent index already present", zap.String("collection", coll.Name()))
			count++
		case mongo.IsDuplicateKeyError(err):
			// Stored documents already violate the unique key. Registration still
			// checks for an existing email before inserting.
			logger.Error("unique index not built over duplicate documents",
				zap.String("collection", coll.Name()), zap.Error(err))
		default:
			return count, err
		}
	}
	return count, nil
}

func isIndexConflict(err error) bool {
	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	return cmdErr.Code == codeIndexOptionsConflict || cmdErr.Code == codeIndexKeySpecsConflict
}

func hasEquivalentIndex(ctx context.Context, coll *mongo.Collection, model mongo.IndexModel) (bool, error) {
	specs, err := coll.Indexes().ListSpecifications(ctx)
	if err != nil {
		return false, err
	}
	keys, _ := model.Keys.(bson.D)
	unique := model.Options != nil && model.Options.Unique != nil && *model.Options.Unique
	for _, spec := range specs {
		specUnique := spec.Unique != nil && *spec.Unique
		if specUnique == unique && sameKeys(spec.KeysDocument, keys) {
			return true, nil
		}
	}
	return false, nil
}

func sameKeys(doc bson.Raw, keys bson.D) bool {
	elems, err := doc.Elements()
	if err != nil || len(elems) != len(keys) {
		return false
	}
	for i, elem := range elems {
		want, ok := keys[i].Value.(int)
		if !ok || elem.Key() != keys[i].Key {
			return false
		}
		var got int64
		switch v := elem.Value(); v.Type {
		case bson.TypeInt32:
			got = int64(v.Int32())
		case bson.TypeInt64:
			got = v.Int64()
		case bson.TypeDouble:
			got = int64(v.Double())
		default:
			return false
		}
		if got != int64(want) {
			return false
		}
	}
	return true
}
