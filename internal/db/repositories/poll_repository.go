package repositories

import (
	"context"
	"time"

	"attendance_poll_bot/internal/db"
	"attendance_poll_bot/internal/db/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type pollRepository struct {
	repository
}

type PollRepository interface {
	Upsert(ctx context.Context, poll *models.Poll) error
	GetOne(ctx context.Context, pollID string) (*models.Poll, error)
	GetManyByStatus(ctx context.Context, status models.PollStatus, groupID int64) ([]*models.Poll, error)
	UpdateStatus(ctx context.Context, pollID string, status models.PollStatus) (bool, error)
	Delete(ctx context.Context, pollID string) (bool, error)
	CastVote(ctx context.Context, pollID, userID string, option models.OptionKey) (bool, models.OptionKey, error)
}

func NewPollRepository(database *mongo.Database) PollRepository {
	return &pollRepository{
		repository: repository{
			db: database,
		},
	}
}

func (r *pollRepository) collection() *mongo.Collection {
	return r.db.Collection(db.PollsCollection)
}

func (r *pollRepository) Upsert(ctx context.Context, poll *models.Poll) error {
	poll.UpdatedAt = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection().ReplaceOne(ctx, bson.M{"poll_id": poll.ID}, poll, opts)
	if err != nil {
		return storageErr("upsert poll", err)
	}

	return nil
}

// GetOne returns (nil, nil) when no poll matches.
func (r *pollRepository) GetOne(ctx context.Context, pollID string) (*models.Poll, error) {
	poll := &models.Poll{}

	err := r.collection().FindOne(ctx, bson.M{"poll_id": pollID}).Decode(poll)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get poll", err)
	}

	return poll, nil
}

// GetManyByStatus lists polls in the given status; groupID 0 matches all groups.
func (r *pollRepository) GetManyByStatus(ctx context.Context, status models.PollStatus, groupID int64) ([]*models.Poll, error) {
	filter := bson.M{"status": status.String()}
	if groupID != 0 {
		filter["group_id"] = groupID
	}

	cursor, err := r.collection().Find(ctx, filter)
	if err != nil {
		return nil, storageErr("list polls", err)
	}

	polls := make([]*models.Poll, 0)
	if err := cursor.All(ctx, &polls); err != nil {
		return nil, storageErr("decode polls", err)
	}

	return polls, nil
}

func (r *pollRepository) UpdateStatus(ctx context.Context, pollID string, status models.PollStatus) (bool, error) {
	result, err := r.collection().UpdateOne(
		ctx,
		bson.M{"poll_id": pollID},
		bson.M{"$set": bson.M{"status": status.String(), "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return false, storageErr("update poll status", err)
	}

	return result.MatchedCount > 0, nil
}

func (r *pollRepository) Delete(ctx context.Context, pollID string) (bool, error) {
	result, err := r.collection().DeleteOne(ctx, bson.M{"poll_id": pollID})
	if err != nil {
		return false, storageErr("delete poll", err)
	}

	return result.DeletedCount > 0, nil
}

// CastVote moves the voter into the requested option set and returns the
// option the voter held before, empty when this is a first vote. The whole
// mutation is one single-document update, so concurrent votes on the same
// poll serialize and can neither lose a voter nor record one twice.
func (r *pollRepository) CastVote(ctx context.Context, pollID, userID string, option models.OptionKey) (bool, models.OptionKey, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	before := &models.Poll{}
	err := r.collection().
		FindOneAndUpdate(ctx, bson.M{"poll_id": pollID}, mongo.Pipeline{castVoteStage(userID, option)}, opts).
		Decode(before)
	if err == mongo.ErrNoDocuments {
		return false, "", nil
	}
	if err != nil {
		return false, "", storageErr("cast vote", err)
	}

	return true, before.Voters[userID], nil
}

// castVoteStage builds the $set stage applied by CastVote: the voter is
// unioned into the requested option set, filtered out of every other set,
// and recorded in the voters map.
func castVoteStage(userID string, option models.OptionKey) bson.D {
	set := bson.M{
		"voters." + userID: option.String(),
		"updated_at":       "$$NOW",
	}

	for _, key := range models.OptionKeys() {
		field := "options." + key.String()
		if key == option {
			set[field] = bson.M{"$setUnion": bson.A{"$" + field, bson.A{userID}}}
		} else {
			set[field] = bson.M{"$filter": bson.M{
				"input": "$" + field,
				"cond":  bson.M{"$ne": bson.A{"$$this", userID}},
			}}
		}
	}

	return bson.D{{Key: "$set", Value: set}}
}
