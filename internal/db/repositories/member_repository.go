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

type memberRepository struct {
	repository
}

type MemberRepository interface {
	Save(ctx context.Context, groupID int64, userID, name string) error
	GetManyByGroup(ctx context.Context, groupID int64) ([]*models.Member, error)
}

func NewMemberRepository(database *mongo.Database) MemberRepository {
	return &memberRepository{
		repository: repository{
			db: database,
		},
	}
}

func (r *memberRepository) collection() *mongo.Collection {
	return r.db.Collection(db.MembersCollection)
}

// Save upserts a member by (group, user). An empty name keeps whatever name
// is already stored, seeding a masked placeholder on first insert.
func (r *memberRepository) Save(ctx context.Context, groupID int64, userID, name string) error {
	set := bson.M{
		"group_id":   groupID,
		"user_id":    userID,
		"updated_at": time.Now().UTC(),
	}

	update := bson.M{"$set": set}
	if name != "" {
		set["name"] = name
	} else {
		update["$setOnInsert"] = bson.M{"name": models.MaskedName(userID)}
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection().UpdateOne(ctx, bson.M{"group_id": groupID, "user_id": userID}, update, opts)
	if err != nil {
		return storageErr("save member", err)
	}

	return nil
}

func (r *memberRepository) GetManyByGroup(ctx context.Context, groupID int64) ([]*models.Member, error) {
	cursor, err := r.collection().Find(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return nil, storageErr("list members", err)
	}

	members := make([]*models.Member, 0)
	if err := cursor.All(ctx, &members); err != nil {
		return nil, storageErr("decode members", err)
	}

	return members, nil
}
