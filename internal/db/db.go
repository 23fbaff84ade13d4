package db

import (
	"context"
	"time"

	"attendance_poll_bot/configs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	PollsCollection   = "polls"
	MembersCollection = "members"

	connectTimeout = 10 * time.Second
)

func StartDB(config configs.DB, logger *zap.SugaredLogger) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.URL))
	if err != nil {
		logger.Errorw("failed to connect to mongodb", "error", err)
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Errorw("failed to ping mongodb", "error", err)
		return nil, err
	}

	database := client.Database(config.Name)

	if err := ensureIndexes(ctx, database); err != nil {
		logger.Errorw("failed to ensure indexes", "error", err)
		return nil, err
	}
	logger.Info("indexes ensured")

	return database, nil
}

func ensureIndexes(ctx context.Context, database *mongo.Database) error {
	_, err := database.Collection(PollsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "poll_id", Value: 1}},
		Options: options.Index().SetName("idx_polls_poll_id").SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = database.Collection(MembersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: options.Index().SetName("idx_members_group_user").SetUnique(true),
	})
	return err
}
