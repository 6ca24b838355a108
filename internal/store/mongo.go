// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-cred-vault/internal/config"
	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// mongoStore is the MongoDB-backed implementation of [DocumentStore].
// Collections map one-to-one onto MongoDB collections inside the configured
// database; filters and documents map onto bson.M values.
type mongoStore struct {
	logger *logger.Logger
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects to the MongoDB deployment described by cfg and
// verifies the connection with a ping against the primary.
//
// The client is pinned to Stable API version 1. Connection and ping failures
// are wrapped in [ErrStoreUnavailable].
func NewMongoStore(ctx context.Context, cfg config.Mongo, log *logger.Logger) (DocumentStore, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Err(err).Str("func", "NewMongoStore").Msg("error occured during mongo connection")
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		log.Err(err).Str("func", "NewMongoStore").Msg("error connecting mongo (ping)")
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	log.Info().Str("func", "NewMongoStore").Str("database", cfg.Database).Msg("connected to mongo successfully")

	return &mongoStore{
		logger: log,
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

func (s *mongoStore) FindOne(ctx context.Context, collection string, filter Filter) (Document, error) {
	log := logger.FromContext(ctx)

	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M(filter)).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDocumentNotFound
		}
		log.Err(err).Str("collection", collection).Msg("error: single document lookup failed")
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return normalizeDocument(raw), nil
}

func (s *mongoStore) Find(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	log := logger.FromContext(ctx)

	cursor, err := s.db.Collection(collection).Find(ctx, bson.M(filter))
	if err != nil {
		log.Err(err).Str("collection", collection).Msg("error: document search failed")
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var raws []bson.M
	if err = cursor.All(ctx, &raws); err != nil {
		log.Err(err).Str("collection", collection).Msg("error: cursor iteration failed")
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	docs := make([]Document, 0, len(raws))
	for _, raw := range raws {
		docs = append(docs, normalizeDocument(raw))
	}

	return docs, nil
}

func (s *mongoStore) InsertOne(ctx context.Context, collection string, doc Document) error {
	log := logger.FromContext(ctx)

	if _, err := s.db.Collection(collection).InsertOne(ctx, bson.M(doc)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		log.Err(err).Str("collection", collection).Msg("error: document insert failed")
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return nil
}

func (s *mongoStore) UpdateOne(ctx context.Context, collection string, filter Filter, set Document) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := s.db.Collection(collection).UpdateOne(ctx, bson.M(filter), bson.M{"$set": bson.M(set)})
	if err != nil {
		log.Err(err).Str("collection", collection).Msg("error: document update failed")
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return result.ModifiedCount, nil
}

func (s *mongoStore) DeleteOne(ctx context.Context, collection string, filter Filter) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := s.db.Collection(collection).DeleteOne(ctx, bson.M(filter))
	if err != nil {
		log.Err(err).Str("collection", collection).Msg("error: document delete failed")
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return result.DeletedCount, nil
}

func (s *mongoStore) DeleteMany(ctx context.Context, collection string, filter Filter) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := s.db.Collection(collection).DeleteMany(ctx, bson.M(filter))
	if err != nil {
		log.Err(err).Str("collection", collection).Msg("error: bulk document delete failed")
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return result.DeletedCount, nil
}

func (s *mongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *mongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// normalizeDocument converts driver-specific BSON values into the neutral
// representation promised by the [DocumentStore] contract: primitive.DateTime
// becomes time.Time, nested bson types become plain maps and slices, and the
// server-assigned _id is dropped (the vault keys records by its own fields).
func normalizeDocument(raw bson.M) Document {
	doc := make(Document, len(raw))
	for key, value := range raw {
		if key == "_id" {
			continue
		}
		doc[key] = normalizeValue(value)
	}
	return doc
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case primitive.DateTime:
		return v.Time().UTC()
	case bson.M:
		return map[string]any(normalizeDocument(v))
	case primitive.A:
		normalized := make([]any, 0, len(v))
		for _, item := range v {
			normalized = append(normalized, normalizeValue(item))
		}
		return normalized
	default:
		return value
	}
}
