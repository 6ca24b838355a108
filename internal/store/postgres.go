// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-cred-vault/internal/config"
	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/migrations"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// postgresStore implements [DocumentStore] on top of PostgreSQL by keeping
// every document as a JSONB value in a single `documents` table keyed by
// collection name. Exact-match filters translate to JSONB containment
// (`doc @> filter`); partial updates translate to JSONB concatenation.
type postgresStore struct {
	logger  *logger.Logger
	db      *sql.DB
	builder sq.StatementBuilderType
}

// NewPostgresStore opens a connection pool against cfg.DSN, pings the
// database, and applies the embedded goose migrations before returning.
//
// Connection and ping failures are wrapped in [ErrStoreUnavailable].
func NewPostgresStore(ctx context.Context, cfg config.DB, log *logger.Logger) (DocumentStore, error) {
	// establish connection
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewPostgresStore").Msg("error occured during database connection")
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewPostgresStore").Msg("error connecting database (ping)")
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	log.Info().Str("func", "NewPostgresStore").Msg("connected to database successfully")

	if err = migrations.Migrate(conn); err != nil {
		log.Err(err).Str("func", "NewPostgresStore").Msg("error applying migrations")
		return nil, err
	}

	return &postgresStore{
		logger:  log,
		db:      conn,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}, nil
}

func (s *postgresStore) FindOne(ctx context.Context, collection string, filter Filter) (Document, error) {
	log := logger.FromContext(ctx)

	filterJSON, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodingDocument, err)
	}

	query, args, err := s.builder.
		Select("doc").
		From("documents").
		Where(sq.Eq{"collection": collection}).
		Where(sq.Expr("doc @> ?::jsonb", filterJSON)).
		OrderBy("id").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var payload []byte
	if err = s.db.QueryRowContext(ctx, query, args...).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		log.Err(err).Str("collection", collection).Msg("error: single document lookup failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return decodeDocument(payload)
}

func (s *postgresStore) Find(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	log := logger.FromContext(ctx)

	filterJSON, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodingDocument, err)
	}

	query, args, err := s.builder.
		Select("doc").
		From("documents").
		Where(sq.Eq{"collection": collection}).
		Where(sq.Expr("doc @> ?::jsonb", filterJSON)).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("collection", collection).Msg("error: document search failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		var payload []byte
		if err = rows.Scan(&payload); err != nil {
			log.Err(err).Str("collection", collection).Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %v", ErrScanningRows, err)
		}

		doc, err := decodeDocument(payload)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanningRows, err)
	}

	return docs, nil
}

func (s *postgresStore) InsertOne(ctx context.Context, collection string, doc Document) error {
	log := logger.FromContext(ctx)

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncodingDocument, err)
	}

	query, args, err := s.builder.
		Insert("documents").
		Columns("collection", "doc").
		Values(collection, docJSON).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("collection", collection).Msg("error: document insert failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return ErrDuplicateKey
		default:
			return fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return nil
}

func (s *postgresStore) UpdateOne(ctx context.Context, collection string, filter Filter, set Document) (int64, error) {
	log := logger.FromContext(ctx)

	filterJSON, err := json.Marshal(filter)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEncodingDocument, err)
	}
	setJSON, err := json.Marshal(set)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEncodingDocument, err)
	}

	query, args, err := s.builder.
		Update("documents").
		Set("doc", sq.Expr("doc || ?::jsonb", setJSON)).
		Where(sq.Expr(firstMatchSubquery, collection, filterJSON)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("collection", collection).Msg("error: document update failed")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return result.RowsAffected()
}

func (s *postgresStore) DeleteOne(ctx context.Context, collection string, filter Filter) (int64, error) {
	log := logger.FromContext(ctx)

	filterJSON, err := json.Marshal(filter)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEncodingDocument, err)
	}

	query, args, err := s.builder.
		Delete("documents").
		Where(sq.Expr(firstMatchSubquery, collection, filterJSON)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("collection", collection).Msg("error: document delete failed")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return result.RowsAffected()
}

func (s *postgresStore) DeleteMany(ctx context.Context, collection string, filter Filter) (int64, error) {
	log := logger.FromContext(ctx)

	filterJSON, err := json.Marshal(filter)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEncodingDocument, err)
	}

	query, args, err := s.builder.
		Delete("documents").
		Where(sq.Eq{"collection": collection}).
		Where(sq.Expr("doc @> ?::jsonb", filterJSON)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("collection", collection).Msg("error: bulk document delete failed")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return result.RowsAffected()
}

func (s *postgresStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *postgresStore) Close(_ context.Context) error {
	return s.db.Close()
}

// firstMatchSubquery pins single-document operations (UpdateOne, DeleteOne)
// to exactly one row: the oldest document matching the filter, mirroring the
// "first match" semantics of the Mongo adapter.
const firstMatchSubquery = `id = (
	SELECT id FROM documents
	WHERE collection = ? AND doc @> ?::jsonb
	ORDER BY id
	LIMIT 1
)`

func decodeDocument(payload []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodingDocument, err)
	}
	return doc, nil
}

func postgresError(err error) string {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
