package repository

import (
	"context"
	"fmt"

	"staybook/pkg/metrics"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

type mongoTxManager struct {
	client *mongo.Client
}

// NewTxManager - транзакции MongoDB требуют replica set или sharded cluster
func NewTxManager(client *mongo.Client) TxManager {
	return &mongoTxManager{client: client}
}

// WithTransaction выполняет fn в сессии с транзакцией
// Драйвер сам повторяет fn при TransientTransactionError, поэтому fn не должна иметь внешних побочных эффектов
func (m *mongoTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	}, txnOpts)

	metrics.RecordTransaction(serviceName, err)

	return err
}
