// Package committer applies batches of Spanner mutations atomically.
//
// Gateways build mutations through the model facades, collect them into a
// CommitPlan and apply the plan in one call:
//
//	plan := committer.NewPlan()
//	plan.Add(products.InsertMut(data))
//	return comm.Apply(ctx, plan)
//
// When mutations depend on rows read in the same transaction, use
// ReadWrite and buffer the plan on the transaction:
//
//	err := comm.ReadWrite(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
//	    row, err := txn.ReadRow(ctx, table, key, cols)
//	    ...
//	    return committer.Buffer(txn, plan)
//	})
package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

// CommitPlan is a typed wrapper around Spanner mutations.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically within a Spanner transaction.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}
	return nil
}

// ReadWrite runs fn in a read-write transaction. fn may be retried on abort,
// so it must not keep state across attempts. Errors returned by fn are passed
// through unwrapped.
func (c *Committer) ReadWrite(ctx context.Context, fn func(context.Context, *spanner.ReadWriteTransaction) error) error {
	var fnErr error
	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		fnErr = fn(ctx, txn)
		return fnErr
	})
	if err == nil {
		return nil
	}
	if fnErr != nil {
		return fnErr
	}
	return fmt.Errorf("transaction failed: %w", err)
}

// Buffer adds the plan's mutations to txn.
func Buffer(txn *spanner.ReadWriteTransaction, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}
	return txn.BufferWrite(plan.Mutations())
}
