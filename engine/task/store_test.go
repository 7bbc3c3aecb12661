package task

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/Keith9922/Ketcher-demo/engine/core"
)

func newStoredTask(t *testing.T, store *Store, title string) *Task {
	t.Helper()
	tk, err := New(title, Source{SMILES: "CCO"})
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), tk))
	return tk
}

func TestStoreBasics(t *testing.T) {
	ctx := context.Background()

	t.Run("Should get what was put as an independent copy", func(t *testing.T) {
		store := NewStore()
		tk := newStoredTask(t, store, "Mol-0001")

		got, err := store.Get(ctx, tk.ID)
		require.NoError(t, err)
		assert.Equal(t, tk.Title, got.Title)

		got.Title = "mutated"
		again, err := store.Get(ctx, tk.ID)
		require.NoError(t, err)
		assert.Equal(t, "Mol-0001", again.Title)
	})

	t.Run("Should reject duplicate ids", func(t *testing.T) {
		store := NewStore()
		tk := newStoredTask(t, store, "Mol-0001")
		assert.Error(t, store.Put(ctx, tk))
	})

	t.Run("Should return NotFoundError for unknown ids", func(t *testing.T) {
		store := NewStore()
		_, err := store.Get(ctx, core.MustNewID())
		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("Should list in insertion order", func(t *testing.T) {
		store := NewStore()
		for i := 1; i <= 3; i++ {
			newStoredTask(t, store, fmt.Sprintf("Mol-%04d", i))
		}
		list, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "Mol-0001", list[0].Title)
		assert.Equal(t, "Mol-0003", list[2].Title)
		assert.Equal(t, 3, store.Len())
	})
}

func TestStoreUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should commit the mutation and bump UpdatedAt", func(t *testing.T) {
		store := NewStore()
		tk := newStoredTask(t, store, "Mol-0001")

		updated, err := store.Update(ctx, tk.ID, func(t *Task) error {
			t.Status = StatusInProgress
			t.ClaimedBy = "alice"
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, StatusInProgress, updated.Status)
		assert.False(t, updated.UpdatedAt.Before(tk.UpdatedAt))

		stored, err := store.Get(ctx, tk.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", stored.ClaimedBy)
	})

	t.Run("Should leave the task untouched when fn fails", func(t *testing.T) {
		store := NewStore()
		tk := newStoredTask(t, store, "Mol-0001")

		_, err := store.Update(ctx, tk.ID, func(t *Task) error {
			t.Status = StatusApproved
			return fmt.Errorf("boom")
		})
		require.Error(t, err)

		stored, err := store.Get(ctx, tk.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusNew, stored.Status)
	})

	t.Run("Should return NotFoundError for unknown ids", func(t *testing.T) {
		store := NewStore()
		_, err := store.Update(ctx, core.MustNewID(), func(t *Task) error { return nil })
		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("Should serialize updates on the same task", func(t *testing.T) {
		store := NewStore()
		tk := newStoredTask(t, store, "Mol-0001")

		var group errgroup.Group
		for i := 0; i < 50; i++ {
			group.Go(func() error {
				_, err := store.Update(ctx, tk.ID, func(t *Task) error {
					t.Title = fmt.Sprintf("%s+", t.Title)
					return nil
				})
				return err
			})
		}
		require.NoError(t, group.Wait())

		stored, err := store.Get(ctx, tk.ID)
		require.NoError(t, err)
		assert.Len(t, stored.Title, len("Mol-0001")+50)
	})

	t.Run("Should let updates on different tasks overlap", func(t *testing.T) {
		store := NewStore()
		a := newStoredTask(t, store, "Mol-0001")
		b := newStoredTask(t, store, "Mol-0002")

		aEntered := make(chan struct{})
		release := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, a.ID, func(t *Task) error {
				close(aEntered)
				<-release
				return nil
			})
			assert.NoError(t, err)
		}()

		<-aEntered
		done := make(chan struct{})
		go func() {
			_, err := store.Update(ctx, b.ID, func(t *Task) error { return nil })
			assert.NoError(t, err)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("update on an unrelated task blocked behind a held task lock")
		}
		close(release)
		wg.Wait()
	})
}
