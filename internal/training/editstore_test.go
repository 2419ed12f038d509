package training

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEditStore_PublishOverwritesSameExercise(t *testing.T) {
	store := NewEditStore()
	exerciseID := primitive.NewObjectID()

	store.Publish(record(exerciseID, 3, 10, 50, false))
	store.Publish(record(exerciseID, 3, 10, 70, false))

	edit, ok := store.Get(exerciseID)
	require.True(t, ok)
	assert.Equal(t, 70, edit.Weight)
	assert.Len(t, store.Snapshot(), 1)
}

func TestEditStore_SnapshotIsImmutableUnderLaterPublishes(t *testing.T) {
	store := NewEditStore()
	first := primitive.NewObjectID()
	store.Publish(record(first, 3, 10, 50, false))

	snapshot := store.Snapshot()
	store.Publish(record(primitive.NewObjectID(), 4, 8, 60, false))

	assert.Len(t, snapshot, 1, "an already handed-out snapshot must not grow")
	assert.Len(t, store.Snapshot(), 2)
}

func TestEditStore_ConsumeEmptiesTheStore(t *testing.T) {
	store := NewEditStore()
	exerciseID := primitive.NewObjectID()
	store.Publish(record(exerciseID, 3, 10, 50, false))

	edits := store.Consume()
	require.Len(t, edits, 1)
	assert.Empty(t, store.Snapshot())

	_, ok := store.Get(exerciseID)
	assert.False(t, ok)
}

func TestEditStore_SubscriberGetsInitialSnapshot(t *testing.T) {
	store := NewEditStore()
	exerciseID := primitive.NewObjectID()
	store.Publish(record(exerciseID, 3, 10, 50, false))

	ch := store.Subscribe()
	snapshot := <-ch
	require.Len(t, snapshot, 1)
	assert.Equal(t, 50, snapshot[exerciseID].Weight)
}

func TestEditStore_SlowSubscriberSeesOnlyLatest(t *testing.T) {
	store := NewEditStore()
	exerciseID := primitive.NewObjectID()

	ch := store.Subscribe()
	// Not reading yet: three publishes land while the observer is away.
	store.Publish(record(exerciseID, 3, 10, 50, false))
	store.Publish(record(exerciseID, 3, 10, 60, false))
	store.Publish(record(exerciseID, 3, 10, 70, false))

	snapshot := <-ch
	require.Len(t, snapshot, 1)
	assert.Equal(t, 70, snapshot[exerciseID].Weight, "intermediate snapshots are skipped")

	select {
	case extra := <-ch:
		t.Fatalf("no further snapshot expected, got %v", extra)
	default:
	}
}

func TestEditStore_ClearNotifiesSubscribers(t *testing.T) {
	store := NewEditStore()
	store.Publish(record(primitive.NewObjectID(), 3, 10, 50, false))

	ch := store.Subscribe()
	<-ch // initial snapshot

	store.Clear()
	snapshot := <-ch
	assert.Empty(t, snapshot)
}
