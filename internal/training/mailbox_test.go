package training

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMailbox_EmptyReadReportsNothing(t *testing.T) {
	mailbox := NewMailbox()
	_, ok := mailbox.ReadAndClear()
	assert.False(t, ok)
}

func TestMailbox_ReadAndClearConsumes(t *testing.T) {
	mailbox := NewMailbox()
	exerciseID := primitive.NewObjectID()
	mailbox.Write(record(exerciseID, 3, 10, 50, false))

	got, ok := mailbox.ReadAndClear()
	require.True(t, ok)
	assert.Equal(t, exerciseID, got.ExerciseID)

	_, ok = mailbox.ReadAndClear()
	assert.False(t, ok, "second read must find the slot empty")
}

func TestMailbox_SecondWriteReplacesFirst(t *testing.T) {
	mailbox := NewMailbox()
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	mailbox.Write(record(first, 3, 10, 50, false))
	mailbox.Write(record(second, 4, 8, 60, false))

	got, ok := mailbox.ReadAndClear()
	require.True(t, ok)
	assert.Equal(t, second, got.ExerciseID, "the slot keeps only the most recent record")
}
