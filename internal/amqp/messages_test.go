package amqp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRoundTrip(t *testing.T) {
	msg := NewMessage(TypeExpenseAdded, "t1", "e1", 25000)
	data, err := msg.ToJSON()
	require.NoError(t, err)

	got, err := MessageFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, TypeExpenseAdded, got.Type)
	assert.Equal(t, "t1", got.TripID)
	assert.Equal(t, "e1", got.ExpenseID)
	assert.Equal(t, int64(25000), got.AmountCents)
	assert.False(t, got.OccurredAt.IsZero())
}

func TestMessageFromJSONRejectsGarbage(t *testing.T) {
	_, err := MessageFromJSON([]byte("{not json"))
	assert.Error(t, err)
}

func TestTripMessagesOmitExpenseFields(t *testing.T) {
	data, err := NewMessage(TypeTripDeleted, "t9", "", 0).ToJSON()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "expenseId")
	assert.NotContains(t, string(data), "amountCents")
}
