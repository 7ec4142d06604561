package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsepixeltech/chatcore/core"
)

func turn(text string, intent core.Intent, entities core.Entities) (core.Message, core.IntentResult) {
	msg := core.NewMessage(text, "sess-1", "")
	return msg, core.IntentResult{
		Intent:     intent,
		Confidence: 0.9,
		Entities:   entities,
		Source:     core.SourceRuleBased,
	}
}

func TestInMemoryStore_LoadCreatesFreshSession(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()

	sess, err := store.Load("sess-1")
	require.NoError(t, err)

	assert.Equal(t, "sess-1", sess.ID)
	assert.Empty(t, sess.History)
	assert.True(t, sess.AccumulatedEntities.IsZero())
	assert.True(t, sess.ExpiresAt.After(sess.CreatedAt))
}

func TestInMemoryStore_AppendAccumulatesState(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()

	msg, result := turn("I need a gaming laptop", core.IntentProductSearch,
		core.Entities{Category: "laptop", Features: []string{"gaming"}})
	sess, err := store.Append("sess-1", msg, result)
	require.NoError(t, err)
	assert.Len(t, sess.History, 1)
	assert.Equal(t, core.IntentProductSearch, sess.LastIntent)

	msg, result = turn("under 70000", core.IntentProductSearch,
		core.Entities{Budget: 70000, BudgetKind: core.BudgetCeiling})
	sess, err = store.Append("sess-1", msg, result)
	require.NoError(t, err)

	assert.Len(t, sess.History, 2)
	assert.Equal(t, "laptop", sess.AccumulatedEntities.Category)
	assert.Equal(t, float64(70000), sess.AccumulatedEntities.Budget)
	assert.Equal(t, core.BudgetCeiling, sess.AccumulatedEntities.BudgetKind)
	assert.Equal(t, []string{"gaming"}, sess.AccumulatedEntities.Features)
}

func TestInMemoryStore_UnknownIntentDoesNotUpdateLastIntent(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()

	msg, result := turn("hello", core.IntentGreeting, core.Entities{})
	_, err := store.Append("sess-1", msg, result)
	require.NoError(t, err)

	msg, result = turn("asdfgh", core.IntentUnknown, core.Entities{})
	sess, err := store.Append("sess-1", msg, result)
	require.NoError(t, err)

	assert.Equal(t, core.IntentGreeting, sess.LastIntent)
}

func TestInMemoryStore_HistoryEvictsOldestBeyondCap(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore(func(o *Options) {
		o.HistoryLimit = 3
	})

	for i := 1; i <= 5; i++ {
		msg, result := turn(fmt.Sprintf("message %d", i), core.IntentFAQ, core.Entities{})
		_, err := store.Append("sess-1", msg, result)
		require.NoError(t, err)
	}

	sess, err := store.Load("sess-1")
	require.NoError(t, err)
	require.Len(t, sess.History, 3)
	assert.Equal(t, "message 3", sess.History[0].Message.Text)
	assert.Equal(t, "message 5", sess.History[2].Message.Text)
}

func TestInMemoryStore_ExpiredSessionYieldsFreshState(t *testing.T) {
	t.Parallel()

	now := time.Now()
	store := NewInMemoryStore(func(o *Options) {
		o.TTL = time.Minute
		o.Clock = func() time.Time { return now }
	})

	msg, result := turn("track order #ORD12345", core.IntentOrderTracking,
		core.Entities{OrderNumber: "ORD12345"})
	_, err := store.Append("sess-1", msg, result)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)

	sess, err := store.Load("sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", sess.ID, "fresh session keeps the same id")
	assert.Empty(t, sess.History)
	assert.True(t, sess.AccumulatedEntities.IsZero())
	assert.Equal(t, core.Intent(""), sess.LastIntent)
}

func TestInMemoryStore_AppendRefreshesExpiry(t *testing.T) {
	t.Parallel()

	now := time.Now()
	store := NewInMemoryStore(func(o *Options) {
		o.TTL = time.Minute
		o.Clock = func() time.Time { return now }
	})

	msg, result := turn("hello", core.IntentGreeting, core.Entities{})
	_, err := store.Append("sess-1", msg, result)
	require.NoError(t, err)

	// 45s later the session would expire in 15s; a new turn resets the
	// window to a full minute.
	now = now.Add(45 * time.Second)
	msg, result = turn("need a phone", core.IntentProductSearch, core.Entities{})
	sess, err := store.Append("sess-1", msg, result)
	require.NoError(t, err)

	assert.Equal(t, now.Add(time.Minute), sess.ExpiresAt)
	assert.Len(t, sess.History, 2)
}

func TestInMemoryStore_Expire(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()

	msg, result := turn("hello", core.IntentGreeting, core.Entities{})
	_, err := store.Append("sess-1", msg, result)
	require.NoError(t, err)

	require.NoError(t, store.Expire("sess-1"))

	sess, err := store.Load("sess-1")
	require.NoError(t, err)
	assert.Empty(t, sess.History)
}

func TestInMemoryStore_LoadReturnsClone(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()

	msg, result := turn("hello", core.IntentGreeting, core.Entities{Category: "laptop"})
	_, err := store.Append("sess-1", msg, result)
	require.NoError(t, err)

	first, err := store.Load("sess-1")
	require.NoError(t, err)
	first.AccumulatedEntities.Category = "mutated"
	first.History[0].Message.Text = "mutated"

	second, err := store.Load("sess-1")
	require.NoError(t, err)
	assert.Equal(t, "laptop", second.AccumulatedEntities.Category)
	assert.Equal(t, "hello", second.History[0].Message.Text)
}

func TestInMemoryStore_Sweep(t *testing.T) {
	t.Parallel()

	now := time.Now()
	store := NewInMemoryStore(func(o *Options) {
		o.TTL = time.Minute
		o.Clock = func() time.Time { return now }
	})

	for _, id := range []string{"a", "b", "c"} {
		msg := core.NewMessage("hello", id, "")
		_, err := store.Append(id, msg, core.IntentResult{Intent: core.IntentGreeting})
		require.NoError(t, err)
	}
	require.Equal(t, 3, store.Len())

	now = now.Add(2 * time.Minute)
	msg := core.NewMessage("hello", "d", "")
	_, err := store.Append("d", msg, core.IntentResult{Intent: core.IntentGreeting})
	require.NoError(t, err)

	assert.Equal(t, 3, store.Sweep())
	assert.Equal(t, 1, store.Len())
}

func TestInMemoryStore_ConcurrentTurnsSameSession(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()
	const turns = 50

	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			release := store.Acquire("sess-1")
			defer release()

			msg, result := turn(fmt.Sprintf("message %d", i), core.IntentFAQ, core.Entities{})
			_, err := store.Append("sess-1", msg, result)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	sess, err := store.Load("sess-1")
	require.NoError(t, err)
	assert.Len(t, sess.History, 10, "history stays at the cap under concurrency")
}

func TestInMemoryStore_ConcurrentDistinctSessions(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("sess-%d", i)
			release := store.Acquire(id)
			defer release()

			msg := core.NewMessage("hello", id, "")
			_, err := store.Append(id, msg, core.IntentResult{Intent: core.IntentGreeting})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, store.Len())
}
