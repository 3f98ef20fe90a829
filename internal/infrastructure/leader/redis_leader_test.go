package leader

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The hour-long TTL keeps the heartbeat ticker silent for the duration of
// these tests; only the commands issued directly by the calls under test
// reach the mock.
func newTestElection() (*RedisLeaderElection, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	return NewRedisLeaderElection(db, time.Hour), mock
}

func TestBecomeLeader_Acquired(t *testing.T) {
	le, mock := newTestElection()
	mock.ExpectSetNX(leaderKey, "instance-1", time.Hour).SetVal(true)

	became, err := le.BecomeLeader(context.Background(), "instance-1")
	require.NoError(t, err)
	assert.True(t, became)
	assert.NotNil(t, le.stopHeartbeat, "acquiring leadership starts the heartbeat")
	assert.NoError(t, mock.ExpectationsWereMet())

	le.stopHeartbeat()
}

func TestBecomeLeader_HeldElsewhere(t *testing.T) {
	le, mock := newTestElection()
	mock.ExpectSetNX(leaderKey, "instance-2", time.Hour).SetVal(false)

	became, err := le.BecomeLeader(context.Background(), "instance-2")
	require.NoError(t, err)
	assert.False(t, became)
	assert.Nil(t, le.stopHeartbeat, "no heartbeat without the key")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReleaseLeadership_StopsHeartbeat(t *testing.T) {
	le, mock := newTestElection()
	mock.ExpectSetNX(leaderKey, "instance-1", time.Hour).SetVal(true)
	mock.ExpectEval(releaseScript, []string{leaderKey}, "instance-1").SetVal(int64(1))

	became, err := le.BecomeLeader(context.Background(), "instance-1")
	require.NoError(t, err)
	require.True(t, became)
	require.NotNil(t, le.stopHeartbeat)

	require.NoError(t, le.ReleaseLeadership(context.Background(), "instance-1"))
	assert.Nil(t, le.stopHeartbeat, "releasing must cancel the heartbeat, not wait for its next extend to fail")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReleaseLeadership_WithoutLeading(t *testing.T) {
	le, mock := newTestElection()
	mock.ExpectEval(releaseScript, []string{leaderKey}, "instance-1").SetVal(int64(0))

	require.NoError(t, le.ReleaseLeadership(context.Background(), "instance-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsLeader(t *testing.T) {
	le, mock := newTestElection()

	mock.ExpectGet(leaderKey).SetVal("instance-1")
	isLeader, err := le.IsLeader(context.Background(), "instance-1")
	require.NoError(t, err)
	assert.True(t, isLeader)

	mock.ExpectGet(leaderKey).SetVal("instance-2")
	isLeader, err = le.IsLeader(context.Background(), "instance-1")
	require.NoError(t, err)
	assert.False(t, isLeader)

	mock.ExpectGet(leaderKey).RedisNil()
	isLeader, err = le.IsLeader(context.Background(), "instance-1")
	require.NoError(t, err)
	assert.False(t, isLeader, "no key means nobody leads")
	assert.NoError(t, mock.ExpectationsWereMet())
}
