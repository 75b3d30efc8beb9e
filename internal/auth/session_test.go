package auth

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManager_GenerateVerifyDelete(t *testing.T) {
	sm := NewSessionManager()

	token, err := sm.GenerateSessionToken("u-1")
	require.NoError(t, err)
	assert.Len(t, token, 64)

	userID, err := sm.VerifySessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)

	sm.DeleteSessionToken(token)
	_, err = sm.VerifySessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)

	sm.DeleteSessionToken(token)
}

func TestSessionManager_MultipleSessionsPerUser(t *testing.T) {
	sm := NewSessionManager()

	first, err := sm.GenerateSessionToken("u-1")
	require.NoError(t, err)
	second, err := sm.GenerateSessionToken("u-1")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	sm.DeleteSessionToken(first)
	userID, err := sm.VerifySessionToken(second)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
}

func TestSessionManager_Concurrent(t *testing.T) {
	sm := NewSessionManager()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := sm.GenerateSessionToken("u-1")
			if !assert.NoError(t, err) {
				return
			}
			_, err = sm.VerifySessionToken(token)
			assert.NoError(t, err)
			sm.DeleteSessionToken(token)
		}()
	}
	wg.Wait()
	assert.Empty(t, sm.tokens)
}
