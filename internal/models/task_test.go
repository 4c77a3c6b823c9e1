package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"to_do", "in_progress", "completed"} {
		status, err := ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, status.String())
		assert.True(t, status.IsValid())
	}

	for _, s := range []string{"", "done", "TO_DO", "archived", " to_do"} {
		_, err := ParseStatus(s)
		assert.ErrorIs(t, err, ErrInvalidStatus, s)
	}
}

func TestDefaultStatus(t *testing.T) {
	assert.Equal(t, StatusToDo, DefaultStatus)
}

func TestStatus_JSON(t *testing.T) {
	data, err := json.Marshal(StatusInProgress)
	require.NoError(t, err)
	assert.JSONEq(t, `"in_progress"`, string(data))

	var status Status
	require.NoError(t, json.Unmarshal([]byte(`"completed"`), &status))
	assert.Equal(t, StatusCompleted, status)

	t.Run("unknown value", func(t *testing.T) {
		var s Status
		err := json.Unmarshal([]byte(`"blocked"`), &s)
		assert.ErrorIs(t, err, ErrInvalidStatus)
		assert.Empty(t, s)
	})

	t.Run("wrong type", func(t *testing.T) {
		var s Status
		err := json.Unmarshal([]byte(`1`), &s)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("marshal invalid", func(t *testing.T) {
		_, err := json.Marshal(Status("blocked"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestStatus_Scan(t *testing.T) {
	var status Status
	require.NoError(t, status.Scan("in_progress"))
	assert.Equal(t, StatusInProgress, status)

	require.NoError(t, status.Scan([]byte("completed")))
	assert.Equal(t, StatusCompleted, status)

	assert.ErrorIs(t, status.Scan("pending"), ErrInvalidStatus)
	assert.ErrorIs(t, status.Scan(nil), ErrInvalidStatus)
	assert.ErrorIs(t, status.Scan(42), ErrInvalidStatus)
	assert.Equal(t, StatusCompleted, status, "failed scan must not overwrite")
}

func TestStatus_Value(t *testing.T) {
	v, err := StatusToDo.Value()
	require.NoError(t, err)
	assert.Equal(t, "to_do", v)

	_, err = Status("unknown").Value()
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
