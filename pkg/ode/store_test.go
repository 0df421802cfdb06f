package ode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJobStoreRecordAndList(t *testing.T) {
	s, err := OpenJobStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	q := validQuery()
	q.Async = true
	id, err := s.Record(q, "ode-1", "Submitted")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	jobs, err := s.List()
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, id, jobs[0].ID)
	require.Equal(t, "ode-1", jobs[0].ODEJobID)
	require.Equal(t, TargetMars, jobs[0].Target)
	require.Equal(t, "Submitted", jobs[0].State)
}

func TestJobStoreUpdateState(t *testing.T) {
	s, err := OpenJobStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Record(validQuery(), "ode-1", "Submitted")
	require.NoError(t, err)

	require.NoError(t, s.UpdateState("ode-1", "Finished"))
	jobs, err := s.List()
	require.NoError(t, err)
	require.Equal(t, "Finished", jobs[0].State)

	require.Error(t, s.UpdateState("missing", "Finished"))
}

func TestJobStorePersistsToDisk(t *testing.T) {
	path := t.TempDir() + "/jobs.db"

	s, err := OpenJobStore(path)
	require.NoError(t, err)
	_, err = s.Record(validQuery(), "ode-1", "Submitted")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = OpenJobStore(path)
	require.NoError(t, err)
	defer s.Close()
	jobs, err := s.List()
	require.NoError(t, err)
	require.Len(t, jobs, 1)
}
