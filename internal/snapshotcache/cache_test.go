package snapshotcache

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skrillsdev/skrills/internal/skillindex"
)

func metaNamed(name string) skillindex.SkillMeta {
	return skillindex.SkillMeta{Name: name, ContentHash: "sha256:" + name}
}

func TestCache_RebuildsOnFirstGet(t *testing.T) {
	calls := 0
	c := New(time.Minute, func() ([]skillindex.SkillMeta, []RootFingerprint, error) {
		calls++
		return []skillindex.SkillMeta{metaNamed("a")}, nil, nil
	}, nil)

	snap, err := c.Get()
	require.NoError(t, err)
	require.Len(t, snap.Skills, 1)
	assert.Equal(t, 1, calls)

	// Within TTL: no second rebuild.
	_, err = c.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestCache_RebuildsAfterTTLExpires(t *testing.T) {
	calls := 0
	c := New(time.Millisecond, func() ([]skillindex.SkillMeta, []RootFingerprint, error) {
		calls++
		return []skillindex.SkillMeta{metaNamed("a")}, nil, nil
	}, nil)

	_, err := c.Get()
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = c.Get()
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCache_KeepsPreviousSnapshotWhenRebuildIsEmpty(t *testing.T) {
	first := true
	c := New(time.Millisecond, func() ([]skillindex.SkillMeta, []RootFingerprint, error) {
		if first {
			first = false
			return []skillindex.SkillMeta{metaNamed("a")}, nil, nil
		}
		return nil, nil, nil
	}, nil)

	snap, err := c.Get()
	require.NoError(t, err)
	require.Len(t, snap.Skills, 1)

	time.Sleep(5 * time.Millisecond)

	snap2, err := c.Get()
	require.NoError(t, err)
	require.Len(t, snap2.Skills, 1, "empty rebuild must not clobber a non-empty snapshot")
}

func TestCache_ManualRefreshForcesRebuild(t *testing.T) {
	calls := 0
	c := New(time.Hour, func() ([]skillindex.SkillMeta, []RootFingerprint, error) {
		calls++
		return []skillindex.SkillMeta{metaNamed("a")}, nil, nil
	}, nil)

	_, err := c.Get()
	require.NoError(t, err)
	c.Refresh()
	_, err = c.Get()
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCache_SurfacesRebuildErrorsButKeepsPriorSnapshot(t *testing.T) {
	boom := errors.New("boom")
	succeed := true
	c := New(time.Millisecond, func() ([]skillindex.SkillMeta, []RootFingerprint, error) {
		if succeed {
			succeed = false
			return []skillindex.SkillMeta{metaNamed("a")}, nil, nil
		}
		return nil, nil, boom
	}, nil)

	snap, err := c.Get()
	require.NoError(t, err)
	require.Len(t, snap.Skills, 1)

	time.Sleep(5 * time.Millisecond)
	snap2, err := c.Get()
	assert.ErrorIs(t, err, boom)
	require.NotNil(t, snap2)
	assert.Len(t, snap2.Skills, 1)
}

func TestSeed_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills-cache.json")
	seed := NewSeed(path)

	snap := &Snapshot{TakenAt: time.Now(), Skills: []skillindex.SkillMeta{metaNamed("a")}}
	buildIndexes(snap)

	require.NoError(t, seed.Save(snap))

	loaded, ok := seed.Load()
	require.True(t, ok)
	require.Len(t, loaded.Skills, 1)
	assert.Equal(t, "a", loaded.Skills[0].Name)
}

func TestSeed_LoadMissingIsNotAnError(t *testing.T) {
	seed := NewSeed(filepath.Join(t.TempDir(), "absent.json"))
	_, ok := seed.Load()
	assert.False(t, ok)
}
