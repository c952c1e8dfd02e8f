package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConsumer() *ConsumerDTO {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return &ConsumerDTO{
		Timestamped:  Timestamped{Created: &created},
		UUID:         "c-uuid",
		Name:         "host-1",
		ReleaseVer:   &ReleaseVerDTO{ReleaseVer: "8.6"},
		Owner:        &NestedOwnerDTO{ID: "o1", Key: "acme"},
		Environments: []*EnvironmentDTO{{ID: "e1", Name: "dev"}, {ID: "e2", Name: "qa"}},
		Facts:        map[string]string{"virt.is_guest": "TRUE"},
		Capabilities: []*CapabilityDTO{{Name: "cert_v3"}, {Name: "ram"}},
		GuestIDs:     []*GuestIDDTO{{GuestID: "g1"}},
	}
}

func TestConsumerDTO_Clone_IsIndependent(t *testing.T) {
	t.Parallel()

	orig := sampleConsumer()
	clone := orig.Clone()
	require.True(t, orig.Equal(clone))

	clone.Facts["virt.is_guest"] = "false"
	clone.Environments[0].Name = "prod"
	clone.ReleaseVer.ReleaseVer = "9"
	*clone.Created = clone.Created.Add(time.Hour)

	assert.Equal(t, "TRUE", orig.Facts["virt.is_guest"])
	assert.Equal(t, "dev", orig.Environments[0].Name)
	assert.Equal(t, "8.6", orig.ReleaseVer.ReleaseVer)
	assert.False(t, orig.Equal(clone))
}

func TestConsumerDTO_Populate(t *testing.T) {
	t.Parallel()

	src := sampleConsumer()
	dst := &ConsumerDTO{Name: "old"}
	got := dst.Populate(src)

	assert.Same(t, dst, got)
	assert.True(t, dst.Equal(src))

	untouched := &ConsumerDTO{Name: "keep"}
	untouched.Populate(nil)
	assert.Equal(t, "keep", untouched.Name)
}

func TestConsumerDTO_Equal_ComparesReferencesByID(t *testing.T) {
	t.Parallel()

	a := sampleConsumer()
	b := sampleConsumer()
	b.Owner.Key = "renamed"
	assert.True(t, a.Equal(b))

	b.Owner.ID = "o2"
	assert.False(t, a.Equal(b))

	c := sampleConsumer()
	c.Capabilities = []*CapabilityDTO{{Name: "ram"}, {Name: "cert_v3"}}
	assert.True(t, a.Equal(c), "capabilities are unordered")

	var nilDTO *ConsumerDTO
	assert.True(t, nilDTO.Equal(nil))
	assert.False(t, a.Equal(nil))
}

func TestConsumerDTO_IsGuest(t *testing.T) {
	t.Parallel()

	assert.True(t, sampleConsumer().IsGuest())
	assert.False(t, (&ConsumerDTO{}).IsGuest())
	assert.False(t, (&ConsumerDTO{Facts: map[string]string{"virt.is_guest": "no"}}).IsGuest())
}

func TestConsumerDTO_GuestIDs(t *testing.T) {
	t.Parallel()

	d := &ConsumerDTO{}

	added, err := d.AddGuestID(&GuestIDDTO{GuestID: "g1"})
	require.NoError(t, err)
	assert.True(t, added)

	added, err = d.AddGuestID(&GuestIDDTO{GuestID: "g1"})
	require.NoError(t, err)
	assert.False(t, added)

	_, err = d.AddGuestID(&GuestIDDTO{})
	assert.ErrorIs(t, err, ErrIncompleteGuestID)

	err = d.SetGuestIDs([]*GuestIDDTO{{GuestID: "a"}, nil})
	assert.ErrorIs(t, err, ErrIncompleteGuestID)
	assert.Len(t, d.GuestIDs, 1, "failed set leaves guests unchanged")

	require.NoError(t, d.SetGuestIDs([]*GuestIDDTO{{GuestID: "a"}, {GuestID: "b"}}))
	removed, err := d.RemoveGuestID("a")
	require.NoError(t, err)
	assert.True(t, removed)
	require.Len(t, d.GuestIDs, 1)
	assert.Equal(t, "b", d.GuestIDs[0].GuestID)

	_, err = d.RemoveGuestID("")
	assert.ErrorIs(t, err, ErrIncompleteGuestID)
}

func TestConsumerDTO_MarshalJSON(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(sampleConsumer())
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "/consumers/c-uuid", out["href"])
	assert.Equal(t, map[string]any{"releaseVer": "8.6"}, out["releaseVer"])
	assert.Equal(t, "2024-03-01T10:00:00Z", out["created"])
}
