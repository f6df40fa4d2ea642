package mongo

import (
	"testing"

	appointmentsrepository "medizy/internal/appointments/repository"
	doctorsrepository "medizy/internal/doctors/repository"
	notificationsrepository "medizy/internal/notifications/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCollectionsMatchRepositories(t *testing.T) {
	defs := collections()
	for _, name := range []string{
		appointmentsrepository.CollectionName,
		appointmentsrepository.LockCollectionName,
		appointmentsrepository.RetiredTokensCollectionName,
		doctorsrepository.CollectionName,
		notificationsrepository.CollectionName,
	} {
		def, ok := defs[name]
		require.True(t, ok, "no migration for %s", name)
		assert.NotEmpty(t, def.Validator)
	}
	assert.Len(t, defs, 5)
}

func TestTokenIndexIsUnique(t *testing.T) {
	idx := AppointmentsIndexes[0]
	assert.Equal(t, bson.D{
		{Key: "doctor_id", Value: 1},
		{Key: "token_date", Value: 1},
		{Key: "token_number", Value: 1},
	}, idx.Keys)
	require.NotNil(t, idx.Options.Unique)
	assert.True(t, *idx.Options.Unique)
}

func TestSlotLockTTL(t *testing.T) {
	require.Len(t, SlotLocksIndexes, 1)
	opts := SlotLocksIndexes[0].Options
	require.NotNil(t, opts.ExpireAfterSeconds)
	assert.Equal(t, int32(0), *opts.ExpireAfterSeconds)
}
