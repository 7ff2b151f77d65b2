package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"delivery-map-service/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func testStore(t *testing.T, initial []byte) *JSONRecordStore {
	t.Helper()
	return NewJSONRecordStore(NewMemorySlot(initial), zap.NewNop())
}

func TestLoadEmptySlot(t *testing.T) {
	store := testStore(t, nil)

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestLoadCorruptSlotTreatedAsEmpty(t *testing.T) {
	store := testStore(t, []byte(`{not json[`))

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := testStore(t, nil)
	ctx := context.Background()

	created := time.Date(2026, 8, 14, 9, 30, 0, 0, time.UTC)
	records := []domain.DeliveryRecord{
		{
			ID:             "1755163800000-a1b2c3d4",
			SourceFilename: "lieferschein.pdf",
			ZRD:            ptr("4471"),
			Contact:        ptr("Maria Klein"),
			Address:        ptr("Hauptstraße 5, 80331 München"),
			Lat:            ptr(48.137),
			Lon:            ptr(11.575),
			Ticket:         ptr("T-100"),
			Status:         domain.StatusHigh,
			CreatedAt:      created,
		},
		{
			ID:             "1755163800001-e5f6a7b8",
			SourceFilename: "scan.pdf",
			Status:         domain.StatusLow,
			CreatedAt:      created.Add(time.Minute),
		},
	}

	require.NoError(t, store.Save(ctx, records))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestAppendPreservesOrder(t *testing.T) {
	store := testStore(t, nil)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Append(ctx, domain.DeliveryRecord{ID: id, Status: domain.StatusLow}))
	}

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "a", loaded[0].ID)
	assert.Equal(t, "c", loaded[2].ID)
}

func TestSetCoordinates(t *testing.T) {
	store := testStore(t, nil)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, domain.DeliveryRecord{ID: "r1", Status: domain.StatusLow}))

	require.NoError(t, store.SetCoordinates(ctx, "r1", 48.137, 11.575))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, loaded[0].Placed())
	assert.Equal(t, 48.137, *loaded[0].Lat)
	assert.Equal(t, 11.575, *loaded[0].Lon)
}

func TestSetCoordinatesMissingIDIsNoop(t *testing.T) {
	store := testStore(t, nil)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, domain.DeliveryRecord{ID: "r1", Status: domain.StatusLow}))

	require.NoError(t, store.SetCoordinates(ctx, "ghost", 1, 2))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.False(t, loaded[0].Placed())
}

func TestSetCoordinatesFirstWriteWins(t *testing.T) {
	store := testStore(t, nil)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, domain.DeliveryRecord{ID: "r1", Status: domain.StatusLow}))
	require.NoError(t, store.SetCoordinates(ctx, "r1", 48.137, 11.575))

	// Second write must not move the marker.
	require.NoError(t, store.SetCoordinates(ctx, "r1", 52.52, 13.405))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 48.137, *loaded[0].Lat)
	assert.Equal(t, 11.575, *loaded[0].Lon)
}
