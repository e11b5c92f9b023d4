package rotation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kjannette/sidebar-pricebot/internal/display/displaymock"
	"github.com/kjannette/sidebar-pricebot/internal/models"
	"github.com/kjannette/sidebar-pricebot/internal/pricing"
)

var at = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func snapshotFor(ticker string) *models.Snapshot {
	raw := map[string]models.RawQuote{
		"SOL": {USD: 150, USD24hChange: 3},
		"ETH": {USD: 3000, USD24hChange: 1},
		"BTC": {USD: 60000, USD24hChange: -1},
	}
	return pricing.BuildSnapshot(uuid.New(), ticker, raw, true, at)
}

func newEngine(t *testing.T, snap *models.Snapshot) (*Engine, *displaymock.MockPublisher) {
	t.Helper()
	ctrl := gomock.NewController(t)
	pub := displaymock.NewMockPublisher(ctrl)
	e := NewEngine(func() *models.Snapshot { return snap }, pub, zerolog.Nop(), nil)
	e.now = func() time.Time { return at }
	return e, pub
}

func TestTick_CyclesThroughDenominations(t *testing.T) {
	t.Parallel()

	e, pub := newEngine(t, snapshotFor("SOL"))

	var shown []string
	pub.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, d models.Display) { shown = append(shown, d.Denomination) }).
		Times(4)

	want := []models.Denomination{models.Native, models.RefA, models.RefB, models.Native}
	for _, w := range want {
		d, out := e.Tick(context.Background())
		require.Equal(t, w, d)
		require.Equal(t, Published, out)
	}
	require.Equal(t, []string{"usd", "eth", "btc", "usd"}, shown)
}

func TestTick_NoSnapshotDoesNothing(t *testing.T) {
	t.Parallel()

	var snap *models.Snapshot
	ctrl := gomock.NewController(t)
	pub := displaymock.NewMockPublisher(ctrl)
	e := NewEngine(func() *models.Snapshot { return snap }, pub, zerolog.Nop(), nil)

	// No Publish expectation: any call fails the test.
	for range 3 {
		d, out := e.Tick(context.Background())
		require.Equal(t, models.Native, d)
		require.Equal(t, Idle, out)
	}

	// Once data arrives the first tick still shows Native.
	snap = snapshotFor("SOL")
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(1)
	d, out := e.Tick(context.Background())
	require.Equal(t, models.Native, d)
	require.Equal(t, Published, out)
}

func TestTick_EmptySnapshotIsIdle(t *testing.T) {
	t.Parallel()

	e, _ := newEngine(t, &models.Snapshot{Ticker: "XYZ"})
	_, out := e.Tick(context.Background())
	require.Equal(t, Idle, out)
	_, out = e.Tick(context.Background())
	require.Equal(t, Idle, out)
	require.Equal(t, models.Native, e.Cursor())
}

func TestTick_SuppressesSelfReference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ticker     string
		suppressed models.Denomination
	}{
		{ticker: "ETH", suppressed: models.RefA},
		{ticker: "BTC", suppressed: models.RefB},
	}
	for _, tt := range tests {
		t.Run(tt.ticker, func(t *testing.T) {
			t.Parallel()

			e, pub := newEngine(t, snapshotFor(tt.ticker))
			pub.EXPECT().
				Publish(gomock.Any(), gomock.Any()).
				Do(func(_ context.Context, d models.Display) {
					require.NotEqual(t, tt.suppressed.String(), d.Denomination)
				}).
				Times(4)

			// Two full cycles: six ticks, two of them suppressed.
			suppressed := 0
			for range 6 {
				d, out := e.Tick(context.Background())
				if out == SelfReference {
					require.Equal(t, tt.suppressed, d)
					suppressed++
					continue
				}
				require.Equal(t, Published, out)
			}
			require.Equal(t, 2, suppressed)
		})
	}
}

func TestTick_CursorSurvivesNewSnapshots(t *testing.T) {
	t.Parallel()

	snap := snapshotFor("SOL")
	ctrl := gomock.NewController(t)
	pub := displaymock.NewMockPublisher(ctrl)
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(3)
	e := NewEngine(func() *models.Snapshot { return snap }, pub, zerolog.Nop(), nil)

	e.Tick(context.Background())
	snap = snapshotFor("SOL")
	d, _ := e.Tick(context.Background())
	require.Equal(t, models.RefA, d)
	snap = snapshotFor("SOL")
	d, _ = e.Tick(context.Background())
	require.Equal(t, models.RefB, d)
}

func TestTick_MissingReferenceQuote(t *testing.T) {
	t.Parallel()

	raw := map[string]models.RawQuote{
		"SOL": {USD: 150, USD24hChange: 3},
		"ETH": {USD: 3000, USD24hChange: 1},
	}
	e, pub := newEngine(t, pricing.BuildSnapshot(uuid.New(), "SOL", raw, true, at))
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(2)

	e.Tick(context.Background())
	e.Tick(context.Background())
	d, out := e.Tick(context.Background())
	require.Equal(t, models.RefB, d)
	require.Equal(t, Unavailable, out)
}

func TestTick_PublishesFormattedDisplay(t *testing.T) {
	t.Parallel()

	e, pub := newEngine(t, snapshotFor("SOL"))
	pub.EXPECT().Publish(gomock.Any(), models.Display{
		Identity:     "SOL $150 (↗)",
		Status:       "$ 24h: 3%",
		Ticker:       "SOL",
		Denomination: "usd",
		PublishedAt:  at,
	}).Times(1)

	e.Tick(context.Background())
}
