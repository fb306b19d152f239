package flightlog

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atm-service/app/src/domain"
)

func testMessage(id int) domain.Message {
	return domain.Message{
		AircraftID: id,
		Latitude:   10.5,
		Longitude:  -20.25,
		AltitudeFt: 31000,
		SpeedKt:    410,
		HeadingDeg: 88,
		Status:     domain.StatusOK,
		Timestamp:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(Config{})
	assert.Error(t, err)
}

func TestOpenFailsOnUnwritableDestination(t *testing.T) {
	_, err := Open(Config{Path: filepath.Join(t.TempDir(), "missing", "log.csv")})
	assert.Error(t, err)
}

func TestWriterAppendsHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atm_log.csv")
	w, err := Open(Config{Path: path, FlushEvery: 1})
	require.NoError(t, err)

	require.NoError(t, w.Append(context.Background(), testMessage(1), true))
	bad := testMessage(2)
	bad.Latitude = 91
	require.NoError(t, w.Append(context.Background(), bad, false))
	require.NoError(t, w.Close())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"aircraft_id", "latitude", "longitude", "altitude_ft",
		"speed_kt", "heading_deg", "status", "ts", "valid",
	}, records[0])

	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "10.5", records[1][1])
	assert.Equal(t, "OK", records[1][6])
	assert.Equal(t, "1", records[1][8])

	assert.Equal(t, "2", records[2][0])
	assert.Equal(t, "91", records[2][1])
	assert.Equal(t, "0", records[2][8])
}

func TestWriterFlushesPendingRowsOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atm_log.csv")
	w, err := Open(Config{Path: path, FlushEvery: 1000})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, w.Append(context.Background(), testMessage(1), true))
	}
	require.NoError(t, w.Close())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 6, "header plus all buffered rows")
}

func TestWriterCloseIsIdempotent(t *testing.T) {
	w, err := Open(Config{Path: filepath.Join(t.TempDir(), "atm_log.csv")})
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestWriterRejectsAppendAfterClose(t *testing.T) {
	w, err := Open(Config{Path: filepath.Join(t.TempDir(), "atm_log.csv")})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	err = w.Append(context.Background(), testMessage(1), true)
	assert.True(t, errors.Is(err, domain.ErrRecorderClosed))
}
