package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mctsbot/meta"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "matchups")
	require.NoError(t, err)
	require.DirExists(t, w.Dir())

	t.Run("agent configs", func(t *testing.T) {
		require.NoError(t, w.WriteAgentConfigs([]meta.AgentConfig{meta.Vanilla(), meta.Modified()}))
		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, "id", rows[0][0])
		require.Equal(t, []string{"1", "vanilla", "50", "2", "random", "random", "1", "0", "0"}, rows[1])
		require.Equal(t, "heuristic", rows[2][4])
	})

	t.Run("game records", func(t *testing.T) {
		start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		records := []GameRecord{{
			ID:     1,
			Agent1: 2,
			Agent2: 1,
			GameMetric: GameMetric{
				StartingPlayer: 1,
				Winner:         0,
				StartTime:      start,
				EndTime:        start.Add(time.Second),
				Duration:       time.Second,
				TotalMoves:     9,
			},
		}}
		require.NoError(t, w.WriteGameRecords(records))
		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"1", "2", "1", "1", "0", "2024-05-01T12:00:00Z", "2024-05-01T12:00:01Z", "1s", "9"}, rows[1])
	})

	t.Run("move records", func(t *testing.T) {
		records := []MoveRecord{
			{Game: 1, MoveMetric: MoveMetric{Step: 1, Player: 1, SearchMetric: SearchMetric{Goroutines: 1, Iterations: 50, Expansions: 9, MaxDepth: 3, Duration: time.Millisecond}}},
			{Game: 1, MoveMetric: MoveMetric{Step: 2, Player: 2}},
		}
		require.NoError(t, w.WriteMoveRecords(records))
		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, []string{"1", "1", "1", "1", "50", "9", "3", "1ms"}, rows[1])
		require.Equal(t, "2", rows[2][2])
	})
}
