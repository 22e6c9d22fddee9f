package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/iqfieldbot/internal/session"
	"github.com/abhisek/iqfieldbot/internal/store"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func tempDB(t *testing.T) string {
	t.Helper()
	t.Setenv("IQFIELDBOT_LLM_PROVIDER", "none")
	return filepath.Join(t.TempDir(), "iqfieldbot.db")
}

func TestRootCommand_Wiring(t *testing.T) {
	require.NotNil(t, rootCmd.PersistentPreRunE)
	require.NotNil(t, rootCmd.RunE)
	assert.NotNil(t, rootCmd.Flags().Lookup("field"))

	for _, name := range []string{"serve", "play", "preview", "session", "llm", "version"} {
		c, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, c.Name())
	}
}

func TestInitRuntime_LoadsConfig(t *testing.T) {
	path := tempDB(t)
	_, err := execute(t, "session", "show", "missing", "--db", path, "--log-level", "warn")
	assert.ErrorIs(t, err, session.ErrNotFound)
	require.NotNil(t, cfg)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "iqfieldbot "), out)
}

func TestLLMListAndStats(t *testing.T) {
	path := tempDB(t)
	st, err := store.OpenSQLite(path)
	require.NoError(t, err)
	repo := st.EventRepo()
	ctx := context.Background()
	for i, purpose := range []string{"question-gen", "question-gen", "other"} {
		require.NoError(t, repo.AppendLLMRequest(ctx, store.LLMRequestEventData{
			Provider:     "openai",
			Model:        "gpt-4o-mini",
			Purpose:      purpose,
			SessionID:    []string{"sess-a", "sess-b", ""}[i],
			InputTokens:  100,
			OutputTokens: 50,
			LatencyMs:    120,
			Success:      true,
		}))
	}
	require.NoError(t, st.Close())

	out, err := execute(t, "llm", "list", "--db", path, "--purpose", "question-gen")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "question-gen"), out)
	assert.NotContains(t, out, "other")

	t.Cleanup(func() {
		_ = llmListCmd.Flags().Set("purpose", "")
		_ = llmListCmd.Flags().Set("session", "")
	})
	out, err = execute(t, "llm", "list", "--db", path, "--purpose", "", "--session", "sess-b")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "question-gen"), out)

	out, err = execute(t, "llm", "view", "2", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Session:   sess-b")

	out, err = execute(t, "llm", "stats", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage by Purpose")
	assert.Contains(t, out, "TOTAL")
}

func TestSessionShowAndDelete(t *testing.T) {
	path := tempDB(t)
	st, err := store.OpenSQLite(path)
	require.NoError(t, err)
	e := session.NewEngine(st, nil, session.DefaultConfig())
	s, err := e.Create(context.Background(), "learner")
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err := execute(t, "session", "show", s.ID, "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "State:       awaiting_field")
	assert.Contains(t, out, "User:        learner")

	out, err = execute(t, "session", "delete", s.ID, "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted session "+s.ID)

	_, err = execute(t, "session", "show", s.ID, "--db", path)
	assert.ErrorIs(t, err, session.ErrNotFound)
}
