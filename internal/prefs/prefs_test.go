package prefs

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		locale string
		want   Language
	}{
		{"", English},
		{"C", English},
		{"en_US.UTF-8", English},
		{"es-MX", Spanish},
		{"es_ES.UTF-8", Spanish},
		{"zh-CN", Chinese},
		{"ko_KR.UTF-8", Korean},
		{"ko-KR,ko;q=0.9,en;q=0.8", Korean},
		{"fr-FR", English},
		{"!!garbage", English},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchLanguage(tt.locale))
		})
	}
}

func TestParse(t *testing.T) {
	l, err := ParseLanguage("KO")
	require.NoError(t, err)
	assert.Equal(t, Korean, l)
	_, err = ParseLanguage("fr")
	assert.Error(t, err)

	m, err := ParseEntryMode("drag")
	require.NoError(t, err)
	assert.Equal(t, EntryDrag, m)
	_, err = ParseEntryMode("swipe")
	assert.Error(t, err)
}

func TestPreferencesJSON(t *testing.T) {
	b, err := json.Marshal(Preferences{Entry: EntryDrag, Language: Chinese})
	require.NoError(t, err)
	assert.JSONEq(t, `{"entry":"drag","language":"zh"}`, string(b))

	var p Preferences
	require.NoError(t, json.Unmarshal([]byte(`{"entry":"tap","language":"es"}`), &p))
	assert.Equal(t, Preferences{Entry: EntryTap, Language: Spanish}, p)

	assert.Error(t, json.Unmarshal([]byte(`{"language":"xx"}`), &p))
}

func testStores(t *testing.T, def Preferences) map[string]Store {
	t.Helper()
	sq, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "data", "prefs.db"), def)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(def),
		"sqlite": sq,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	def := Defaults("es_ES.UTF-8")
	for name, st := range testStores(t, def) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			p, err := st.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, Preferences{Entry: EntryTap, Language: Spanish}, p)

			want := Preferences{Entry: EntryDrag, Language: Korean}
			require.NoError(t, st.Save(ctx, want))
			got, err := st.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)

			want.Language = English
			require.NoError(t, st.Save(ctx, want))
			got, err = st.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.db")
	def := Defaults("")

	st, err := OpenSQLite(ctx, path, def)
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, Preferences{Entry: EntryDrag, Language: Chinese}))
	require.NoError(t, st.Close())

	st, err = OpenSQLite(ctx, path, def)
	require.NoError(t, err)
	defer st.Close()
	p, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Preferences{Entry: EntryDrag, Language: Chinese}, p)

	var n int
	require.NoError(t, st.db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n, "migrations applied once")
}
